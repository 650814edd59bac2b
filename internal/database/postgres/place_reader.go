package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/PlacesApp/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlaceReader реализует интерфейс ports.PlaceReader с использованием GORM.
// Обслуживает публичные GET-эндпоинты; пишущие пути мест ходят через sqlx.
type PlaceReader struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewPlaceReader создает новый экземпляр PlaceReader
func NewPlaceReader(db *gorm.DB, logger *slog.Logger) *PlaceReader {
	return &PlaceReader{db: db, logger: logger}
}

// GetPlaceByID получает место по ID; (nil, nil), если не найдено
func (r *PlaceReader) GetPlaceByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	start := time.Now()

	var place domain.Place
	result := r.db.WithContext(ctx).First(&place, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			r.logger.Warn("place not found by id", "id", id)
			return nil, nil
		}
		r.logger.Error("failed to get place by id", "id", id, "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении места по ID с помощью GORM: %w", result.Error)
	}

	r.logger.Info("place retrieved by id",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &place, nil
}

// ListPlacesByCreator получает все места, созданные пользователем
func (r *PlaceReader) ListPlacesByCreator(ctx context.Context, creatorID uuid.UUID) ([]domain.Place, error) {
	start := time.Now()

	var places []domain.Place
	result := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&places)

	if result.Error != nil {
		r.logger.Error("failed to list places by creator", "creator_id", creatorID, "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении мест пользователя с помощью GORM: %w", result.Error)
	}

	r.logger.Info("places listed by creator",
		"creator_id", creatorID,
		"count", len(places),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return places, nil
}
