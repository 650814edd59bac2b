package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/PlacesApp/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PlaceStorage реализует интерфейс ports.PlaceStorage поверх sqlx.
// Связанные мутации place + place_ids владельца выполняются внутри
// одной транзакции; владелец блокируется через SELECT ... FOR UPDATE,
// чтобы гонки на одном списке place_ids сериализовались, а не
// терялись.
type PlaceStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPlaceStorage создает новый экземпляр PlaceStorage
func NewPlaceStorage(db *sqlx.DB, logger *slog.Logger) *PlaceStorage {
	return &PlaceStorage{db: db, logger: logger}
}

// GetPlaceByID получает место по ID; (nil, nil), если не найдено
func (s *PlaceStorage) GetPlaceByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	var place domain.Place
	err := s.db.GetContext(ctx, &place, `SELECT * FROM places WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("place not found by id", "id", id)
			return nil, nil
		}
		s.logger.Error("failed to get place by id", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении места по ID: %w", err)
	}
	return &place, nil
}

type placeOwnerRow struct {
	domain.Place
	Owner domain.User `db:"owner"`
}

// GetPlaceWithOwner — ассоциативная выборка места вместе с его владельцем
// одним запросом; (nil, nil, nil), если место не найдено
func (s *PlaceStorage) GetPlaceWithOwner(ctx context.Context, id uuid.UUID) (*domain.Place, *domain.User, error) {
	start := time.Now()

	var row placeOwnerRow
	err := s.db.GetContext(ctx, &row, `
	SELECT p.id, p.title, p.description, p.address, p.lat, p.lng, p.image, p.creator_id, p.created_at, p.updated_at,
	       u.id AS "owner.id", u.name AS "owner.name", u.email AS "owner.email",
	       u.password_hash AS "owner.password_hash", u.image AS "owner.image",
	       u.place_ids AS "owner.place_ids", u.created_at AS "owner.created_at", u.updated_at AS "owner.updated_at"
	FROM places p
	JOIN users u ON u.id = p.creator_id
	WHERE p.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("place not found with owner", "id", id)
			return nil, nil, nil
		}
		s.logger.Error("failed to get place with owner", "id", id, "error", err)
		return nil, nil, fmt.Errorf("ошибка при получении места с владельцем: %w", err)
	}

	s.logger.Info("place with owner retrieved",
		"place_id", row.Place.ID,
		"owner_id", row.Owner.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &row.Place, &row.Owner, nil
}

// CreatePlaceLinked атомарно вставляет место и добавляет его id в
// place_ids владельца. При любой ошибке транзакция откатывается
// целиком: места нет, список владельца не изменён.
func (s *PlaceStorage) CreatePlaceLinked(ctx context.Context, place *domain.Place) error {
	start := time.Now()

	if place.ID == uuid.Nil {
		place.ID = uuid.New()
	}
	now := time.Now()
	place.CreatedAt = now
	place.UpdatedAt = now

	err := WithTx(ctx, s.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		// держим строку владельца до конца транзакции
		var ownerID uuid.UUID
		if err := tx.GetContext(ctx, &ownerID,
			`SELECT id FROM users WHERE id = $1 FOR UPDATE`, place.CreatorID); err != nil {
			return fmt.Errorf("lock owner row: %w", err)
		}

		if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO places (id, title, description, address, lat, lng, image, creator_id, created_at, updated_at)
		VALUES (:id, :title, :description, :address, :lat, :lng, :image, :creator_id, :created_at, :updated_at)
		`, place); err != nil {
			return fmt.Errorf("insert place: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
		UPDATE users SET place_ids = array_append(place_ids, $1::uuid), updated_at = $2 WHERE id = $3
		`, place.ID, now, place.CreatorID); err != nil {
			return fmt.Errorf("append place to owner list: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("create place transaction failed", "place_id", place.ID, "creator_id", place.CreatorID, "error", err)
		return fmt.Errorf("ошибка при создании места: %w", err)
	}

	s.logger.Info("place created and linked",
		"place_id", place.ID,
		"creator_id", place.CreatorID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// UpdatePlace сохраняет изменённые title/description
func (s *PlaceStorage) UpdatePlace(ctx context.Context, place *domain.Place) error {
	start := time.Now()

	place.UpdatedAt = time.Now()
	res, err := s.db.ExecContext(ctx, `
	UPDATE places SET title = $1, description = $2, updated_at = $3 WHERE id = $4
	`, place.Title, place.Description, place.UpdatedAt, place.ID)
	if err != nil {
		s.logger.Error("failed to update place", "place_id", place.ID, "error", err)
		return fmt.Errorf("ошибка при обновлении места: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("ошибка при обновлении места: %w", sql.ErrNoRows)
	}

	s.logger.Info("place updated",
		"place_id", place.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// DeletePlaceLinked атомарно удаляет место и убирает его id из
// place_ids владельца
func (s *PlaceStorage) DeletePlaceLinked(ctx context.Context, place *domain.Place) error {
	start := time.Now()

	err := WithTx(ctx, s.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		var ownerID uuid.UUID
		if err := tx.GetContext(ctx, &ownerID,
			`SELECT id FROM users WHERE id = $1 FOR UPDATE`, place.CreatorID); err != nil {
			return fmt.Errorf("lock owner row: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM places WHERE id = $1`, place.ID)
		if err != nil {
			return fmt.Errorf("delete place: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("delete place: %w", sql.ErrNoRows)
		}

		if _, err := tx.ExecContext(ctx, `
		UPDATE users SET place_ids = array_remove(place_ids, $1::uuid), updated_at = $2 WHERE id = $3
		`, place.ID, time.Now(), place.CreatorID); err != nil {
			return fmt.Errorf("remove place from owner list: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("delete place transaction failed", "place_id", place.ID, "creator_id", place.CreatorID, "error", err)
		return fmt.Errorf("ошибка при удалении места: %w", err)
	}

	s.logger.Info("place deleted and unlinked",
		"place_id", place.ID,
		"creator_id", place.CreatorID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
