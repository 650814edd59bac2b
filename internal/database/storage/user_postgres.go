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
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

// UserStorage реализует интерфейс ports.UserStorage поверх sqlx
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// CreateUser вставляет нового пользователя в БД.
// Нарушение уникальности email возвращается как domain.ErrEmailTaken.
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.PlaceIDs == nil {
		user.PlaceIDs = pq.StringArray{}
	}

	_, err := s.db.NamedExecContext(ctx, `
        INSERT INTO users (id, name, email, password_hash, image, place_ids, created_at, updated_at)
        VALUES (:id, :name, :email, :password_hash, :image, :place_ids, :created_at, :updated_at)
    `, user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			s.logger.Warn("duplicate email on signup", "email", user.Email)
			return fmt.Errorf("insert user: %w", domain.ErrEmailTaken)
		}
		s.logger.Error("failed to insert user", "error", err)
		return fmt.Errorf("ошибка при сохранении пользователя: %w", err)
	}

	s.logger.Info("user created successfully",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetUserByEmail получает пользователя по email; (nil, nil), если не найден
func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	start := time.Now()

	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("user not found by email", "email", email)
			return nil, nil
		}
		s.logger.Error("failed to get user by email", "email", email, "error", err)
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", err)
	}

	s.logger.Info("user retrieved by email",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &user, nil
}

// GetUserByID получает пользователя по ID; (nil, nil), если не найден
func (s *UserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	start := time.Now()

	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("user not found by id", "id", id)
			return nil, nil
		}
		s.logger.Error("failed to get user by id", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении пользователя по ID: %w", err)
	}

	s.logger.Info("user retrieved by id",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &user, nil
}

// ListUsers получает всех пользователей
func (s *UserStorage) ListUsers(ctx context.Context) ([]domain.User, error) {
	start := time.Now()

	var users []domain.User
	if err := s.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY created_at DESC`); err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("ошибка при получении списка пользователей: %w", err)
	}

	s.logger.Info("users listed successfully",
		"count", len(users),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return users, nil
}
