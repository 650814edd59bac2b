package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/GoArmGo/PlacesApp/internal/apperr"
	"github.com/GoArmGo/PlacesApp/internal/auth"
	"github.com/GoArmGo/PlacesApp/internal/core/ports"
	"github.com/GoArmGo/PlacesApp/internal/domain"
	"github.com/GoArmGo/PlacesApp/internal/messaging/payloads"
	"github.com/GoArmGo/PlacesApp/internal/validation"
)

// userUseCase implements UserUseCase
type userUseCase struct {
	userStorage ports.UserStorage
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenService
	validator   *validation.Validator
	cleanup     ports.FileCleanupPublisher
	logger      *slog.Logger
}

// NewUserUseCase создает новый экземпляр UserUseCase
func NewUserUseCase(
	userStorage ports.UserStorage,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenService,
	validator *validation.Validator,
	cleanup ports.FileCleanupPublisher,
	logger *slog.Logger,
) UserUseCase {
	return &userUseCase{
		userStorage: userStorage,
		hasher:      hasher,
		tokens:      tokens,
		validator:   validator,
		cleanup:     cleanup,
		logger:      logger,
	}
}

// scheduleAvatarCleanup ставит загруженный аватар в очередь на удаление,
// когда запись пользователя не закоммитилась. Неудача самой постановки
// только логируется.
func (uc *userUseCase) scheduleAvatarCleanup(ctx context.Context, key, reason string) {
	if key == "" {
		return
	}
	err := uc.cleanup.PublishFileCleanup(ctx, payloads.FileCleanupPayload{ObjectKey: key, Reason: reason})
	if err != nil {
		uc.logger.Error("failed to schedule avatar cleanup", "key", key, "error", err)
	}
}

// Signup регистрирует нового пользователя: валидация, проверка email,
// хеширование пароля, сохранение, выпуск токена
func (uc *userUseCase) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	if err := uc.validator.Struct(in); err != nil {
		uc.scheduleAvatarCleanup(ctx, in.ImageKey, "signup validation failed")
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := uc.userStorage.GetUserByEmail(ctx, email)
	if err != nil {
		uc.scheduleAvatarCleanup(ctx, in.ImageKey, "signup lookup failed")
		return nil, apperr.Persistence("Signing up failed, please try again later.", err)
	}
	if existing != nil {
		uc.scheduleAvatarCleanup(ctx, in.ImageKey, "signup duplicate email")
		return nil, apperr.Validation("User exists already, please login instead.")
	}

	hashed, err := uc.hasher.Hash(in.Password)
	if err != nil {
		uc.scheduleAvatarCleanup(ctx, in.ImageKey, "signup hashing failed")
		return nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hashed,
		Image:        in.ImageKey,
	}

	if err := uc.userStorage.CreateUser(ctx, user); err != nil {
		uc.scheduleAvatarCleanup(ctx, in.ImageKey, "signup insert failed")
		// гонка на unique-индексе: дубликат проскочил pre-check
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, apperr.Validation("User exists already, please login instead.")
		}
		return nil, apperr.Persistence("Signing up failed, please try again later.", err)
	}

	token, err := uc.tokens.Issue(user.ID.String(), user.Email)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user signed up", "user_id", user.ID)
	return &AuthResult{UserID: user.ID, Email: user.Email, Token: token}, nil
}

// Login проверяет учетные данные и выдает токен.
// Неизвестный email и неверный пароль дают один и тот же ответ.
func (uc *userUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.userStorage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Persistence("Logging in failed, please try again later.", err)
	}
	if user == nil {
		return nil, apperr.Auth("Invalid credentials, could not log you in.", http.StatusForbidden)
	}

	ok, err := uc.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		uc.logger.Warn("login with invalid credentials", "user_id", user.ID)
		return nil, apperr.Auth("Invalid credentials, could not log you in.", http.StatusForbidden)
	}

	token, err := uc.tokens.Issue(user.ID.String(), user.Email)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user logged in", "user_id", user.ID)
	return &AuthResult{UserID: user.ID, Email: user.Email, Token: token}, nil
}

// ListUsers возвращает всех пользователей
func (uc *userUseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := uc.userStorage.ListUsers(ctx)
	if err != nil {
		return nil, apperr.Persistence("Fetching users failed, please try again later.", fmt.Errorf("list users: %w", err))
	}
	return users, nil
}
