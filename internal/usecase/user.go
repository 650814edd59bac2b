package usecase

import (
	"context"

	"github.com/GoArmGo/PlacesApp/internal/domain"
	"github.com/google/uuid"
)

// SignupInput — поля регистрации. ImageKey — ключ уже загруженного
// аватара в файловом хранилище (может быть пустым).
type SignupInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	ImageKey string
}

// AuthResult — результат успешной регистрации или входа
type AuthResult struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

// UserUseCase определяет интерфейс для бизнес-логики работы с пользователями
type UserUseCase interface {
	// Signup регистрирует нового пользователя и выдает токен.
	// Дубликат email — это ошибка валидации, а не перезапись.
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)

	// Login проверяет учетные данные и выдает токен
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// ListUsers возвращает всех пользователей (без хешей паролей)
	ListUsers(ctx context.Context) ([]domain.User, error)
}
