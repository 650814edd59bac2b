package usecase

import (
	"context"

	"github.com/GoArmGo/PlacesApp/internal/domain"
	"github.com/google/uuid"
)

// CreatePlaceInput — поля создания места. ImageKey — ключ уже
// загруженного изображения в файловом хранилище.
type CreatePlaceInput struct {
	Title       string `validate:"required"`
	Description string `validate:"required,min=5"`
	Address     string `validate:"required"`
	ImageKey    string
	CreatorID   uuid.UUID
}

// UpdatePlaceInput — изменяемые поля места
type UpdatePlaceInput struct {
	Title       string `validate:"required"`
	Description string `validate:"required,min=5"`
}

// PlaceUseCase определяет интерфейс для бизнес-логики работы с местами.
// Создание и удаление — связанные мутации двух коллекций: place и
// список place_ids владельца меняются как одно атомарное целое.
type PlaceUseCase interface {
	// GetPlaceByID получает место для публичного просмотра
	GetPlaceByID(ctx context.Context, id uuid.UUID) (*domain.Place, error)

	// ListPlacesByUser получает все места пользователя
	ListPlacesByUser(ctx context.Context, userID uuid.UUID) ([]domain.Place, error)

	// CreatePlace геокодирует адрес и атомарно создает место,
	// привязывая его к владельцу. При любом сбое после загрузки
	// изображения файл ставится в очередь на удаление.
	CreatePlace(ctx context.Context, in CreatePlaceInput) (*domain.Place, error)

	// UpdatePlace меняет title/description; разрешено только создателю
	UpdatePlace(ctx context.Context, placeID, callerID uuid.UUID, in UpdatePlaceInput) (*domain.Place, error)

	// DeletePlace атомарно удаляет место и отвязывает его от владельца;
	// после коммита изображение удаляется из файлового хранилища
	// (best-effort)
	DeletePlace(ctx context.Context, placeID, callerID uuid.UUID) error
}
