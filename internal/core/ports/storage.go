package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/PlacesApp/internal/domain"
	"github.com/google/uuid"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	// CreateUser вставляет нового пользователя; дубликат email
	// возвращает domain.ErrEmailTaken
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUserByEmail возвращает (nil, nil), если пользователь не найден
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetUserByID возвращает (nil, nil), если пользователь не найден
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// ListUsers возвращает всех пользователей (хеши паролей не сериализуются)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// PlaceStorage определяет методы записи для хранилища мест.
// Связанные мутации (place + place_ids владельца) выполняются
// внутри одной транзакции и снаружи неразделимы.
type PlaceStorage interface {
	// GetPlaceByID возвращает (nil, nil), если место не найдено
	GetPlaceByID(ctx context.Context, id uuid.UUID) (*domain.Place, error)

	// GetPlaceWithOwner — ассоциативная выборка места вместе с владельцем;
	// (nil, nil, nil), если место не найдено
	GetPlaceWithOwner(ctx context.Context, id uuid.UUID) (*domain.Place, *domain.User, error)

	// CreatePlaceLinked атомарно вставляет место и добавляет его id
	// в place_ids владельца
	CreatePlaceLinked(ctx context.Context, place *domain.Place) error

	// UpdatePlace сохраняет изменённые title/description
	UpdatePlace(ctx context.Context, place *domain.Place) error

	// DeletePlaceLinked атомарно удаляет место и убирает его id
	// из place_ids владельца
	DeletePlaceLinked(ctx context.Context, place *domain.Place) error
}

// PlaceReader определяет запросы чтения для публичных эндпоинтов
type PlaceReader interface {
	GetPlaceByID(ctx context.Context, id uuid.UUID) (*domain.Place, error)
	ListPlacesByCreator(ctx context.Context, creatorID uuid.UUID) ([]domain.Place, error)
}

// FileStorage определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO)
type FileStorage interface {
	// UploadFile загружает файл в хранилище и возвращает его публичный URL.
	// `key` - это уникальное имя файла в хранилище.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// DeleteFile удаляет файл из хранилища по его ключу.
	DeleteFile(ctx context.Context, key string) error
}

// Geocoder переводит текстовый адрес в координаты
type Geocoder interface {
	Resolve(ctx context.Context, address string) (domain.Location, error)
}
