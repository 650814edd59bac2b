package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
// PlaceIDs — массив идентификаторов мест, которыми владеет пользователь;
// мутируется только внутри той же транзакции, что и соответствующий place.
type User struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	Name         string         `json:"name" db:"name"`
	Email        string         `json:"email" db:"email"`
	PasswordHash string         `json:"-" db:"password_hash"`
	Image        string         `json:"image" db:"image"`
	PlaceIDs     pq.StringArray `json:"places" db:"place_ids" gorm:"type:uuid[]"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// OwnsPlace сообщает, числится ли место в списке мест пользователя
func (u *User) OwnsPlace(placeID uuid.UUID) bool {
	for _, id := range u.PlaceIDs {
		if id == placeID.String() {
			return true
		}
	}
	return false
}
