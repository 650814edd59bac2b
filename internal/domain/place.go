package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Location — пара координат, которую возвращает геокодер
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place представляет модель места в системе,
// соответствует таблице places в бд
type Place struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Address     string    `json:"address" db:"address"`
	Lat         float64   `json:"-" db:"lat"`
	Lng         float64   `json:"-" db:"lng"`
	// Image хранит ключ объекта в файловом хранилище (S3/MinIO)
	Image     string    `json:"image" db:"image"`
	CreatorID uuid.UUID `json:"creator" db:"creator_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (Place) TableName() string {
	return "places"
}

// MarshalJSON сериализует координаты во вложенный объект location,
// как того ожидают клиенты
func (p Place) MarshalJSON() ([]byte, error) {
	type alias Place
	return json.Marshal(struct {
		alias
		Location Location `json:"location"`
	}{
		alias:    alias(p),
		Location: Location{Lat: p.Lat, Lng: p.Lng},
	})
}
