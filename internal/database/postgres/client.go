package postgres

import (
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ApplyMigrations применяет все доступные миграции к бд
func ApplyMigrations(databaseURL string) error {
	m, err := migrate.New(
		"file://internal/database/postgres/migrations",
		databaseURL,
	)
	if err != nil {
		return fmt.Errorf("не удалось создать экземпляр мигратора: %w", err)
	}

	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("ошибка выполнения миграций: %w", err)
	}

	if err == migrate.ErrNoChange {
		log.Println("Миграции не требуются, база данных актуальна.")
	} else {
		log.Println("Миграции успешно применены.")
	}
	return nil
}

// NewGormDB открывает отдельное GORM-подключение для read-моделей.
// Пишущие пути ходят через sqlx (см. internal/database/storage).
func NewGormDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия GORM-соединения с БД: %w", err)
	}
	return db, nil
}
