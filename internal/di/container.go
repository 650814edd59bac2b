package di

import (
	"github.com/GoArmGo/PlacesApp/internal/adapter/geocoder"
	"github.com/GoArmGo/PlacesApp/internal/adapter/storage/minio"
	"github.com/GoArmGo/PlacesApp/internal/app"
	"github.com/GoArmGo/PlacesApp/internal/auth"
	"github.com/GoArmGo/PlacesApp/internal/config"
	"github.com/GoArmGo/PlacesApp/internal/database/client"
	"github.com/GoArmGo/PlacesApp/internal/database/postgres"
	"github.com/GoArmGo/PlacesApp/internal/database/storage"
	"github.com/GoArmGo/PlacesApp/internal/logger"
	"github.com/GoArmGo/PlacesApp/internal/rabbitmq"
	"github.com/GoArmGo/PlacesApp/internal/usecase"
	"github.com/GoArmGo/PlacesApp/internal/validation"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogCfg := logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}
	slogger := logger.NewSlog(slogCfg)

	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Миграции и инициализация PostgreSQL клиентов
	if err := postgres.ApplyMigrations(cfg.DatabaseURL); err != nil {
		return nil, err
	}

	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	gormDB, err := postgres.NewGormDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ
	userStorage := storage.NewUserStorage(dbClient.DB, slogger)
	placeStorage := storage.NewPlaceStorage(dbClient.DB, slogger)
	placeReader := postgres.NewPlaceReader(gormDB, slogger)

	// 4. Инициализация клиентов внешних сервисов
	geocoderClient := geocoder.NewClient(cfg)
	fileStorage, err := minio.NewMinioClient(cfg, slogger) // S3 / MinIO адаптер
	if err != nil {
		return nil, err
	}

	// 5. Инициализация RabbitMQ клиента (publisher и consumer)
	rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 6. Вспомогательные сервисы
	validate := validation.New()
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService([]byte(cfg.JWTSecretKey), cfg.TokenTTL)

	// 7. Инициализация бизнес-логики (usecases)
	userUseCase := usecase.NewUserUseCase(userStorage, hasher, tokens, validate, rabbitMQClient, slogger)
	placeUseCase := usecase.NewPlaceUseCase(placeStorage, placeReader, userStorage, geocoderClient, fileStorage, rabbitMQClient, validate, slogger)

	// 8. Создание лимитера загрузок (ограничиваем 5 параллельных загрузок)
	uploadLimiter := make(chan struct{}, 5)

	// 9. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient.DB,
		userUseCase,
		placeUseCase,
		fileStorage,
		rabbitMQClient,
		uploadLimiter,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
