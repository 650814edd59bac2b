package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/PlacesApp/internal/config"
	"github.com/GoArmGo/PlacesApp/internal/core/ports"
	"github.com/GoArmGo/PlacesApp/internal/usecase"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Config              *config.Config
	logger              *slog.Logger
	db                  *sqlx.DB
	userUseCase         usecase.UserUseCase
	placeUseCase        usecase.PlaceUseCase
	fileStorage         ports.FileStorage
	fileCleanupConsumer ports.FileCleanupConsumer
	uploadLimiter       chan struct{}
}

func NewApp(cfg *config.Config,
	logger *slog.Logger,
	db *sqlx.DB,
	userUseCase usecase.UserUseCase,
	placeUseCase usecase.PlaceUseCase,
	fileStorage ports.FileStorage,
	fileCleanupConsumer ports.FileCleanupConsumer,
	uploadLimiter chan struct{}) *App {
	return &App{
		Config:              cfg,
		logger:              logger,
		db:                  db,
		userUseCase:         userUseCase,
		placeUseCase:        placeUseCase,
		fileStorage:         fileStorage,
		fileCleanupConsumer: fileCleanupConsumer,
		uploadLimiter:       uploadLimiter,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode *string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting application", "mode", *mode)

	var err error

	switch *mode {
	case "server":
		err = runServer(ctx, a.Config, a.logger, a.userUseCase, a.placeUseCase, a.fileStorage, a.uploadLimiter)

	case "worker":
		err = runWorker(ctx, a.logger, a.fileStorage, a.fileCleanupConsumer)

	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", *mode)
	}

	if err != nil {
		return err
	}

	a.logger.Info("shutting down")

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	a.logger.Info("stopped cleanly")
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}

	// если consumer имеет метод Close — вызываем его
	if closer, ok := a.fileCleanupConsumer.(interface{ Close() }); ok {
		closer.Close()
	}

	return nil
}
