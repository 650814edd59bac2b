package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/PlacesApp/internal/core/ports"
	"github.com/GoArmGo/PlacesApp/internal/messaging/payloads"
)

// runWorker запускает потребителя RabbitMQ и удаляет осиротевшие файлы
func runWorker(
	ctx context.Context,
	logger *slog.Logger,
	fileStorage ports.FileStorage,
	fileCleanupConsumer ports.FileCleanupConsumer,
) error {
	logger.Info("worker started, waiting for cleanup tasks")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	// Определяем функцию-обработчик для сообщений RabbitMQ
	messageHandler := func(ctx context.Context, payload payloads.FileCleanupPayload) error {
		logger.Info("worker: processing cleanup task", "object_key", payload.ObjectKey, "reason", payload.Reason)

		if err := fileStorage.DeleteFile(ctx, payload.ObjectKey); err != nil {
			logger.Error("worker: cleanup task failed", "object_key", payload.ObjectKey, "error", err)
			return err
		}

		logger.Info("worker: cleanup task done", "object_key", payload.ObjectKey)
		return nil
	}

	// Запускаем потребление сообщений
	err := fileCleanupConsumer.StartConsumingFileCleanup(workerCtx, messageHandler)
	if err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	<-ctx.Done()

	logger.Info("worker: shutdown signal received")

	cancelWorker()

	time.Sleep(2 * time.Second) // Небольшая задержка, чтобы логи успели выйти
	logger.Info("worker: stopped")

	return nil
}
