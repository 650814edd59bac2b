package ports

import (
	"context"

	"github.com/GoArmGo/PlacesApp/internal/messaging/payloads"
)

// FileCleanupPublisher определяет методы для публикации задач на удаление файлов
// Этот интерфейс используется координатором при откате транзакции
type FileCleanupPublisher interface {
	PublishFileCleanup(ctx context.Context, payload payloads.FileCleanupPayload) error
}

// FileCleanupConsumer определяет методы для потребления задач на удаление файлов
// будет использоваться воркером для получения задач из очереди
type FileCleanupConsumer interface {
	// StartConsumingFileCleanup начинает прослушивание очереди задач очистки
	// принимает функцию-обработчик, которая будет вызываться для каждой задачи
	StartConsumingFileCleanup(ctx context.Context, handler func(context.Context, payloads.FileCleanupPayload) error) error
}
