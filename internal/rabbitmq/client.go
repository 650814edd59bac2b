package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/PlacesApp/internal/config"
	"github.com/GoArmGo/PlacesApp/internal/messaging/payloads"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Client представляет собой клиент RabbitMQ для очереди очистки файлов
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	cfg     *config.Config
	logger  *slog.Logger
}

// NewClient создает и инициализирует новый клиент RabbitMQ
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	client := &Client{
		cfg:    cfg,
		logger: logger,
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	client.conn = conn
	logger.Info("connected to RabbitMQ")

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	client.channel = ch

	// Объявление очереди — идемпотентная операция
	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.RabbitMQQueueName, // name
		true,                           // durable - очередь будет сохраняться при перезапуске RabbitMQ
		false,                          // delete when unused
		false,                          // exclusive
		false,                          // no-wait
		nil,                            // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}
	client.queue = q
	logger.Info("queue declared", "queue", q.Name, "messages", q.Messages)

	return client, nil
}

// Close закрывает соединение и канал RabbitMQ
func (c *Client) Close() {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("error closing RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error("error closing RabbitMQ connection", "error", err)
		}
	}
}

// PublishFileCleanup публикует задачу на удаление файла в очередь RabbitMQ.
// Этот метод соответствует интерфейсу ports.FileCleanupPublisher.
func (c *Client) PublishFileCleanup(ctx context.Context, payload payloads.FileCleanupPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload to JSON: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}

	c.logger.Info("file cleanup scheduled", "queue", c.queue.Name, "key", payload.ObjectKey, "reason", payload.Reason)
	return nil
}

// StartConsumingFileCleanup начинает потребление задач очистки из очереди.
// Этот метод реализует интерфейс ports.FileCleanupConsumer.
func (c *Client) StartConsumingFileCleanup(ctx context.Context, handler func(context.Context, payloads.FileCleanupPayload) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name, // queue
		"",           // consumer
		false,        // auto-ack (подтверждаем вручную)
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.logger.Info("consumer registered, waiting for messages", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Info("RabbitMQ channel closed, stopping consumer")
					return
				}

				var payload payloads.FileCleanupPayload
				if err := json.Unmarshal(msg.Body, &payload); err != nil {
					c.logger.Error("error unmarshalling message", "error", err, "body", string(msg.Body))
					// Плохой формат сообщения: отклоняем без возврата в очередь,
					// чтобы не застрять в бесконечном цикле ошибок.
					if err := msg.Nack(false, false); err != nil {
						c.logger.Error("error NACKing message after unmarshal failure", "error", err)
					}
					continue
				}

				if err := handler(ctx, payload); err != nil {
					c.logger.Error("error processing cleanup task", "error", err, "key", payload.ObjectKey)
					// Обработка не удалась — возвращаем сообщение в очередь
					if err := msg.Nack(false, true); err != nil {
						c.logger.Error("error NACKing message after processing failure", "error", err)
					}
				} else {
					if err := msg.Ack(false); err != nil {
						c.logger.Error("error ACKing message", "error", err)
					}
					c.logger.Info("cleanup task processed", "key", payload.ObjectKey)
				}
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping RabbitMQ consumer")
				return
			}
		}
	}()

	return nil
}
