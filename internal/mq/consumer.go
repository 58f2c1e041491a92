package mq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/glimpse/internal/telemetry"
)

// Handler — функция обработки сообщения.
// Ошибка означает, что сообщение не обработано.
type Handler func(ctx context.Context, msg *Message) error

// ErrBadMessage — сообщение не разбирается. Такие сообщения сразу уходят в DLQ.
var ErrBadMessage = errors.New("bad message")

// Consumer потребляет сообщения из очереди RabbitMQ.
//
// Ошибка обработчика возвращает сообщение в очередь один раз;
// повторная ошибка отправляет его в DLQ.
type Consumer struct {
	conn     *Connection
	logger   *slog.Logger
	queue    Queue
	handler  Handler
	prefetch int
}

// ConsumerConfig — конфигурация consumer.
type ConsumerConfig struct {
	// Queue — имя очереди.
	Queue Queue

	// Handler — обработчик сообщений.
	Handler Handler

	// Prefetch — количество неподтверждённых сообщений на consumer.
	Prefetch int
}

// NewConsumer создаёт новый Consumer.
func NewConsumer(conn *Connection, logger *slog.Logger, cfg ConsumerConfig) *Consumer {
	return &Consumer{
		conn:     conn,
		logger:   logger.With("queue", cfg.Queue),
		queue:    cfg.Queue,
		handler:  cfg.Handler,
		prefetch: max(cfg.Prefetch, 1),
	}
}

// Run потребляет сообщения до отмены ctx.
// Обрыв соединения не завершает Run: consumer ждёт переподключения.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		deliveries, err := c.setupConsume()
		if err != nil {
			c.logger.Error("failed to setup consume", "error", err)
		} else {
			c.logger.Info("consumer started")
			err = c.processDeliveries(ctx, deliveries)
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Warn("consumer interrupted, waiting for reconnect", "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-c.conn.ReconnectNotify():
			c.logger.Info("reconnected, restarting consumer")
		}
	}
}

func (c *Consumer) setupConsume() (<-chan amqp.Delivery, error) {
	ch := c.conn.Channel()
	if ch == nil || ch.IsClosed() {
		return nil, ErrNotConnected
	}

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := ch.Consume(
		string(c.queue), // queue
		"",              // consumer tag
		false,           // auto-ack
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", c.queue, err)
	}
	return deliveries, nil
}

func (c *Consumer) processDeliveries(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			c.handleDelivery(ctx, raw)
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, raw amqp.Delivery) {
	msg, err := DecodeMessage(raw.Body)
	if err != nil {
		c.logger.Error("failed to decode message", "error", err, "body", string(raw.Body))
		telemetry.EventsProcessedTotal.WithLabelValues("unknown", "rejected").Inc()
		_ = raw.Nack(false, false)
		return
	}

	log := c.logger.With("message_id", msg.ID, "type", msg.Type)
	log.Debug("received message")

	err = c.handler(ctx, msg)
	switch {
	case err == nil:
		telemetry.EventsProcessedTotal.WithLabelValues(string(msg.Type), "ok").Inc()
		_ = raw.Ack(false)
	case errors.Is(err, ErrBadMessage):
		log.Error("message rejected", "error", err)
		telemetry.EventsProcessedTotal.WithLabelValues(string(msg.Type), "rejected").Inc()
		_ = raw.Nack(false, false)
	default:
		requeue := !raw.Redelivered
		log.Error("handler failed", "error", err, "requeue", requeue)
		telemetry.EventsProcessedTotal.WithLabelValues(string(msg.Type), "error").Inc()
		_ = raw.Nack(false, requeue)
	}
}

// DecodeMessage разбирает конверт сообщения.
func DecodeMessage(body []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrBadMessage)
	}
	return &msg, nil
}

// ParsePayload парсит payload сообщения в указанный тип.
func ParsePayload[T any](msg *Message) (T, error) {
	var result T

	// после Unmarshal конверта payload лежит как map[string]any
	raw, err := json.Marshal(msg.Payload)
	if err != nil {
		return result, fmt.Errorf("marshal payload: %w", err)
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, fmt.Errorf("%w: unmarshal payload: %v", ErrBadMessage, err)
	}
	return result, nil
}

// ParseCatalogEvent достаёт событие каталога из сообщения.
// Entity и Action берутся из типа сообщения.
func ParseCatalogEvent(msg *Message) (CatalogEvent, error) {
	entity, action, ok := strings.Cut(string(msg.Type), ".")
	if !ok || entity == "" || action == "" {
		return CatalogEvent{}, fmt.Errorf("%w: type %q", ErrBadMessage, msg.Type)
	}

	event, err := ParsePayload[CatalogEvent](msg)
	if err != nil {
		return CatalogEvent{}, err
	}
	if event.EntityID == "" {
		return CatalogEvent{}, fmt.Errorf("%w: missing entity_id", ErrBadMessage)
	}

	event.Entity = Entity(entity)
	event.Action = Action(action)
	return event, nil
}
