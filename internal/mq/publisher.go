package mq

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/glimpse/internal/telemetry"
)

// Entity — тип записи каталога, к которой относится событие.
type Entity string

// Сущности каталога.
const (
	EntityMovie    Entity = "movie"
	EntityCategory Entity = "category"
	EntityGenre    Entity = "genre"
)

// Action — что произошло с записью.
type Action string

// Действия над записями.
const (
	ActionCreated  Action = "created"
	ActionUpdated  Action = "updated"
	ActionDeleted  Action = "deleted"
	ActionRestored Action = "restored"
	ActionLinked   Action = "linked"
)

// MessageType — тип сообщения, совпадает с routing key: "<entity>.<action>".
type MessageType string

// NewMessageType собирает тип сообщения из сущности и действия.
func NewMessageType(entity Entity, action Action) MessageType {
	return MessageType(string(entity) + "." + string(action))
}

// RoutingKey возвращает routing key для публикации.
func (t MessageType) RoutingKey() RoutingKey {
	return RoutingKey(t)
}

// Message — конверт сообщения.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type — тип сообщения.
	Type MessageType `json:"type"`

	// Payload — полезная нагрузка.
	Payload any `json:"payload"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// CatalogEvent — payload события каталога.
type CatalogEvent struct {
	// Entity — сущность.
	Entity Entity `json:"entity"`

	// Action не сериализуется: он уже есть в типе сообщения.
	Action Action `json:"-"`

	// EntityID — ID изменённой записи.
	EntityID string `json:"entity_id"`

	// IDs — связанные записи (для linked: ID привязанных фильмов).
	IDs []string `json:"ids,omitempty"`
}

// Type возвращает тип сообщения события.
func (e CatalogEvent) Type() MessageType {
	return NewMessageType(e.Entity, e.Action)
}

// Publisher публикует сообщения в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// Publish публикует сообщение в указанный exchange с routing key.
func (p *Publisher) Publish(ctx context.Context, exchange Exchange, routingKey RoutingKey, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		return ch.PublishWithContext(
			ctx,
			string(exchange),
			string(routingKey),
			false, // mandatory
			false, // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    msg.ID,
				Type:         string(msg.Type),
				Timestamp:    msg.Timestamp,
				Body:         body,
			},
		)
	})
	if err != nil {
		telemetry.EventsPublishedTotal.WithLabelValues(string(routingKey), "error").Inc()
		return fmt.Errorf("publish to %s/%s: %w", exchange, routingKey, err)
	}

	telemetry.EventsPublishedTotal.WithLabelValues(string(routingKey), "ok").Inc()
	p.logger.Debug("published message",
		"exchange", exchange,
		"routing_key", routingKey,
		"message_id", msg.ID,
	)
	return nil
}

// PublishCatalogEvent публикует событие каталога в glimpse.catalog.
func (p *Publisher) PublishCatalogEvent(ctx context.Context, event CatalogEvent) error {
	msg := NewCatalogMessage(event)
	return p.Publish(ctx, ExchangeCatalog, msg.Type.RoutingKey(), msg)
}

// NewCatalogMessage заворачивает событие в конверт с новым ID.
func NewCatalogMessage(event CatalogEvent) *Message {
	return &Message{
		ID:        uuid.New().String(),
		Type:      event.Type(),
		Payload:   event,
		Timestamp: time.Now().UTC(),
	}
}
