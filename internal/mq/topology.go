package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — имя обменника.
type Exchange string

// Queue — имя очереди.
type Queue string

// RoutingKey — ключ маршрутизации.
type RoutingKey string

// Обменники.
const (
	ExchangeCatalog Exchange = "glimpse.catalog"
	ExchangeDLQ     Exchange = "glimpse.dlq"
)

// Очереди.
const (
	QueueSweeper    Queue = "catalog.sweeper"
	QueueDLQCatalog Queue = "dlq.catalog"
)

// Ключи привязки.
const (
	BindingDeleted  RoutingKey = "*.deleted"
	BindingRestored RoutingKey = "*.restored"
	RoutingKeyDLQ   RoutingKey = "catalog"
)

// SetupTopology объявляет обменники, очереди и привязки. Идемпотентна.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		if err := declareExchanges(ch); err != nil {
			return err
		}
		if err := declareQueues(ch); err != nil {
			return err
		}
		return bindQueues(ch)
	})
}

func declareExchanges(ch *amqp.Channel) error {
	exchanges := []struct {
		name Exchange
		kind string
	}{
		{ExchangeCatalog, amqp.ExchangeTopic},
		{ExchangeDLQ, amqp.ExchangeDirect},
	}

	for _, ex := range exchanges {
		err := ch.ExchangeDeclare(
			string(ex.name), // name
			ex.kind,         // type
			true,            // durable
			false,           // auto-deleted
			false,           // internal
			false,           // no-wait
			nil,             // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ex.name, err)
		}
	}
	return nil
}

func declareQueues(ch *amqp.Channel) error {
	queues := []struct {
		name Queue
		args amqp.Table
	}{
		// catalog.sweeper — отклонённые сообщения уходят в dlq.catalog
		{QueueSweeper, amqp.Table{
			"x-dead-letter-exchange":    string(ExchangeDLQ),
			"x-dead-letter-routing-key": string(RoutingKeyDLQ),
		}},
		{QueueDLQCatalog, nil},
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			string(q.name), // name
			true,           // durable
			false,          // delete when unused
			false,          // exclusive
			false,          // no-wait
			q.args,         // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", q.name, err)
		}
	}
	return nil
}

func bindQueues(ch *amqp.Channel) error {
	bindings := []struct {
		queue      Queue
		routingKey RoutingKey
		exchange   Exchange
	}{
		{QueueSweeper, BindingDeleted, ExchangeCatalog},
		{QueueSweeper, BindingRestored, ExchangeCatalog},
		{QueueDLQCatalog, RoutingKeyDLQ, ExchangeDLQ},
	}

	for _, b := range bindings {
		err := ch.QueueBind(
			string(b.queue),      // queue name
			string(b.routingKey), // routing key
			string(b.exchange),   // exchange
			false,                // no-wait
			nil,                  // arguments
		)
		if err != nil {
			return fmt.Errorf("bind queue %s to %s (%s): %w", b.queue, b.exchange, b.routingKey, err)
		}
	}
	return nil
}

// TopologyInfo возвращает описание топологии для логирования.
func TopologyInfo() string {
	return `
  Glimpse RabbitMQ Topology:

    glimpse.catalog (topic)
    └── catalog.sweeper [routing: *.deleted, *.restored]
            Consumer: glimpse-sweeper
            DLQ: dlq.catalog

    glimpse.dlq (direct)
    └── dlq.catalog [routing: catalog]
            Manual processing
`
}
