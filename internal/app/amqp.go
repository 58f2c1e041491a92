package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shaiso/glimpse/internal/config"
	"github.com/shaiso/glimpse/internal/mq"
)

// ConnectAMQP подключается к RabbitMQ и объявляет топологию.
// Пустой URL возвращает (nil, nil): события отключены.
func ConnectAMQP(ctx context.Context, cfg config.AMQPConfig, name string, logger *slog.Logger) (*mq.Connection, error) {
	if cfg.URL == "" {
		logger.Info("amqp url is empty, catalog events disabled")
		return nil, nil
	}

	conn, err := mq.NewConnection(cfg.URL, name, logger)
	if err != nil {
		return nil, fmt.Errorf("connect amqp: %w", err)
	}

	if err := mq.SetupTopology(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("setup topology: %w", err)
	}

	logger.Info("connected to rabbitmq", "exchange", mq.ExchangeCatalog)
	return conn, nil
}
