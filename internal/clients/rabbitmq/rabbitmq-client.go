package rabbitmq_client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/init-pkg/menu-import/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

// New dials the broker. It returns nil when no URL is configured, which turns
// the queue worker off.
func New(lc fx.Lifecycle, log *slog.Logger, cfg *config.Config) (*amqp.Connection, error) {
	url := cfg.Infrastructure.RabbitMQ.Url
	if url == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	log.Info("rabbitmq connected", "queue", cfg.Infrastructure.RabbitMQ.Queue)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return conn.Close()
		},
	})
	return conn, nil
}
