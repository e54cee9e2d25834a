package redis_client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/init-pkg/menu-import/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// New returns nil when no address is configured.
func New(lc fx.Lifecycle, log *slog.Logger, cfg *config.Config) (*redis.Client, error) {
	rc := cfg.Infrastructure.Redis
	if rc.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Username: rc.Username,
		Password: rc.Password,
		DB:       rc.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", rc.Addr, err)
	}
	log.Info("redis connected", "addr", rc.Addr, "db", rc.DB)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}
