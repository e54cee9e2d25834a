package menu_import_session

import (
	"log/slog"

	"github.com/init-pkg/menu-import/domain/app"
	"github.com/init-pkg/menu-import/internal/config"

	"github.com/redis/go-redis/v9"
)

// New picks Redis when a client is configured and falls back to memory.
func New(log *slog.Logger, cfg *config.Config, client *redis.Client) app.ImportSessionStore {
	if client == nil {
		log.Warn("redis is not configured, import sessions are kept in memory")
		return NewMemoryStore(cfg.Import.SessionTTL)
	}
	return NewRedisStore(client, cfg.Import.SessionTTL)
}
