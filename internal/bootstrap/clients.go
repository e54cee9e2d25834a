package bootstrap

import (
	"log/slog"

	"github.com/init-pkg/menu-import/domain/app"
	dashboard_client "github.com/init-pkg/menu-import/internal/clients/dashboard"
	openai_client "github.com/init-pkg/menu-import/internal/clients/openai"
	opensearch_client "github.com/init-pkg/menu-import/internal/clients/opensearch"
	rabbitmq_client "github.com/init-pkg/menu-import/internal/clients/rabbitmq"
	redis_client "github.com/init-pkg/menu-import/internal/clients/redis"
	"github.com/init-pkg/menu-import/internal/config"
	"github.com/init-pkg/menu-import/internal/database"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

func clientsOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			openDatabase,
			openai_client.New,
			opensearch_client.New,
			redis_client.New,
			rabbitmq_client.New,
			fx.Annotate(dashboard_client.New, fx.As(new(app.JobReporter))),
		),
	)
}

func openDatabase(log *slog.Logger, cfg *config.Config) (*gorm.DB, error) {
	dbCfg := cfg.Infrastructure.Db
	if dbCfg.Migrate {
		if err := database.Migrate(dbCfg); err != nil {
			return nil, err
		}
		log.Info("database migrated", "driver", dbCfg.Driver)
	}
	return database.Open(dbCfg)
}
