package bootstrap

import (
	"context"
	"log/slog"

	"github.com/init-pkg/menu-import/internal/config"
	"github.com/init-pkg/menu-import/internal/logging"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func coreOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			config.Load,
			newLogger,
			newHttpApp,
		),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),
	)
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(cfg.Log.Level, !cfg.IsLocal())
}

func newHttpApp(lc fx.Lifecycle, log *slog.Logger, cfg *config.Config) *fiber.App {
	mainApp := fiber.New(fiber.Config{
		AppName:     "menu-import",
		BodyLimit:   cfg.Http.BodyLimitMB * 1024 * 1024,
		ReadTimeout: cfg.Http.ReadTimeout,
	})

	mainApp.Get("/health", func(fctx fiber.Ctx) error {
		return fctx.JSON(fiber.Map{"status": "ok"})
	})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := mainApp.Listen(cfg.Http.Addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
					log.Error("http server stopped", "err", err)
				}
			}()
			log.Info("http server listening", "addr", cfg.Http.Addr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return mainApp.ShutdownWithContext(ctx)
		},
	})

	return mainApp
}
