package menu_import_module

import (
	"context"
	"errors"
	"log/slog"

	menu_import_amqp_worker "github.com/init-pkg/menu-import/internal/app/menu-import/transports/amqp"

	"go.uber.org/fx"
)

// runWorker ties the queue consumer to the application lifecycle. When it
// stops on its own (broker gone) the application shuts down.
func runWorker(lc fx.Lifecycle, sd fx.Shutdowner, log *slog.Logger, worker *menu_import_amqp_worker.MenuImportAmqpWorker) {
	if !worker.Enabled() {
		log.Info("rabbitmq is not configured, menu import worker disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("menu import worker stopped", "err", err)
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
