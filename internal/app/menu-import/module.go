package menu_import_module

import (
	"github.com/init-pkg/menu-import/domain/app"
	menu_catalog "github.com/init-pkg/menu-import/internal/app/menu-import/catalog"
	menu_import_service "github.com/init-pkg/menu-import/internal/app/menu-import/service"
	menu_import_session "github.com/init-pkg/menu-import/internal/app/menu-import/session"
	menu_import_amqp_worker "github.com/init-pkg/menu-import/internal/app/menu-import/transports/amqp"
	menu_import_http_handler "github.com/init-pkg/menu-import/internal/app/menu-import/transports/http"

	"go.uber.org/fx"
)

func Register() fx.Option {
	return fx.Options(
		fx.Provide(
			menu_import_session.New,
			fx.Annotate(menu_catalog.New, fx.As(new(app.CategoryStore)), fx.As(new(app.MenuItemStore))),
			fx.Annotate(menu_import_service.New, fx.As(new(app.MenuImportService))),
			menu_import_http_handler.New,
			menu_import_amqp_worker.New,
		),
		fx.Invoke(runWorker),
	)
}
