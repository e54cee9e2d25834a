package bootstrap

import (
	excel_parser_module "github.com/init-pkg/menu-import/internal/app/excel-parser"
	excel_parser_http_handler "github.com/init-pkg/menu-import/internal/app/excel-parser/transports/http"
	mapping_module "github.com/init-pkg/menu-import/internal/app/mapping"
	menu_import_module "github.com/init-pkg/menu-import/internal/app/menu-import"
	menu_import_http_handler "github.com/init-pkg/menu-import/internal/app/menu-import/transports/http"
	semantic_search_module "github.com/init-pkg/menu-import/internal/app/semantic-search"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
)

func appOptions() fx.Option {
	return fx.Options(
		excel_parser_module.Register(),
		mapping_module.Register(),
		semantic_search_module.Register(),
		menu_import_module.Register(),

		fx.Invoke(
			registerRoutes,
		),
	)
}

func registerRoutes(
	mainApp *fiber.App,
	excelParser *excel_parser_http_handler.ExcelParserHttpHandler,
	menuImport *menu_import_http_handler.MenuImportHttpHandler,
) {
	excelParser.Register(mainApp)
	menuImport.Register(mainApp)
}
