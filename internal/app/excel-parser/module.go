package excel_parser_module

import (
	"github.com/init-pkg/menu-import/domain/app"
	excel_parser_service "github.com/init-pkg/menu-import/internal/app/excel-parser/service"
	excel_parser_http_handler "github.com/init-pkg/menu-import/internal/app/excel-parser/transports/http"

	"go.uber.org/fx"
)

func Register() fx.Option {
	return fx.Provide(
		fx.Annotate(excel_parser_service.New, fx.As(new(app.ExcelParserService))),
		excel_parser_http_handler.New,
	)
}
