package mapping_module

import (
	"github.com/init-pkg/menu-import/domain/app"
	mapping_service "github.com/init-pkg/menu-import/internal/app/mapping/general"
	header_mapping_service "github.com/init-pkg/menu-import/internal/app/mapping/header"

	"go.uber.org/fx"
)

func Register() fx.Option {
	return fx.Provide(
		fx.Annotate(mapping_service.New, fx.As(new(app.CategoryGate))),
		fx.Annotate(header_mapping_service.New, fx.As(new(app.ColumnSuggester))),
	)
}
