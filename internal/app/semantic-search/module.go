package semantic_search_module

import (
	"github.com/init-pkg/menu-import/domain/app"
	semantic_search_service "github.com/init-pkg/menu-import/internal/app/semantic-search/service"

	"go.uber.org/fx"
)

func Register() fx.Option {
	return fx.Provide(
		fx.Annotate(semantic_search_service.New, fx.As(new(app.MenuSearchIndex))),
	)
}
