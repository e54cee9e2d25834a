package mapping_service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/init-pkg/menu-import/domain/app"
)

// CategoryGate resolves raw category labels against the catalog, creating the
// ones that do not exist yet.
type CategoryGate struct {
	log   *slog.Logger
	store app.CategoryStore
}

var _ app.CategoryGate = &CategoryGate{}

func New(log *slog.Logger, store app.CategoryStore) *CategoryGate {
	return &CategoryGate{log: log, store: store}
}

// Resolve runs label by label, in order. Each label is looked up
// case-insensitively first and only created when missing, so resolving the
// same labels twice never creates duplicates. Labels differing only in case
// end up on the same category.
func (this *CategoryGate) Resolve(ctx context.Context, branchID string, labels []string) (map[string]string, error) {
	ids := make(map[string]string, len(labels))
	created := 0

	for _, label := range labels {
		if _, ok := ids[label]; ok {
			continue
		}
		name := strings.TrimSpace(label)
		if name == "" {
			continue
		}

		found, err := this.store.FindCategoryByName(ctx, branchID, name)
		if err != nil {
			return nil, fmt.Errorf("%w: find %q: %w", app.ErrCategoryResolution, name, err)
		}
		if found != nil {
			ids[label] = found.ID
			continue
		}

		cat, err := this.store.CreateCategory(ctx, branchID, name)
		if err != nil {
			return nil, fmt.Errorf("%w: create %q: %w", app.ErrCategoryResolution, name, err)
		}
		ids[label] = cat.ID
		created++
	}

	this.log.Info("categories resolved",
		"branch", branchID,
		"labels", len(labels),
		"created", created)

	return ids, nil
}
