package app

import "context"

type CategoryStore interface {
	// FindCategoryByName matches case-insensitively within the branch and
	// returns nil, nil when nothing matches.
	FindCategoryByName(ctx context.Context, branchID, name string) (*Category, error)
	CreateCategory(ctx context.Context, branchID, name string) (*Category, error)
}

type MenuItemStore interface {
	// InsertMenuItems writes all items or none.
	InsertMenuItems(ctx context.Context, items []MenuItem) error
}

type CatalogStore interface {
	CategoryStore
	MenuItemStore
}

type JobReporter interface {
	UpdateJobStatus(ctx context.Context, jobID uint64, status string) error
	MarkJobSuccess(ctx context.Context, jobID uint64, notes string, resultData map[string]string) error
	MarkJobFailed(ctx context.Context, jobID uint64, errorMessage string) error
}
