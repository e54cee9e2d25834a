package app

import (
	"context"

	menu_classifier "github.com/init-pkg/menu-import/internal/app/menu-import/classifier"
)

// ConfirmFunc is shown the detected mapping and returns false to abort.
type ConfirmFunc func(ctx context.Context, description string, a menu_classifier.Assignment) bool

type MenuImportService interface {
	Preview(ctx context.Context, req PreviewRequest) (*Preview, error)
	Confirm(ctx context.Context, sessionID string) (*Result, error)
	Reject(ctx context.Context, sessionID string) error
	Import(ctx context.Context, req ImportRequest, confirm ConfirmFunc) (*Result, error)
}

type ImportSessionStore interface {
	Save(ctx context.Context, s *ImportSession) error
	// Take returns the session and removes it. ErrSessionNotFound when absent.
	Take(ctx context.Context, id string) (*ImportSession, error)
	Drop(ctx context.Context, id string) error
}

// CategoryGate maps raw category labels to catalog ids, creating missing ones.
type CategoryGate interface {
	Resolve(ctx context.Context, branchID string, labels []string) (map[string]string, error)
}

type ColumnSuggester interface {
	Suggest(ctx context.Context, grid menu_classifier.Grid) (menu_classifier.Assignment, error)
}

type MenuSearchIndex interface {
	IndexItems(ctx context.Context, items []IndexedMenuItem) error
	Search(ctx context.Context, branchID, query string, limit int) ([]SearchHit, error)
}

type IndexedMenuItem struct {
	MenuItem
	Category string
}
