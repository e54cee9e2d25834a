package app

import (
	"errors"
	"fmt"
)

var (
	ErrCategoryResolution = errors.New("categories could not be resolved in the catalog")
	ErrPersistence        = errors.New("menu items could not be saved")
	ErrSessionNotFound    = errors.New("import session not found or expired")
	ErrRejected           = errors.New("column mapping was rejected")
	ErrSuggestionDisabled = errors.New("column suggestion is not configured")
	ErrSearchDisabled     = errors.New("menu search is not configured")
)

type ImportStage string

const (
	StageCategoryResolution ImportStage = "category_resolution"
	StagePersistence        ImportStage = "persistence"
)

// ImportError is returned for failures after classification succeeded.
// Validated is the number of records that passed extraction; none of them were
// committed.
type ImportError struct {
	Stage     ImportStage
	Validated int
	Err       error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%s failed after %d validated records: %v", e.Stage, e.Validated, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
