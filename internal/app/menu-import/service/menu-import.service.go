package menu_import_service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/init-pkg/menu-import/domain/app"
	menu_classifier "github.com/init-pkg/menu-import/internal/app/menu-import/classifier"
	"github.com/init-pkg/menu-import/internal/config"

	"github.com/google/uuid"
)

type MenuImportService struct {
	log       *slog.Logger
	parser    app.ExcelParserService
	sessions  app.ImportSessionStore
	gate      app.CategoryGate
	items     app.MenuItemStore
	suggester app.ColumnSuggester
	index     app.MenuSearchIndex

	defaultStock int
	sampleSize   int
	sessionTTL   time.Duration
	now          func() time.Time
	newID        func() string
}

var _ app.MenuImportService = &MenuImportService{}

func New(
	log *slog.Logger,
	cfg *config.Config,
	parser app.ExcelParserService,
	sessions app.ImportSessionStore,
	gate app.CategoryGate,
	items app.MenuItemStore,
	suggester app.ColumnSuggester,
	index app.MenuSearchIndex,
) *MenuImportService {
	return &MenuImportService{
		log:          log,
		parser:       parser,
		sessions:     sessions,
		gate:         gate,
		items:        items,
		suggester:    suggester,
		index:        index,
		defaultStock: cfg.Import.DefaultStock,
		sampleSize:   cfg.Import.SampleSize,
		sessionTTL:   cfg.Import.SessionTTL,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Preview classifies the first sheet of the file and parks the result in a
// session until it is confirmed or rejected. Nothing is written to the
// catalog.
func (this *MenuImportService) Preview(ctx context.Context, req app.PreviewRequest) (*app.Preview, error) {
	sheet, a, suggested, err := this.classify(ctx, req.File)
	if err != nil {
		return nil, err
	}

	records, err := menu_classifier.Extract(sheet.Grid, a)
	if err != nil {
		return nil, err
	}

	session := &app.ImportSession{
		ID:         this.newID(),
		BranchID:   req.BranchID,
		Filename:   req.Filename,
		SheetName:  sheet.SheetName,
		Grid:       sheet.Grid,
		Assignment: a,
		CreatedAt:  this.now(),
	}
	if err := this.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	this.log.Info("menu import previewed",
		"session", session.ID,
		"branch", req.BranchID,
		"file", req.Filename,
		"records", len(records),
		"suggested", suggested)

	return &app.Preview{
		SessionID:      session.ID,
		SheetName:      sheet.SheetName,
		Assignment:     a,
		Description:    a.Describe(sheet.Grid.Header()),
		Suggested:      suggested,
		SampleRecords:  records[:min(len(records), this.sampleSize)],
		ValidatedCount: len(records),
		ExpiresAt:      session.CreatedAt.Add(this.sessionTTL),
	}, nil
}

// Confirm consumes the session and imports its records. A session can be
// confirmed once.
func (this *MenuImportService) Confirm(ctx context.Context, sessionID string) (*app.Result, error) {
	session, err := this.sessions.Take(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	records, err := menu_classifier.Extract(session.Grid, session.Assignment)
	if err != nil {
		return nil, err
	}

	return this.commit(ctx, session.BranchID, records)
}

func (this *MenuImportService) Reject(ctx context.Context, sessionID string) error {
	if err := this.sessions.Drop(ctx, sessionID); err != nil {
		return err
	}
	this.log.Info("menu import rejected", "session", sessionID)
	return nil
}

// Import runs the whole pipeline in one call. confirm sees the detected
// mapping before any record is extracted; returning false aborts with
// ErrRejected and nothing is written.
func (this *MenuImportService) Import(ctx context.Context, req app.ImportRequest, confirm app.ConfirmFunc) (*app.Result, error) {
	sheet, a, _, err := this.classify(ctx, req.File)
	if err != nil {
		return nil, err
	}

	if !confirm(ctx, a.Describe(sheet.Grid.Header()), a) {
		this.log.Info("menu import rejected", "branch", req.BranchID, "file", req.Filename)
		return nil, app.ErrRejected
	}

	records, err := menu_classifier.Extract(sheet.Grid, a)
	if err != nil {
		return nil, err
	}

	return this.commit(ctx, req.BranchID, records)
}

// classify decodes the file and finds the column roles. When the heuristics
// cannot find the name or price column the suggester gets a try; its error is
// logged and the heuristic error is what the caller sees.
func (this *MenuImportService) classify(ctx context.Context, file []byte) (*app.ParsedSheet, menu_classifier.Assignment, bool, error) {
	sheet, err := this.parser.Parse(file)
	if err != nil {
		return nil, nil, false, err
	}

	a, err := menu_classifier.Classify(sheet.Grid)
	if err == nil {
		return sheet, a, false, nil
	}
	if !errors.Is(err, menu_classifier.ErrColumnDetection) || this.suggester == nil {
		return nil, nil, false, err
	}

	suggested, serr := this.suggester.Suggest(ctx, sheet.Grid)
	if serr != nil {
		if !errors.Is(serr, app.ErrSuggestionDisabled) {
			this.log.Warn("column suggestion failed", "err", serr)
		}
		return nil, nil, false, err
	}
	return sheet, suggested, true, nil
}

// commit resolves categories and writes all records in one batch. After a
// successful write the items are indexed for search; indexing failures are
// only logged.
func (this *MenuImportService) commit(ctx context.Context, branchID string, records []menu_classifier.MenuRecord) (*app.Result, error) {
	labels := menu_classifier.Categories(records)

	ids, err := this.gate.Resolve(ctx, branchID, labels)
	if err != nil {
		if !errors.Is(err, app.ErrCategoryResolution) {
			err = fmt.Errorf("%w: %w", app.ErrCategoryResolution, err)
		}
		return nil, &app.ImportError{Stage: app.StageCategoryResolution, Validated: len(records), Err: err}
	}

	items := make([]app.MenuItem, len(records))
	indexed := make([]app.IndexedMenuItem, len(records))
	for i, rec := range records {
		items[i] = app.MenuItem{
			ID:             this.newID(),
			BranchID:       branchID,
			CategoryID:     ids[rec.Category],
			Subcategory:    rec.Subcategory,
			NameEN:         rec.NameEN,
			NameAR:         rec.NameAR,
			Price:          rec.Price,
			Stock:          this.defaultStock,
			Status:         app.MenuItemStatusAvailable,
			AvailableMeals: rec.AvailableMeals,
			CuisineType:    rec.CuisineType,
		}
		indexed[i] = app.IndexedMenuItem{MenuItem: items[i], Category: rec.Category}
	}

	if err := this.items.InsertMenuItems(ctx, items); err != nil {
		return nil, &app.ImportError{
			Stage:     app.StagePersistence,
			Validated: len(records),
			Err:       fmt.Errorf("%w: %w", app.ErrPersistence, err),
		}
	}

	this.log.Info("menu imported",
		"branch", branchID,
		"items", len(items),
		"categories", len(labels))

	if this.index != nil {
		if err := this.index.IndexItems(ctx, indexed); err != nil {
			this.log.Warn("menu items not indexed", "branch", branchID, "err", err)
		}
	}

	return &app.Result{
		Imported:    len(items),
		Categories:  labels,
		CategoryIDs: ids,
	}, nil
}
