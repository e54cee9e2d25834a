package app

import (
	"time"

	menu_classifier "github.com/init-pkg/menu-import/internal/app/menu-import/classifier"
)

type PreviewRequest struct {
	BranchID string
	Filename string
	File     []byte
}

// Preview is what the user accepts or rejects before anything is written.
type Preview struct {
	SessionID      string                       `json:"session_id"`
	SheetName      string                       `json:"sheet_name"`
	Assignment     menu_classifier.Assignment   `json:"assignment"`
	Description    string                       `json:"description"`
	Suggested      bool                         `json:"suggested"`
	SampleRecords  []menu_classifier.MenuRecord `json:"sample_records"`
	ValidatedCount int                          `json:"validated_count"`
	ExpiresAt      time.Time                    `json:"expires_at"`
}

type ImportRequest struct {
	BranchID string
	Filename string
	File     []byte
}

type Result struct {
	Imported    int               `json:"imported"`
	Categories  []string          `json:"categories"`
	CategoryIDs map[string]string `json:"category_ids"`
}

// ImportSession holds a classified sheet between preview and confirmation.
type ImportSession struct {
	ID         string                     `json:"id"`
	BranchID   string                     `json:"branch_id"`
	Filename   string                     `json:"filename"`
	SheetName  string                     `json:"sheet_name"`
	Grid       menu_classifier.Grid       `json:"grid"`
	Assignment menu_classifier.Assignment `json:"assignment"`
	CreatedAt  time.Time                  `json:"created_at"`
}

const MenuItemStatusAvailable = "Available"

// MenuItem is a persisted catalog row.
type MenuItem struct {
	ID             string
	BranchID       string
	CategoryID     string
	Subcategory    string
	NameEN         string
	NameAR         string
	Price          float64
	Stock          int
	Status         string
	AvailableMeals []string
	CuisineType    string
}

type Category struct {
	ID       string
	BranchID string
	Name     string
}

// SearchHit is a menu item found in the search index.
type SearchHit struct {
	ID          string  `json:"id"`
	NameEN      string  `json:"name_en"`
	NameAR      string  `json:"name_ar"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory,omitempty"`
	Price       float64 `json:"price"`
	CuisineType string  `json:"cuisine_type"`
	Score       float64 `json:"score"`
}
