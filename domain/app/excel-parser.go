package app

import menu_classifier "github.com/init-pkg/menu-import/internal/app/menu-import/classifier"

// ParsedSheet is the first sheet of an uploaded workbook as a typed grid.
type ParsedSheet struct {
	SheetName string               `json:"sheet_name"`
	Grid      menu_classifier.Grid `json:"grid"`
}
