package excel_parser_service

import (
	"math"
	"strconv"
	"strings"

	menu_classifier "github.com/init-pkg/menu-import/internal/app/menu-import/classifier"

	"github.com/xuri/excelize/v2"
)

// getFilledGrid reads a sheet into a typed grid: numbers stay numbers, merged
// ranges repeat their top-left value in every covered cell.
func getFilledGrid(f *excelize.File, sheet string) (menu_classifier.Grid, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	grid := make([][]any, len(rows))
	for r := range grid {
		grid[r] = make([]any, maxCol)
		for c, raw := range rows[r] {
			grid[r][c] = typedValue(f, sheet, r, c, raw)
		}
	}

	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}
	for _, merge := range merges {
		startCol, startRow, err := excelize.CellNameToCoordinates(merge.GetStartAxis())
		if err != nil {
			continue
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(merge.GetEndAxis())
		if err != nil {
			continue
		}
		startCol--
		startRow--
		endCol--
		endRow--

		var val any = strings.TrimSpace(merge.GetCellValue())
		if startRow < len(grid) && startCol < len(grid[startRow]) && grid[startRow][startCol] != nil {
			val = grid[startRow][startCol]
		}
		for r := startRow; r <= endRow && r < len(grid); r++ {
			for c := startCol; c <= endCol && c < len(grid[r]); c++ {
				grid[r][c] = val
			}
		}
	}

	return menu_classifier.NormalizeRows(grid), nil
}

// typedValue keeps numeric cells as float64. Cells without an explicit type
// are numeric when their raw value parses; everything else is text.
func typedValue(f *excelize.File, sheet string, row, col int, raw string) any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return raw
	}
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return raw
	}

	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if v, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	}
	return raw
}
