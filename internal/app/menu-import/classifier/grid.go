package menu_classifier

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

type CellKind uint8

const (
	KindEmpty CellKind = iota
	KindString
	KindNumber
)

// Cell is a single primitive spreadsheet value: a string, a number or nothing.
type Cell struct {
	Kind   CellKind `json:"k"`
	Text   string   `json:"s,omitempty"`
	Number float64  `json:"n,omitempty"`
}

// Str builds a string cell. Blank strings collapse to an empty cell.
func Str(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: KindString, Text: s}
}

func Num(v float64) Cell {
	return Cell{Kind: KindNumber, Number: v}
}

func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty
}

// String renders the cell the way it is compared and stored. Numbers use the
// shortest representation ("35", "12.5").
func (c Cell) String() string {
	switch c.Kind {
	case KindString:
		return c.Text
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// IsNumeric reports whether the cell is a number or a string that parses as one.
func (c Cell) IsNumeric() bool {
	switch c.Kind {
	case KindNumber:
		return true
	case KindString:
		_, ok := parseFinite(c.Text)
		return ok
	default:
		return false
	}
}

// Grid is the rectangular-in-name-only sheet the classifier works on. Rows may
// have different lengths; At treats anything out of range as empty.
type Grid [][]Cell

func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return Cell{}
	}
	return g[row][col]
}

func (g Grid) rowEmpty(row int) bool {
	for _, c := range g[row] {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// UsableRows counts rows holding at least one non-empty cell.
func (g Grid) UsableRows() int {
	n := 0
	for r := range g {
		if !g.rowEmpty(r) {
			n++
		}
	}
	return n
}

// Header returns the first non-empty row, or nil.
func (g Grid) Header() []Cell {
	for r := range g {
		if !g.rowEmpty(r) {
			return g[r]
		}
	}
	return nil
}

// NormalizeRows turns decoded sheet rows into a Grid. Values may be strings,
// any Go numeric type, Cells or nil; everything else is stringified. Trailing
// empty cells and trailing empty rows are dropped, row order is preserved.
func NormalizeRows(rows [][]any) Grid {
	grid := make(Grid, 0, len(rows))
	for _, row := range rows {
		cells := make([]Cell, len(row))
		for i, v := range row {
			cells[i] = toCell(v)
		}
		end := len(cells)
		for end > 0 && cells[end-1].IsEmpty() {
			end--
		}
		grid = append(grid, cells[:end])
	}

	end := len(grid)
	for end > 0 && len(grid[end-1]) == 0 {
		end--
	}
	return grid[:end]
}

func toCell(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Cell{}
	case Cell:
		return x
	case string:
		return Str(x)
	case float64:
		return numCell(x)
	case float32:
		return numCell(float64(x))
	case int:
		return Num(float64(x))
	case int64:
		return Num(float64(x))
	case int32:
		return Num(float64(x))
	case uint:
		return Num(float64(x))
	case uint64:
		return Num(float64(x))
	case uint32:
		return Num(float64(x))
	case bool:
		return Str(strconv.FormatBool(x))
	case interface{ String() string }:
		return Str(x.String())
	default:
		return Cell{}
	}
}

func numCell(v float64) Cell {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Cell{}
	}
	return Num(v)
}

// parseFinite is strconv.ParseFloat without the "NaN"/"Inf" spellings, which
// collide with real dish names.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// fold is the comparison form of a cell: NFKC, lower case, trimmed.
func fold(c Cell) string {
	return strings.TrimSpace(strings.ToLower(norm.NFKC.String(c.String())))
}

func hasArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}
