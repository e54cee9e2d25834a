package menu_classifier

import (
	"strings"
)

// MenuRecord is one normalized catalog item read from a sheet row.
type MenuRecord struct {
	Category       string   `json:"category"`
	Subcategory    string   `json:"subcategory,omitempty"`
	NameEN         string   `json:"name_en"`
	NameAR         string   `json:"name_ar"`
	Price          float64  `json:"price"`
	AvailableMeals []string `json:"available_meals"`
	CuisineType    string   `json:"cuisine_type"`
}

// Extract walks every row of the grid and builds records using the given
// assignment. Rows without an item name and rows that repeat the header are
// skipped. Zero surviving records is ErrEmptyExtraction.
func Extract(grid Grid, a Assignment) ([]MenuRecord, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	nameCol, _ := a.Column(RoleNameEN)
	priceCol, _ := a.Column(RolePrice)

	records := make([]MenuRecord, 0, len(grid))
	for r := range grid {
		nameCell := grid.At(r, nameCol)
		if nameCell.IsEmpty() {
			continue
		}
		priceCell := grid.At(r, priceCol)
		if isKeyword(RoleNameEN, fold(nameCell)) || isKeyword(RolePrice, fold(priceCell)) {
			continue
		}

		records = append(records, MenuRecord{
			Category:       categoryOf(grid, r, a),
			Subcategory:    textOf(grid, r, a, RoleSubcategory),
			NameEN:         strings.TrimSpace(nameCell.String()),
			NameAR:         textOf(grid, r, a, RoleNameAR),
			Price:          CleanPrice(priceCell),
			AvailableMeals: ParseMeals(textOf(grid, r, a, RoleMeal)),
			CuisineType:    BucketCuisine(textOf(grid, r, a, RoleCuisine)),
		})
	}

	if len(records) == 0 {
		return nil, ErrEmptyExtraction
	}
	return records, nil
}

func textOf(grid Grid, row int, a Assignment, role Role) string {
	c, ok := a.Column(role)
	if !ok {
		return ""
	}
	return strings.TrimSpace(grid.At(row, c).String())
}

func categoryOf(grid Grid, row int, a Assignment) string {
	if s := textOf(grid, row, a, RoleCategory); s != "" {
		return s
	}
	return DefaultCategory
}

// CleanPrice coerces a price cell to a non-negative number. Numeric cells are
// used as they are; text keeps only digits and the decimal point ("12.50 SAR"
// is 12.5, "25 S.R." is 25). Anything unparsable is 0.
func CleanPrice(c Cell) float64 {
	switch c.Kind {
	case KindNumber:
		return max(c.Number, 0)
	case KindString:
		var b strings.Builder
		for _, r := range c.Text {
			r = foldDigit(r)
			if (r >= '0' && r <= '9') || r == '.' {
				b.WriteRune(r)
			}
		}
		v, ok := parseFinite(leadingNumber(b.String()))
		if !ok {
			return 0
		}
		return v
	default:
		return 0
	}
}

// leadingNumber drops dots left over from abbreviations around the number and
// cuts a second decimal point with everything after it.
func leadingNumber(s string) string {
	s = strings.Trim(s, ".")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		if j := strings.IndexByte(s[i+1:], '.'); j >= 0 {
			s = s[:i+1+j]
		}
	}
	return s
}

// foldDigit maps Arabic-Indic and Eastern Arabic-Indic digits to ASCII.
func foldDigit(r rune) rune {
	switch {
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠')
	case r >= '۰' && r <= '۹':
		return '0' + (r - '۰')
	case r == '٫':
		return '.'
	default:
		return r
	}
}

// ParseMeals splits a meal cell on "," and "&" and keeps the recognised meal
// tags in order of first appearance. An empty result is [Lunch, Dinner].
func ParseMeals(s string) []string {
	tokens := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '&' })

	meals := make([]string, 0, len(tokens))
	seen := make(map[string]bool, 4)
	for _, tok := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		var meal string
		switch {
		case strings.Contains(tok, "breakfast"):
			meal = MealBreakfast
		case strings.Contains(tok, "lunch"):
			meal = MealLunch
		case strings.Contains(tok, "dinner"):
			meal = MealDinner
		case strings.Contains(tok, "tea"):
			meal = MealHighTea
		default:
			continue
		}
		if !seen[meal] {
			seen[meal] = true
			meals = append(meals, meal)
		}
	}

	if len(meals) == 0 {
		return defaultMeals()
	}
	return meals
}

// BucketCuisine maps free text to Fast Food, Desi or General.
func BucketCuisine(s string) string {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "fast"):
		return CuisineFastFood
	case containsAny(s, []string{"desi", "pakistani", "indian"}):
		return CuisineDesi
	default:
		return CuisineGeneral
	}
}

// Categories lists the distinct category labels of the records in order of
// first appearance. Labels are compared exactly as typed.
func Categories(records []MenuRecord) []string {
	seen := make(map[string]bool)
	labels := make([]string, 0)
	for _, rec := range records {
		if seen[rec.Category] {
			continue
		}
		seen[rec.Category] = true
		labels = append(labels, rec.Category)
	}
	return labels
}
