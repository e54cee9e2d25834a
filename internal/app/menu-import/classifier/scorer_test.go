package menu_classifier

import (
	"errors"
	"testing"
)

func grid(rows ...[]any) Grid {
	return NormalizeRows(rows)
}

func row(cells ...any) []any {
	return cells
}

func TestClassifyHeaderedMenu(t *testing.T) {
	g := grid(
		row("Category", "Item", "Price"),
		row("Burgers", "Beef Burger", 35),
		row("Pizza", "Margherita", 40),
	)

	a, err := Classify(g)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	want := Assignment{RoleCategory: 0, RoleNameEN: 1, RolePrice: 2}
	if !a.Equal(want) {
		t.Fatalf("Classify = %v, want %v", a, want)
	}
}

func TestClassifyPriceKeywordAnyPosition(t *testing.T) {
	for _, kw := range Keywords(RolePrice) {
		for pos := 0; pos < 4; pos++ {
			header := []any{"Item", "Calories", "Category"}
			rows := [][]any{
				{"Beef Burger", 540, "Burgers"},
				{"Chicken Wrap", 420, "Wraps"},
				{"Falafel Plate", 380, "Sides"},
			}
			header = insertAt(header, pos, kw)
			for i := range rows {
				rows[i] = insertAt(rows[i], pos, 20+i)
			}

			g := NormalizeRows(append([][]any{header}, rows...))
			a, err := Classify(g)
			if err != nil {
				t.Fatalf("keyword %q at %d: Classify: %v", kw, pos, err)
			}
			if got, _ := a.Column(RolePrice); got != pos {
				t.Errorf("keyword %q at %d: price column = %d", kw, pos, got)
			}
		}
	}
}

func insertAt(s []any, i int, v any) []any {
	out := make([]any, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, v)
	return append(out, s[i:]...)
}

func TestClassifyArabicColumnWithoutHeaderKeyword(t *testing.T) {
	tests := []struct {
		name  string
		rows  [][]any
		wantA int
	}{
		{
			name: "last",
			rows: [][]any{
				{"Item", "Price", "Local"},
				{"Beef Burger", 35, "برجر لحم"},
				{"Margherita", 40, "بيتزا مارجريتا"},
			},
			wantA: 2,
		},
		{
			name: "first",
			rows: [][]any{
				{"Local", "Item", "Price"},
				{"برجر لحم", "Beef Burger", 35},
				{"بيتزا مارجريتا", "Margherita", 40},
			},
			wantA: 0,
		},
		{
			name: "middle",
			rows: [][]any{
				{"Item", "", "Price"},
				{"Beef Burger", "برجر لحم", 35},
				{"Margherita", "بيتزا مارجريتا", 40},
			},
			wantA: 1,
		},
	}
	for _, tt := range tests {
		a, err := Classify(NormalizeRows(tt.rows))
		if err != nil {
			t.Fatalf("%s: Classify: %v", tt.name, err)
		}
		if got, ok := a.Column(RoleNameAR); !ok || got != tt.wantA {
			t.Errorf("%s: name_ar column = %d (ok=%v), want %d", tt.name, got, ok, tt.wantA)
		}
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	g := grid(
		row("القسم", "Item", "Arabic", "Price", "Meals", "Cuisine"),
		row("Burgers", "Beef Burger", "برجر", "35 SAR", "Lunch & Dinner", "Fast Food"),
		row("Curries", "Chicken Karahi", "كاراهي", "48", "Dinner", "Desi"),
	)

	first, err := Classify(g)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Classify(g)
		if err != nil {
			t.Fatalf("Classify #%d: %v", i, err)
		}
		if !again.Equal(first) {
			t.Fatalf("Classify #%d = %v, want %v", i, again, first)
		}
	}
}

func TestClassifyFullMenu(t *testing.T) {
	g := grid(
		row("Category", "Subcategory", "Item Name", "Arabic Name", "Price (SAR)", "Meals", "Cuisine"),
		row("Mains", "Burgers", "Beef Burger", "برجر لحم", 35, "Lunch, Dinner", "Fast Food"),
		row("Mains", "Curries", "Chicken Karahi", "دجاج كراهي", 48, "Dinner", "Pakistani"),
		row("Drinks", "Hot", "Karak Tea", "شاي كرك", 8, "Breakfast & High Tea", "Desi"),
	)

	a, err := Classify(g)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	want := Assignment{
		RoleCategory:    0,
		RoleSubcategory: 1,
		RoleNameEN:      2,
		RoleNameAR:      3,
		RolePrice:       4,
		RoleMeal:        5,
		RoleCuisine:     6,
	}
	if !a.Equal(want) {
		t.Fatalf("Classify = %v, want %v", a, want)
	}
}

func TestClassifySubcategoryBeforeCategory(t *testing.T) {
	g := grid(
		row("Subcategory", "Category", "Item", "Price"),
		row("Burgers", "Mains", "Beef Burger", 35),
		row("Pizza", "Mains", "Margherita", 40),
	)

	a, err := Classify(g)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if c, _ := a.Column(RoleCategory); c != 1 {
		t.Errorf("category column = %d, want 1", c)
	}
	if c, _ := a.Column(RoleSubcategory); c != 0 {
		t.Errorf("subcategory column = %d, want 0", c)
	}
}

func TestClassifySharedColumnGoesToHighestScore(t *testing.T) {
	// "Arabic Name" also contains the English "name" keyword; the Arabic
	// evidence is stronger so name_en has to move to the plain "Name" column.
	g := grid(
		row("Arabic Name", "Name", "Price"),
		row("برجر", "Burger", 20),
		row("بيتزا", "Pizza", 30),
	)

	a, err := Classify(g)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if c, _ := a.Column(RoleNameAR); c != 0 {
		t.Errorf("name_ar column = %d, want 0", c)
	}
	if c, _ := a.Column(RoleNameEN); c != 1 {
		t.Errorf("name_en column = %d, want 1", c)
	}

	seen := map[int]Role{}
	for r, c := range a {
		if r == RoleCategory {
			continue
		}
		if other, dup := seen[c]; dup {
			t.Errorf("column %d assigned to both %s and %s", c, other, r)
		}
		seen[c] = r
	}
}

func TestClassifyBilingualItemColumnKeepsNameEN(t *testing.T) {
	rows := [][]any{row("Category", "Item", "Price")}
	for i := 0; i < 8; i++ {
		rows = append(rows, row("Grills", "Chicken Shawarma شاورما دجاج", 20+i))
	}
	g := grid(rows...)

	// The Arabic script votes outweigh the "Item" header, but the column is
	// the only candidate for name_en.
	scores := Score(g)
	if scores.Of(1, RoleNameAR) <= scores.Of(1, RoleNameEN) {
		t.Fatalf("name_ar score %d not above name_en score %d", scores.Of(1, RoleNameAR), scores.Of(1, RoleNameEN))
	}

	a, err := Classify(g)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	want := Assignment{RoleCategory: 0, RoleNameEN: 1, RolePrice: 2}
	if !a.Equal(want) {
		t.Fatalf("Classify = %v, want %v", a, want)
	}

	records, err := Extract(g, a)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(records) != 8 || records[0].NameEN != "Chicken Shawarma شاورما دجاج" || records[7].Price != 27 {
		t.Errorf("records = %+v", records)
	}
}

func TestClassifyFailsWithoutNameColumn(t *testing.T) {
	g := grid(
		row("Burgers", "Beef Burger", 35),
		row("Pizza", "Margherita", 40),
	)

	_, err := Classify(g)
	if !errors.Is(err, ErrColumnDetection) {
		t.Fatalf("Classify error = %v, want ErrColumnDetection", err)
	}
}

func TestClassifyFailsWithoutPriceColumn(t *testing.T) {
	g := grid(
		row("Category", "Item"),
		row("Burgers", "Beef Burger"),
		row("Pizza", "Margherita"),
	)

	_, err := Classify(g)
	if !errors.Is(err, ErrColumnDetection) {
		t.Fatalf("Classify error = %v, want ErrColumnDetection", err)
	}
}

func TestClassifyInsufficientData(t *testing.T) {
	tests := []struct {
		name string
		g    Grid
	}{
		{"nil", nil},
		{"empty rows", grid(row(), row("", nil))},
		{"header only", grid(row("Item", "Price"))},
		{"header and blank rows", grid(row("Item", "Price"), row(" ", ""), row())},
	}
	for _, tt := range tests {
		if _, err := Classify(tt.g); !errors.Is(err, ErrInsufficientData) {
			t.Errorf("%s: Classify error = %v, want ErrInsufficientData", tt.name, err)
		}
	}
}

// The category fallback takes the first column not used by name_en, price or
// name_ar, whatever it holds. This documents the accepted imprecision.
func TestClassifyCategoryFallbackTakesFirstUnclaimedColumn(t *testing.T) {
	g := grid(
		row("Item", "Notes", "Price"),
		row("Beef Burger", "spicy", 35),
		row("Margherita", "", 40),
	)

	a, err := Classify(g)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if c, ok := a.Column(RoleCategory); !ok || c != 1 {
		t.Fatalf("category column = %d (ok=%v), want 1", c, ok)
	}

	records, err := Extract(g, a)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if records[0].Category != "spicy" {
		t.Errorf("record 0 category = %q, want %q", records[0].Category, "spicy")
	}
	if records[1].Category != DefaultCategory {
		t.Errorf("record 1 category = %q, want %q", records[1].Category, DefaultCategory)
	}
}

func TestClassifyWithoutAnyCategoryColumnStillLabelsRecords(t *testing.T) {
	g := grid(
		row("Item", "Price"),
		row("Beef Burger", 35),
		row("Margherita", 40),
	)

	a, err := Classify(g)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if _, ok := a.Column(RoleCategory); ok {
		t.Fatalf("category unexpectedly resolved: %v", a)
	}

	records, err := Extract(g, a)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for i, rec := range records {
		if rec.Category == "" {
			t.Errorf("record %d has no category", i)
		}
	}
}

func TestScoreOnlyLooksAtScanWindow(t *testing.T) {
	rows := [][]any{{"Item", "Price", "X"}}
	for i := 0; i < ScanWindow+10; i++ {
		rows = append(rows, []any{"Dish", 10, ""})
	}
	rows[ScanWindow+5][2] = "Breakfast"

	scores := Score(NormalizeRows(rows))
	if got := scores.Of(2, RoleMeal); got != 0 {
		t.Errorf("meal score outside window = %d, want 0", got)
	}
	if got := scores.Of(1, RolePrice); got != weightKeywordExact+ScanWindow-1 {
		t.Errorf("price score = %d, want %d", got, weightKeywordExact+ScanWindow-1)
	}
}

func TestKeywordVote(t *testing.T) {
	tests := []struct {
		role Role
		s    string
		want int
	}{
		{RolePrice, "price", weightKeywordExact},
		{RolePrice, "price (sar)", weightKeyword},
		{RolePrice, "السعر", weightKeywordExact},
		{RoleCategory, "sub category", weightKeyword},
		{RoleSubcategory, "sub category", weightKeywordExact},
		{RoleNameEN, "beef burger", 0},
		{RoleNameEN, "it", 0},
	}
	for _, tt := range tests {
		if got := keywordVote(tt.role, tt.s); got != tt.want {
			t.Errorf("keywordVote(%s, %q) = %d, want %d", tt.role, tt.s, got, tt.want)
		}
	}
}

func TestAssignmentDescribe(t *testing.T) {
	header := []Cell{Str("Category"), Str("Item"), Str("Price")}
	a := Assignment{RolePrice: 2, RoleNameEN: 1, RoleCategory: 0}

	want := "Column 1 \"Category\" -> Category\nColumn 2 \"Item\" -> Name (English)\nColumn 3 \"Price\" -> Price"
	if got := a.Describe(header); got != want {
		t.Errorf("Describe =\n%s\nwant\n%s", got, want)
	}
}

func TestAssignmentValidate(t *testing.T) {
	if err := (Assignment{RoleNameEN: 0, RolePrice: 1}).Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if err := (Assignment{RoleNameEN: 0}).Validate(); !errors.Is(err, ErrColumnDetection) {
		t.Errorf("Validate without price = %v, want ErrColumnDetection", err)
	}
	if err := (Assignment{RoleNameEN: 0, RolePrice: 1, Role("sku"): 2}).Validate(); !errors.Is(err, ErrColumnDetection) {
		t.Errorf("Validate with unknown role = %v, want ErrColumnDetection", err)
	}
}
