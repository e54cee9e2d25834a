package menu_catalog

import (
	"context"
	"os"
	"testing"

	"github.com/init-pkg/menu-import/domain/app"
	"github.com/init-pkg/menu-import/internal/config"
	"github.com/init-pkg/menu-import/internal/database"

	"github.com/google/uuid"
)

func TestToRow(t *testing.T) {
	it := app.MenuItem{
		ID:             "i1",
		BranchID:       "b1",
		CategoryID:     "c1",
		NameEN:         "Tea",
		NameAR:         "شاي",
		Price:          5,
		Stock:          100,
		Status:         app.MenuItemStatusAvailable,
		AvailableMeals: []string{"High Tea"},
		CuisineType:    "General",
	}

	row := toRow(it)
	if row.ID != "i1" || row.CategoryID != "c1" || row.NameAR != "شاي" || row.Stock != 100 {
		t.Errorf("row = %+v", row)
	}
	if len(row.AvailableMeals) != 1 || row.AvailableMeals[0] != "High Tea" {
		t.Errorf("AvailableMeals = %q", row.AvailableMeals)
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	driver := os.Getenv("TEST_DATABASE_DRIVER")
	if driver == "" {
		driver = database.DriverPostgres
	}
	cfg := config.DbConfig{Driver: driver, Dsn: dsn, MaxOpenConns: 2, MaxIdleConns: 1}

	if err := database.Migrate(cfg); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return New(db)
}

func TestStoreCategoriesAreCaseInsensitive(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	branch := uuid.NewString()

	created, err := store.CreateCategory(ctx, branch, "Burgers")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	found, err := store.FindCategoryByName(ctx, branch, "BURGERS")
	if err != nil {
		t.Fatalf("FindCategoryByName: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("found = %+v, want %s", found, created.ID)
	}

	missing, err := store.FindCategoryByName(ctx, uuid.NewString(), "Burgers")
	if err != nil {
		t.Fatalf("FindCategoryByName: %v", err)
	}
	if missing != nil {
		t.Errorf("found %+v in another branch", missing)
	}
}

func TestStoreInsertMenuItems(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	branch := uuid.NewString()

	cat, err := store.CreateCategory(ctx, branch, "Drinks")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	items := []app.MenuItem{
		{ID: uuid.NewString(), BranchID: branch, CategoryID: cat.ID, NameEN: "Tea", Price: 5, Stock: 100,
			Status: app.MenuItemStatusAvailable, AvailableMeals: []string{"High Tea"}, CuisineType: "General"},
		{ID: uuid.NewString(), BranchID: branch, CategoryID: cat.ID, NameEN: "Coffee", Price: 9, Stock: 100,
			Status: app.MenuItemStatusAvailable, AvailableMeals: []string{"Breakfast"}, CuisineType: "General"},
	}
	if err := store.InsertMenuItems(ctx, items); err != nil {
		t.Fatalf("InsertMenuItems: %v", err)
	}

	var count int64
	if err := store.db.Model(&menuItemRow{}).Where("branch_id = ?", branch).Count(&count).Error; err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
