package menu_catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/init-pkg/menu-import/domain/app"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const insertBatchSize = 200

type categoryRow struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	BranchID  string `gorm:"column:branch_id"`
	Name      string `gorm:"column:name"`
	CreatedAt time.Time
}

func (categoryRow) TableName() string { return "categories" }

type menuItemRow struct {
	ID             string   `gorm:"primaryKey;type:varchar(36)"`
	BranchID       string   `gorm:"column:branch_id"`
	CategoryID     string   `gorm:"column:category_id"`
	Subcategory    string   `gorm:"column:subcategory"`
	NameEN         string   `gorm:"column:name_en"`
	NameAR         string   `gorm:"column:name_ar"`
	Price          float64  `gorm:"column:price"`
	Stock          int      `gorm:"column:stock"`
	Status         string   `gorm:"column:status"`
	AvailableMeals []string `gorm:"column:available_meals;serializer:json"`
	CuisineType    string   `gorm:"column:cuisine_type"`
	CreatedAt      time.Time
}

func (menuItemRow) TableName() string { return "menu_items" }

// Store is the gorm backed catalog: categories and menu items.
type Store struct {
	db *gorm.DB
}

var _ app.CatalogStore = &Store{}

func New(db *gorm.DB) *Store {
	return &Store{db}
}

func (this *Store) FindCategoryByName(ctx context.Context, branchID, name string) (*app.Category, error) {
	var rows []categoryRow
	err := this.db.WithContext(ctx).
		Where("branch_id = ? AND LOWER(name) = LOWER(?)", branchID, name).
		Order("created_at").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find category %q: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &app.Category{ID: rows[0].ID, BranchID: rows[0].BranchID, Name: rows[0].Name}, nil
}

func (this *Store) CreateCategory(ctx context.Context, branchID, name string) (*app.Category, error) {
	row := categoryRow{ID: uuid.NewString(), BranchID: branchID, Name: name}
	if err := this.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create category %q: %w", name, err)
	}
	return &app.Category{ID: row.ID, BranchID: row.BranchID, Name: row.Name}, nil
}

func (this *Store) InsertMenuItems(ctx context.Context, items []app.MenuItem) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]menuItemRow, len(items))
	for i, it := range items {
		rows[i] = toRow(it)
	}

	return this.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert %d menu items: %w", len(rows), err)
		}
		return nil
	})
}

func toRow(it app.MenuItem) menuItemRow {
	return menuItemRow{
		ID:             it.ID,
		BranchID:       it.BranchID,
		CategoryID:     it.CategoryID,
		Subcategory:    it.Subcategory,
		NameEN:         it.NameEN,
		NameAR:         it.NameAR,
		Price:          it.Price,
		Stock:          it.Stock,
		Status:         it.Status,
		AvailableMeals: it.AvailableMeals,
		CuisineType:    it.CuisineType,
	}
}
