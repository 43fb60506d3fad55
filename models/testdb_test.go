package models

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway SQLite store with the production schema.
// _txlock=immediate matches the production SQLite setup: writers queue
// at BEGIN instead of deadlocking on a lock upgrade, which the
// concurrent movement test relies on.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:%s?_busy_timeout=5000&_txlock=immediate&_foreign_keys=on",
		filepath.Join(t.TempDir(), "test.db"),
	)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&Category{}, &Product{}, &StockMovement{}))
	return db
}

func createCategory(t *testing.T, db *gorm.DB, name string) *Category {
	t.Helper()
	category := &Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createProduct(t *testing.T, db *gorm.DB, p Product) *Product {
	t.Helper()
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func productQuantity(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var product Product
	require.NoError(t, db.First(&product, id).Error)
	return product.Quantity
}

func movementCount(t *testing.T, db *gorm.DB, productID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&StockMovement{}).Where("product_id = ?", productID).Count(&count).Error)
	return count
}
