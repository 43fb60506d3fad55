package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultCategories is the seed set created by the installer.
var DefaultCategories = []string{"Eletrônicos", "Periféricos", "Móveis", "Escritório"}

// InstallerRepository backs the first-run setup endpoints. The system
// counts as installed once at least one category exists.
type InstallerRepository struct {
	db *gorm.DB
}

func NewInstallerRepository(db *gorm.DB) *InstallerRepository {
	return &InstallerRepository{
		db: db,
	}
}

func (r *InstallerRepository) Installed() (bool, error) {
	var count int64
	if err := r.db.Model(&Category{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Install seeds the default categories and one sample product. It is a
// no-op when any category already exists, so resubmitting is safe.
func (r *InstallerRepository) Install() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Category{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		categories := make([]Category, len(DefaultCategories))
		for i, name := range DefaultCategories {
			categories[i] = Category{Name: name}
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		sample := Product{
			Name:         "Produto Teste - Smartphone X",
			CategoryName: categories[0].Name,
			CategoryID:   &categories[0].ID,
			Quantity:     50,
			Price:        decimal.NewFromFloat(2999.99),
			MinStock:     10,
			Description:  "Produto de teste gerado automaticamente.",
		}
		return tx.Create(&sample).Error
	})
}
