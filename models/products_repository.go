package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ProductFilters narrows a product listing. All fields are optional.
type ProductFilters struct {
	Search     string
	CategoryID *uint
	LowStock   bool
}

// FallbackCategoryName is the display name used when a product has no
// linked category.
const FallbackCategoryName = "Geral"

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// List returns one page of products matching the filters plus the
// total match count, most recently updated first. Page is 1-indexed.
func (r *ProductsRepository) List(page, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.Model(&Product{})

	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", pattern, pattern)
	}
	if filters.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filters.CategoryID)
	}
	if filters.LowStock {
		query = query.Where("products.quantity <= products.min_stock")
	}

	// Count total after filtering, same predicate as the page query
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Order("products.updated_at DESC").
		Offset(offset).Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductsRepository) GetByID(id uint) (*Product, error) {
	var product Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

// Create inserts a new product. The denormalized category display name
// is resolved from the linked category at insert time.
func (r *ProductsRepository) Create(p *Product) error {
	p.CategoryName = r.categoryName(p.CategoryID)
	return r.db.Create(p).Error
}

// Update rewrites every editable field of an existing product.
// Quantity is deliberately excluded: stock levels change only through
// the movement ledger.
func (r *ProductsRepository) Update(p *Product) error {
	p.CategoryName = r.categoryName(p.CategoryID)

	res := r.db.Model(&Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":        p.Name,
			"category":    p.CategoryName,
			"category_id": p.CategoryID,
			"price":       p.Price,
			"min_stock":   p.MinStock,
			"description": p.Description,
			"image":       p.Image,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete removes a product; its movement rows go with it (cascade).
func (r *ProductsRepository) Delete(id uint) error {
	res := r.db.Delete(&Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductsRepository) categoryName(categoryID *uint) string {
	if categoryID == nil {
		return FallbackCategoryName
	}
	var category Category
	if err := r.db.First(&category, *categoryID).Error; err != nil {
		return FallbackCategoryName
	}
	return category.Name
}
