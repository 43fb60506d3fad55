package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a tracked inventory item. Quantity is adjusted exclusively
// through the movement ledger (MovementsRepository.Register); product
// updates never write it directly.
//
// CategoryName duplicates the linked category's name for display and
// goes stale if the category is renamed. Kept for compatibility with
// the report output.
type Product struct {
	ID           uint            `gorm:"primaryKey"`
	Name         string          `gorm:"not null"`
	CategoryName string          `gorm:"column:category"`
	CategoryID   *uint           `gorm:"index"`
	Category     *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Quantity     int             `gorm:"not null;default:0"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	MinStock     int             `gorm:"not null;default:5"`
	Description  string
	Image        string
	UpdatedAt    time.Time
}

func (p *Product) TableName() string {
	return "products"
}

// LowStock reports whether the product is at or below its minimum
// stock threshold.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.MinStock
}
