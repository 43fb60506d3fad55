package models

import "time"

// Movement types.
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

// StockMovement is one immutable ledger entry: a stock increase (IN)
// or decrease (OUT) for a single product. Rows are only ever inserted;
// they disappear solely through the product's cascade delete.
type StockMovement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Type      string    `gorm:"not null" json:"type"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *StockMovement) TableName() string {
	return "stock_movements"
}
