package models

import (
	"errors"

	"gorm.io/gorm"
)

type MovementsRepository struct {
	db *gorm.DB
}

// MovementInput is a request to adjust a product's stock.
type MovementInput struct {
	ProductID uint
	Type      string
	Quantity  int
	Reason    string
}

// ReportEntry is one movement joined with its product's display
// fields. Product columns are NULL-safe strings so entries survive the
// LEFT JOIN even if the product row is gone mid-query.
type ReportEntry struct {
	ID          uint   `json:"id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
	CreatedAt   string `json:"created_at"`
}

func NewMovementsRepository(db *gorm.DB) *MovementsRepository {
	return &MovementsRepository{
		db: db,
	}
}

// Register applies one stock movement atomically: it appends the
// ledger row and adjusts the product quantity in a single transaction,
// so either both writes land or neither does.
//
// The OUT path re-checks stock with a guarded UPDATE
// (quantity >= ? in the WHERE clause), so two concurrent OUT requests
// can never both pass the insufficient-stock check against a stale
// read and drive the quantity negative: the loser matches zero rows
// and the whole transaction rolls back.
func (r *MovementsRepository) Register(in MovementInput) (*StockMovement, error) {
	if in.Quantity <= 0 || (in.Type != MovementIn && in.Type != MovementOut) {
		return nil, ErrInvalidMovement
	}

	movement := &StockMovement{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var product Product
		if err := tx.First(&product, in.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if in.Type == MovementOut && product.Quantity < in.Quantity {
			return &InsufficientStockError{Available: product.Quantity}
		}

		if err := tx.Create(movement).Error; err != nil {
			return err
		}

		update := tx.Model(&Product{})
		if in.Type == MovementOut {
			update = update.Where("id = ? AND quantity >= ?", in.ProductID, in.Quantity).
				Update("quantity", gorm.Expr("quantity - ?", in.Quantity))
		} else {
			update = update.Where("id = ?", in.ProductID).
				Update("quantity", gorm.Expr("quantity + ?", in.Quantity))
		}
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			// A concurrent OUT drained the stock between our read and
			// the guarded update. Roll everything back.
			var current int
			if err := tx.Model(&Product{}).
				Where("id = ?", in.ProductID).
				Select("quantity").
				Scan(&current).Error; err != nil {
				return err
			}
			return &InsufficientStockError{Available: current}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// Recent returns the latest movements joined with product name and
// category, newest first, capped at limit.
func (r *MovementsRepository) Recent(limit int) ([]ReportEntry, error) {
	var entries []ReportEntry
	err := r.db.
		Table("stock_movements").
		Select("stock_movements.id, stock_movements.product_id, stock_movements.type, stock_movements.quantity, stock_movements.reason, stock_movements.created_at, COALESCE(products.name, '') AS product_name, COALESCE(products.category, '') AS category").
		Joins("LEFT JOIN products ON products.id = stock_movements.product_id").
		Order("stock_movements.created_at DESC, stock_movements.id DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
