package models

import "time"

// Category groups products. Deleting a category detaches its products
// (category_id goes NULL) rather than deleting them.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Category) TableName() string {
	return "categories"
}
