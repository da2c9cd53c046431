package model

import "time"

// Category classifies products. Name uniqueness is enforced at the DB so that
// concurrent inline "create new category" submissions cannot produce duplicates.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Products []Product `gorm:"foreignKey:CategoryID"`
}
