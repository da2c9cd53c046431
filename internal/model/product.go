package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item. SKU is generated once at creation and never
// updated afterwards; the unique index is the backstop against generator
// collisions. CoverImageIndex points into the ordered Images set and stays 0
// while the product has no images.
type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"index;not null"`
	Description *string
	CategoryID  uint            `gorm:"index;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	SKU         string          `gorm:"uniqueIndex;not null"`
	// CoverImageIndex is clamped to [0, len(Images)-1] when images are attached.
	CoverImageIndex int `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Category Category `gorm:"foreignKey:CategoryID"`
	Images   []Image  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
