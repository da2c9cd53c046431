package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order and OrderItem exist as schema only: fulfillment and payment are out of
// scope for this service, but the storefront shares the database.
type Order struct {
	ID         uint            `gorm:"primaryKey"`
	CustomerID uint            `gorm:"index;not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status     string          `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Customer Customer    `gorm:"foreignKey:CustomerID"`
	Items    []OrderItem `gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots the price at purchase time, independent of later
// product price changes.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"index;not null"`
	ProductID uint            `gorm:"index;not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
