package model

import "time"

// Customer holds storefront buyer details. Schema only — checkout is handled
// outside this service.
type Customer struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	Email      string `gorm:"uniqueIndex;not null"`
	Phone      *string
	Address    *string
	City       *string
	PostalCode *string
	Country    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Orders []Order `gorm:"foreignKey:CustomerID"`
}
