package model

import "time"

// Image is a blob-store object recorded after a successful upload.
// ProductID is NULL until the image is explicitly attached to a product;
// such provisional rows are subject to reaping after a TTL. Position is the
// image's slot in the product's gallery, assigned from the attach request
// order; CoverImageIndex resolves against images sorted by it.
type Image struct {
	ID        uint   `gorm:"primaryKey"`
	URL       string `gorm:"uniqueIndex;not null"`
	ProductID *uint  `gorm:"index"`
	Position  int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
