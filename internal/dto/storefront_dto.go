package dto

import "github.com/shopspring/decimal"

// StorefrontProduct is the trimmed product card shown on the landing page.
type StorefrontProduct struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	CategoryName  string          `json:"category_name"`
	CoverImageURL *string         `json:"cover_image_url,omitempty"`
}

type StorefrontResponse struct {
	FeaturedProducts []StorefrontProduct `json:"featured_products"`
	Categories       []CategoryResponse  `json:"categories"`
}
