package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

// CreateProductRequest carries the admin form payload. Exactly one of
// CategoryID / NewCategory must be set: a positive CategoryID selects an
// existing category, a non-empty NewCategory creates one inline. The service
// rejects requests that provide neither or both.
type CreateProductRequest struct {
	Name        string          `json:"name"         validate:"required,min=1,max=120"`
	Description *string         `json:"description"`
	CategoryID  uint            `json:"category_id"`
	NewCategory string          `json:"new_category"`
	Price       decimal.Decimal `json:"price"        validate:"min=0"`
	Stock       int             `json:"stock"        validate:"min=0"`
}

// UpdateProductRequest updates mutable fields. SKU is immutable after
// creation and deliberately absent here.
type UpdateProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=1,max=120"`
	Description *string          `json:"description"`
	CategoryID  *uint            `json:"category_id"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"       validate:"omitempty,min=0"`
}

// ── Filter / Pagination ───────────────────────────────────────────────────────

type ProductFilter struct {
	Name       string `form:"name"`
	CategoryID uint   `form:"category_id"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type ProductResponse struct {
	ID              uint             `json:"id"`
	Name            string           `json:"name"`
	Description     *string          `json:"description,omitempty"`
	CategoryID      uint             `json:"category_id"`
	Category        CategoryResponse `json:"category"`
	Price           decimal.Decimal  `json:"price"`
	Stock           int              `json:"stock"`
	SKU             string           `json:"sku"`
	CoverImageIndex int              `json:"cover_image_index"`
	Images          []ImageResponse  `json:"images"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
