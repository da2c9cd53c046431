package dto

import "time"

// ── Request DTOs ──────────────────────────────────────────────────────────────

// AttachImagesRequest claims previously uploaded images for a product. URLs
// must reference provisional uploads; their order here becomes the product's
// image order, and CoverImageIndex indexes into it (clamped server-side).
type AttachImagesRequest struct {
	URLs            []string `json:"urls"              validate:"required,min=1,dive,required,url"`
	CoverImageIndex int      `json:"cover_image_index" validate:"min=0"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type ImageResponse struct {
	ID        uint      `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type UploadImageResponse struct {
	URL string `json:"url"`
}

// DeleteImageResponse reports the typed outcome of a blob deletion:
// "deleted", "not_found", or "unreachable".
type DeleteImageResponse struct {
	Result string `json:"result"`
}
