package service

import (
	"context"

	"github.com/sunnybharadwajp/dhavi-creations-store/internal/dto"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/model"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/repository"
)

const featuredProductCount = 8

// StorefrontService assembles the public landing page payload.
type StorefrontService interface {
	Landing(ctx context.Context) (*dto.StorefrontResponse, error)
}

type storefrontService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

func NewStorefrontService(products repository.ProductRepository, categories repository.CategoryRepository) StorefrontService {
	return &storefrontService{products: products, categories: categories}
}

func (s *storefrontService) Landing(ctx context.Context) (*dto.StorefrontResponse, error) {
	newest, err := s.products.ListNewest(ctx, featuredProductCount)
	if err != nil {
		return nil, err
	}
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	featured := make([]dto.StorefrontProduct, 0, len(newest))
	for _, p := range newest {
		featured = append(featured, dto.StorefrontProduct{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price,
			CategoryName:  p.Category.Name,
			CoverImageURL: coverImageURL(p),
		})
	}

	categories := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		categories = append(categories, mapCategory(c))
	}

	return &dto.StorefrontResponse{
		FeaturedProducts: featured,
		Categories:       categories,
	}, nil
}

// coverImageURL resolves the cover image from CoverImageIndex, tolerating
// stale indexes by clamping into the existing image set.
func coverImageURL(p model.Product) *string {
	if len(p.Images) == 0 {
		return nil
	}
	idx := p.CoverImageIndex
	if idx < 0 || idx >= len(p.Images) {
		idx = 0
	}
	return &p.Images[idx].URL
}
