package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sunnybharadwajp/dhavi-creations-store/internal/dto"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/model"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/repository"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/sku"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrSKUConflict means the generated SKU collided with an existing one.
	// The caller may simply resubmit — a fresh random suffix is drawn on
	// every attempt; nothing is retried silently.
	ErrSKUConflict = errors.New("failed to add product, please try again")
	// ErrProductPersist is the generic failure surfaced to clients; the
	// underlying storage error is logged server-side only.
	ErrProductPersist = errors.New("failed to add product, please try again")

	errInvalidPrice = errors.New("price must not be negative")
	errInvalidStock = errors.New("stock must not be negative")
)

// ProductService defines the business logic contract for products.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	repo       repository.ProductRepository
	images     repository.ImageRepository
	categories CategoryService
	gen        *sku.Generator
	dispatcher *worker.Dispatcher
}

func NewProductService(repo repository.ProductRepository, images repository.ImageRepository, categories CategoryService, gen *sku.Generator, dispatcher *worker.Dispatcher) ProductService {
	return &productService{repo: repo, images: images, categories: categories, gen: gen, dispatcher: dispatcher}
}

// mapProduct converts a model (with Category and Images preloaded) to a DTO.
func mapProduct(p model.Product) dto.ProductResponse {
	images := make([]dto.ImageResponse, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, dto.ImageResponse{ID: img.ID, URL: img.URL, CreatedAt: img.CreatedAt})
	}
	return dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		Category:        mapCategory(p.Category),
		Price:           p.Price,
		Stock:           p.Stock,
		SKU:             p.SKU,
		CoverImageIndex: p.CoverImageIndex,
		Images:          images,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// Create runs the product creation workflow:
// validate → resolve category → generate SKU → persist → read back.
// Category resolution (including inline category creation) and the product
// insert share one transaction, so a failed insert rolls back a category
// that was created for it.
func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("product name is required")
	}
	if req.Price.IsNegative() {
		return nil, errInvalidPrice
	}
	if req.Stock < 0 {
		return nil, errInvalidStock
	}
	if req.CategoryID == 0 && strings.TrimSpace(req.NewCategory) == "" {
		return nil, ErrCategorySelection
	}

	var created *model.Product
	err := s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryID, err := s.categories.Resolve(ctx, tx, req.CategoryID, req.NewCategory)
		if err != nil {
			return err
		}

		p := &model.Product{
			Name:            name,
			Description:     req.Description,
			CategoryID:      categoryID,
			Price:           req.Price,
			Stock:           req.Stock,
			SKU:             s.gen.Generate(name, categoryID),
			CoverImageIndex: 0,
		}
		if err := s.repo.CreateTx(tx, p); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSKUConflict
			}
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		if isWorkflowError(err) {
			return nil, err
		}
		log.Error().Err(err).Str("product", name).Msg("product creation failed")
		return nil, ErrProductPersist
	}

	full, err := s.repo.FindByID(ctx, created.ID)
	if err != nil {
		log.Error().Err(err).Uint("product_id", created.ID).Msg("read-back after create failed")
		return nil, ErrProductPersist
	}
	resp := mapProduct(*full)
	return &resp, nil
}

// isWorkflowError reports whether err is one of the structured failures that
// may be shown to the caller verbatim.
func isWorkflowError(err error) bool {
	return errors.Is(err, ErrCategorySelection) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrCategoryNameTaken) ||
		errors.Is(err, ErrSKUConflict)
}

func (s *productService) GetByID(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	resp := mapProduct(*p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		data = append(data, mapProduct(p))
	}
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.ProductListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.New("product name is required")
		}
		p.Name = name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.CategoryID != nil {
		if _, err := s.categories.Get(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = *req.CategoryID
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, errInvalidPrice
		}
		p.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, errInvalidStock
		}
		p.Stock = *req.Stock
	}
	// SKU stays as generated at creation.
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Delete removes the product row (images cascade at the DB) and enqueues
// best-effort blob cleanup for its images — mirroring the upload path, blob
// deletion is never allowed to fail a request.
func (s *productService) Delete(ctx context.Context, id uint) error {
	imgs, err := s.images.ListByProduct(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	for _, img := range imgs {
		if err := s.dispatcher.EnqueueImageCleanup(ctx, img.URL); err != nil {
			log.Error().Err(err).Str("url", img.URL).Msg("failed to enqueue blob cleanup")
		}
	}
	return nil
}
