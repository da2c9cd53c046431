package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sunnybharadwajp/dhavi-creations-store/internal/dto"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/model"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryNameTaken = errors.New("a category with that name already exists")
	ErrCategoryInUse     = errors.New("category still has products")
	// ErrCategorySelection rejects product payloads that pick neither an
	// existing category nor a new name — or both at once.
	ErrCategorySelection = errors.New("select an existing category or provide a new category name")
)

// CategoryService defines business operations for product categories.
type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	Get(ctx context.Context, id uint) (dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error)
	Delete(ctx context.Context, id uint) error

	// Resolve turns a category selection into a concrete category ID inside
	// the caller's transaction. categoryID > 0 passes through after an
	// existence check; otherwise newCategory is created and its ID adopted.
	// Any failure aborts the caller — there is no fallback category.
	Resolve(ctx context.Context, tx *gorm.DB, categoryID uint, newCategory string) (uint, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

// mapCategory converts a model to a DTO response.
func mapCategory(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return dto.CategoryResponse{}, errors.New("category name is required")
	}

	// Case-insensitive duplicate check; the unique index is the backstop
	// under concurrency.
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CategoryResponse{}, err
	}
	if existing != nil {
		return dto.CategoryResponse{}, ErrCategoryNameTaken
	}

	c := &model.Category{
		Name:        name,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.CategoryResponse{}, ErrCategoryNameTaken
		}
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *categoryService) Get(ctx context.Context, id uint) (dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoryResponse{}, ErrCategoryNotFound
		}
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategory(c))
	}
	return result, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoryResponse{}, ErrCategoryNotFound
		}
		return dto.CategoryResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return dto.CategoryResponse{}, errors.New("category name is required")
		}
		if !strings.EqualFold(name, c.Name) {
			existing, err := s.repo.FindByName(ctx, name)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.CategoryResponse{}, err
			}
			if existing != nil && existing.ID != id {
				return dto.CategoryResponse{}, ErrCategoryNameTaken
			}
		}
		c.Name = name
	}
	if req.Description != nil {
		c.Description = req.Description
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *categoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	inUse, err := s.repo.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrCategoryInUse
	}
	return s.repo.Delete(ctx, id)
}

func (s *categoryService) Resolve(ctx context.Context, tx *gorm.DB, categoryID uint, newCategory string) (uint, error) {
	newCategory = strings.TrimSpace(newCategory)

	switch {
	case categoryID > 0 && newCategory != "":
		return 0, ErrCategorySelection
	case categoryID > 0:
		if _, err := s.repo.FindByIDTx(tx, categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrCategoryNotFound
			}
			return 0, err
		}
		return categoryID, nil
	case newCategory != "":
		c := &model.Category{Name: newCategory}
		if err := s.repo.CreateTx(tx, c); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return 0, ErrCategoryNameTaken
			}
			return 0, err
		}
		return c.ID, nil
	default:
		return 0, ErrCategorySelection
	}
}
