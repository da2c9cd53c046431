package service_test

// Shared in-memory stubs for the service unit tests. Transactional flows
// (product creation, image attach) run against a real database in
// tests/e2e; everything stub-friendly is exercised here.

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/sunnybharadwajp/dhavi-creations-store/internal/dto"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/infra"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/model"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/repository"

	"gorm.io/gorm"
)

// ── Category repository stub ─────────────────────────────────────────────────

type stubCategoryRepo struct {
	categories map[uint]*model.Category
	inUse      map[uint]bool
	nextID     uint
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{
		categories: make(map[uint]*model.Category),
		inUse:      make(map[uint]bool),
	}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	return r.insert(c)
}

func (r *stubCategoryRepo) CreateTx(_ *gorm.DB, c *model.Category) error {
	return r.insert(c)
}

func (r *stubCategoryRepo) insert(c *model.Category) error {
	for _, existing := range r.categories {
		if strings.EqualFold(existing.Name, c.Name) {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	result := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uint) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Category, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uint) error {
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) HasProducts(_ context.Context, id uint) (bool, error) {
	return r.inUse[id], nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

// ── Product repository stub ──────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uint]*model.Product
	nextID   uint
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	return r.insert(p)
}

func (r *stubProductRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	return r.insert(p)
}

func (r *stubProductRepo) insert(p *model.Product) error {
	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var all []model.Product
	for _, p := range r.products {
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.CategoryID != 0 && p.CategoryID != filter.CategoryID {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	start := (filter.Page - 1) * filter.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *stubProductRepo) ListNewest(_ context.Context, limit int) ([]model.Product, error) {
	var all []model.Product
	for _, p := range r.products {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uint) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) UpdateCoverImageIndexTx(_ *gorm.DB, id uint, index int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.CoverImageIndex = index
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Image repository stub ────────────────────────────────────────────────────

type stubImageRepo struct {
	images map[uint]*model.Image
	nextID uint
}

func newStubImageRepo() *stubImageRepo {
	return &stubImageRepo{images: make(map[uint]*model.Image)}
}

func (r *stubImageRepo) Create(_ context.Context, img *model.Image) error {
	r.nextID++
	img.ID = r.nextID
	img.CreatedAt = time.Now()
	r.images[img.ID] = img
	return nil
}

func (r *stubImageRepo) FindByURL(_ context.Context, url string) (*model.Image, error) {
	for _, img := range r.images {
		if img.URL == url {
			return img, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubImageRepo) FindByURLTx(_ *gorm.DB, url string) (*model.Image, error) {
	return r.FindByURL(context.Background(), url)
}

func (r *stubImageRepo) ListByProduct(_ context.Context, productID uint) ([]model.Image, error) {
	var result []model.Image
	for _, img := range r.images {
		if img.ProductID != nil && *img.ProductID == productID {
			result = append(result, *img)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Position != result[j].Position {
			return result[i].Position < result[j].Position
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *stubImageRepo) ClaimTx(_ *gorm.DB, imageID, productID uint, position int) error {
	img, ok := r.images[imageID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	img.ProductID = &productID
	img.Position = position
	return nil
}

func (r *stubImageRepo) CountByProductTx(_ *gorm.DB, productID uint) (int64, error) {
	var count int64
	for _, img := range r.images {
		if img.ProductID != nil && *img.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (r *stubImageRepo) DeleteByURL(_ context.Context, url string) error {
	for id, img := range r.images {
		if img.URL == url {
			delete(r.images, id)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubImageRepo) ListUnattachedBefore(_ context.Context, cutoff time.Time, limit int) ([]model.Image, error) {
	var result []model.Image
	for _, img := range r.images {
		if img.ProductID == nil && img.CreatedAt.Before(cutoff) && len(result) < limit {
			result = append(result, *img)
		}
	}
	return result, nil
}

var _ repository.ImageRepository = (*stubImageRepo)(nil)

// ── In-memory blob store fake ────────────────────────────────────────────────

const fakeBlobBaseURL = "https://cdn.test"

type fakeBlobStore struct {
	objects   map[string][]byte
	putErr    error
	removeErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (s *fakeBlobStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	url := fakeBlobBaseURL + "/" + key
	s.objects[url] = data
	return url, nil
}

func (s *fakeBlobStore) Remove(_ context.Context, url string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	if !strings.HasPrefix(url, fakeBlobBaseURL+"/") {
		return infra.ErrNotOwnURL
	}
	if _, ok := s.objects[url]; !ok {
		return infra.ErrObjectNotFound
	}
	delete(s.objects, url)
	return nil
}

var (
	_ infra.BlobStore = (*fakeBlobStore)(nil)

	errStoreDown = errors.New("connection refused")
)
