package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/sunnybharadwajp/dhavi-creations-store/internal/dto"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/model"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/service"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/sku"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(products *stubProductRepo, images *stubImageRepo, categories *stubCategoryRepo) service.ProductService {
	return service.NewProductService(products, images, service.NewCategoryService(categories), sku.New(), nil)
}

func seedProduct(repo *stubProductRepo, name string, categoryID uint, skuCode string) *model.Product {
	p := &model.Product{
		Name:       name,
		CategoryID: categoryID,
		Price:      decimal.NewFromFloat(499.00),
		Stock:      10,
		SKU:        skuCode,
	}
	_ = repo.insert(p)
	return p
}

// Invalid payloads must be rejected before anything touches storage.

func TestCreateProductNegativePrice(t *testing.T) {
	products := newStubProductRepo()
	svc := newProductService(products, newStubImageRepo(), newStubCategoryRepo())

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Gold Bangle",
		CategoryID: 1,
		Price:      decimal.NewFromFloat(-10),
		Stock:      5,
	})
	assert.ErrorContains(t, err, "price")
	assert.Empty(t, products.products)
}

func TestCreateProductNegativeStock(t *testing.T) {
	products := newStubProductRepo()
	svc := newProductService(products, newStubImageRepo(), newStubCategoryRepo())

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Gold Bangle",
		CategoryID: 1,
		Price:      decimal.NewFromFloat(499),
		Stock:      -1,
	})
	assert.ErrorContains(t, err, "stock")
	assert.Empty(t, products.products)
}

func TestCreateProductNoCategorySelection(t *testing.T) {
	products := newStubProductRepo()
	svc := newProductService(products, newStubImageRepo(), newStubCategoryRepo())

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:  "Gold Bangle",
		Price: decimal.NewFromFloat(499),
		Stock: 5,
	})
	assert.ErrorIs(t, err, service.ErrCategorySelection)
	assert.Empty(t, products.products)
}

func TestGetProductNotFound(t *testing.T) {
	svc := newProductService(newStubProductRepo(), newStubImageRepo(), newStubCategoryRepo())

	_, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, service.ErrProductNotFound)
}

func TestListProductsPagination(t *testing.T) {
	products := newStubProductRepo()
	svc := newProductService(products, newStubImageRepo(), newStubCategoryRepo())

	for i := 0; i < 25; i++ {
		seedProduct(products, "Bangle", 1, fmt.Sprintf("BAN-C01-%03d", i))
	}

	resp, err := svc.List(context.Background(), dto.ProductFilter{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 10)
	assert.Equal(t, int64(25), resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 3, resp.TotalPages)
}

func TestListProductsDefaultsPage(t *testing.T) {
	products := newStubProductRepo()
	svc := newProductService(products, newStubImageRepo(), newStubCategoryRepo())
	seedProduct(products, "Bangle", 1, "BAN-C01-001")

	resp, err := svc.List(context.Background(), dto.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.Len(t, resp.Data, 1)
}

func TestUpdateProductKeepsSKU(t *testing.T) {
	products := newStubProductRepo()
	categories := newStubCategoryRepo()
	svc := newProductService(products, newStubImageRepo(), categories)

	p := seedProduct(products, "Gold Bangle", 1, "GOL-C01-123")

	newPrice := decimal.NewFromFloat(599)
	resp, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "GOL-C01-123", resp.SKU)
	assert.True(t, newPrice.Equal(resp.Price))
}

func TestUpdateProductUnknownCategory(t *testing.T) {
	products := newStubProductRepo()
	svc := newProductService(products, newStubImageRepo(), newStubCategoryRepo())

	p := seedProduct(products, "Gold Bangle", 1, "GOL-C01-123")

	unknown := uint(42)
	_, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{CategoryID: &unknown})
	assert.ErrorIs(t, err, service.ErrCategoryNotFound)
}

func TestUpdateProductNegativePrice(t *testing.T) {
	products := newStubProductRepo()
	svc := newProductService(products, newStubImageRepo(), newStubCategoryRepo())

	p := seedProduct(products, "Gold Bangle", 1, "GOL-C01-123")

	bad := decimal.NewFromFloat(-1)
	_, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Price: &bad})
	assert.ErrorContains(t, err, "price")
}

func TestDeleteProduct(t *testing.T) {
	products := newStubProductRepo()
	svc := newProductService(products, newStubImageRepo(), newStubCategoryRepo())

	p := seedProduct(products, "Gold Bangle", 1, "GOL-C01-123")

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	assert.Empty(t, products.products)
}

func TestDeleteProductNotFound(t *testing.T) {
	svc := newProductService(newStubProductRepo(), newStubImageRepo(), newStubCategoryRepo())

	err := svc.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, service.ErrProductNotFound)
}
