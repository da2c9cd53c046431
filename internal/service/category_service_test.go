package service_test

import (
	"context"
	"testing"

	"github.com/sunnybharadwajp/dhavi-creations-store/internal/dto"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := service.NewCategoryService(repo)

	resp, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "  Bangles  "})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Bangles", resp.Name)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := service.NewCategoryService(repo)

	_, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Bangles"})
	require.NoError(t, err)

	// Name uniqueness is case-insensitive
	_, err = svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "bangles"})
	assert.ErrorIs(t, err, service.ErrCategoryNameTaken)
}

func TestUpdateCategoryRenameConflict(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := service.NewCategoryService(repo)

	first, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Bangles"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Earrings"})
	require.NoError(t, err)

	name := "Earrings"
	_, err = svc.Update(context.Background(), first.ID, dto.UpdateCategoryRequest{Name: &name})
	assert.ErrorIs(t, err, service.ErrCategoryNameTaken)
}

func TestDeleteCategoryInUse(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := service.NewCategoryService(repo)

	resp, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Bangles"})
	require.NoError(t, err)
	repo.inUse[resp.ID] = true

	err = svc.Delete(context.Background(), resp.ID)
	assert.ErrorIs(t, err, service.ErrCategoryInUse)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	svc := service.NewCategoryService(newStubCategoryRepo())
	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, service.ErrCategoryNotFound)
}

// ── Resolve (category selection inside the product workflow) ─────────────────

func TestResolveExistingCategory(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := service.NewCategoryService(repo)

	created, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Bangles"})
	require.NoError(t, err)

	id, err := svc.Resolve(context.Background(), nil, created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)
	// Passthrough must not create anything
	assert.Len(t, repo.categories, 1)
}

func TestResolveUnknownCategory(t *testing.T) {
	svc := service.NewCategoryService(newStubCategoryRepo())

	_, err := svc.Resolve(context.Background(), nil, 42, "")
	assert.ErrorIs(t, err, service.ErrCategoryNotFound)
}

func TestResolveNewCategory(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := service.NewCategoryService(repo)

	id, err := svc.Resolve(context.Background(), nil, 0, "Gold Bangle Set")
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, "Gold Bangle Set", repo.categories[id].Name)
}

func TestResolveNewCategoryDuplicate(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := service.NewCategoryService(repo)

	_, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Bangles"})
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), nil, 0, "bangles")
	assert.ErrorIs(t, err, service.ErrCategoryNameTaken)
}

func TestResolveRejectsBothSelections(t *testing.T) {
	svc := service.NewCategoryService(newStubCategoryRepo())

	_, err := svc.Resolve(context.Background(), nil, 1, "Bangles")
	assert.ErrorIs(t, err, service.ErrCategorySelection)
}

func TestResolveRejectsNoSelection(t *testing.T) {
	svc := service.NewCategoryService(newStubCategoryRepo())

	_, err := svc.Resolve(context.Background(), nil, 0, "   ")
	assert.ErrorIs(t, err, service.ErrCategorySelection)
}
