package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docesofia/storefront/modules/catalog/domain/category"
	"github.com/docesofia/storefront/modules/catalog/domain/product"
	"github.com/docesofia/storefront/modules/catalog/services"
	"github.com/docesofia/storefront/pkg/serrors"
)

type categoryRepoStub struct {
	byID map[uuid.UUID]*category.Category
}

func newCategoryRepoStub() *categoryRepoStub {
	return &categoryRepoStub{byID: map[uuid.UUID]*category.Category{}}
}

func (s *categoryRepoStub) Create(_ context.Context, data *category.CreateData) (*category.Category, error) {
	c := &category.Category{ID: uuid.New(), Name: data.Name, Slug: data.Slug}
	s.byID[c.ID] = c
	return c, nil
}

func (s *categoryRepoStub) GetByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, serrors.NewNotFound("category")
	}
	return c, nil
}

func (s *categoryRepoStub) List(_ context.Context) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(s.byID))
	for _, c := range s.byID {
		out = append(out, c)
	}
	return out, nil
}

func (s *categoryRepoStub) Update(_ context.Context, id uuid.UUID, data *category.UpdateData) (*category.Category, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, serrors.NewNotFound("category")
	}
	if data.Name != nil {
		c.Name = *data.Name
	}
	if data.Slug != nil {
		c.Slug = *data.Slug
	}
	return c, nil
}

func (s *categoryRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return serrors.NewNotFound("category")
	}
	delete(s.byID, id)
	return nil
}

func (s *categoryRepoStub) Count(_ context.Context) (int64, error) {
	return int64(len(s.byID)), nil
}

func TestCategoryService_Delete(t *testing.T) {
	t.Run("RefusesWhenReferencedByProducts", func(t *testing.T) {
		categories := newCategoryRepoStub()
		products := newProductRepoStub()
		svc := services.NewCategoryService(categories, products)

		cat, err := svc.Create(context.Background(), &category.CreateData{Name: "Cakes", Slug: "cakes"})
		require.NoError(t, err)
		_, err = products.Create(context.Background(), &product.CreateData{
			Slug: "chocolate-cake", Name: "Chocolate Cake", CategorySlug: "cakes",
		})
		require.NoError(t, err)

		err = svc.Delete(context.Background(), cat.ID)
		require.Error(t, err)
		var base *serrors.BaseError
		require.ErrorAs(t, err, &base)
		assert.Equal(t, serrors.CodeConflict, base.Code)
		assert.Len(t, categories.byID, 1, "the category must survive the refused delete")
	})

	t.Run("DeletesUnreferencedCategory", func(t *testing.T) {
		categories := newCategoryRepoStub()
		svc := services.NewCategoryService(categories, newProductRepoStub())

		cat, err := svc.Create(context.Background(), &category.CreateData{Name: "Pies", Slug: "pies"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(context.Background(), cat.ID))
		assert.Empty(t, categories.byID)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := services.NewCategoryService(newCategoryRepoStub(), newProductRepoStub())

		err := svc.Delete(context.Background(), uuid.New())
		var base *serrors.BaseError
		require.ErrorAs(t, err, &base)
		assert.Equal(t, serrors.CodeNotFound, base.Code)
	})
}

func TestCategoryService_Create(t *testing.T) {
	svc := services.NewCategoryService(newCategoryRepoStub(), newProductRepoStub())

	_, err := svc.Create(context.Background(), &category.CreateData{Name: "Cakes"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slug is required")
}
