package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/docesofia/storefront/modules/catalog/domain/category"
	"github.com/docesofia/storefront/modules/catalog/domain/product"
	"github.com/docesofia/storefront/pkg/serrors"
)

type CategoryService struct {
	repo     category.Repository
	products product.Repository
}

func NewCategoryService(repo category.Repository, products product.Repository) *CategoryService {
	return &CategoryService{repo: repo, products: products}
}

func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CategoryService) List(ctx context.Context) ([]*category.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Create(ctx context.Context, data *category.CreateData) (*category.Category, error) {
	if err := validate.Struct(data); err != nil {
		return nil, validationError(err)
	}
	return s.repo.Create(ctx, data)
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, data *category.UpdateData) (*category.Category, error) {
	return s.repo.Update(ctx, id, data)
}

// Delete refuses to remove a category that any product still references.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	n, err := s.products.CountByCategorySlug(ctx, cat.Slug)
	if err != nil {
		return err
	}
	if n > 0 {
		return serrors.NewConflict("category is referenced by one or more products")
	}
	return s.repo.Delete(ctx, id)
}
