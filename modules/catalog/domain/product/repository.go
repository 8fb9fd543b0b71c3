package product

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, data *CreateData) (*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, params FindParams) ([]*Product, error)
	// Update merges the non-nil fields of data into the stored product.
	Update(ctx context.Context, id uuid.UUID, data *UpdateData) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountByCategorySlug(ctx context.Context, slug string) (int64, error)
}
