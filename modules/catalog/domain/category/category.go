package category

import (
	"context"

	"github.com/google/uuid"
)

type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type CreateData struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required"`
}

// UpdateData is a partial merge: nil fields are left untouched.
type UpdateData struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

type Repository interface {
	Create(ctx context.Context, data *CreateData) (*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, id uuid.UUID, data *UpdateData) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
