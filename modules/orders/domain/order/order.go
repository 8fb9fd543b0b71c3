package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a snapshot of a product at checkout time. Name and price are
// copied so later catalog edits do not rewrite order history.
type Item struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Order struct {
	ID            uuid.UUID       `json:"id"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
	Items         []Item          `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type CreateData struct {
	CustomerPhone string `json:"customerPhone"`
	Items         []Item `json:"items" validate:"required,min=1"`
}

// DayTotal is one day's order volume, used by the dashboard.
type DayTotal struct {
	Day   time.Time       `json:"day"`
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type Repository interface {
	Create(ctx context.Context, data *CreateData, subtotal decimal.Decimal) (*Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// List returns orders newest-first.
	List(ctx context.Context) ([]*Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	SumSubtotal(ctx context.Context) (decimal.Decimal, error)
	// TotalsByDay groups the last days of orders per day, newest-first.
	TotalsByDay(ctx context.Context, days int) ([]DayTotal, error)
}
