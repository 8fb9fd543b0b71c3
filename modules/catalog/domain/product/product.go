package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID           uuid.UUID       `json:"id"`
	Slug         string          `json:"slug"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	CategorySlug string          `json:"categorySlug"`
	Images       []string        `json:"images"`
	Featured     bool            `json:"featured"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// CreateData carries the fields of a new product. Price is a decimal so the
// transport layer may deliver it as a JSON number or string.
type CreateData struct {
	Slug         string          `json:"slug" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	CategorySlug string          `json:"categorySlug" validate:"required"`
	Images       []string        `json:"images"`
	Featured     bool            `json:"featured"`
}

// UpdateData is a partial merge: nil fields are left untouched.
type UpdateData struct {
	Slug         *string          `json:"slug"`
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Category     *string          `json:"category"`
	CategorySlug *string          `json:"categorySlug"`
	Images       *[]string        `json:"images"`
	Featured     *bool            `json:"featured"`
}

// FindParams supports the storefront's single-equality filters.
type FindParams struct {
	Slug         string
	CategorySlug string
	Featured     *bool
}
