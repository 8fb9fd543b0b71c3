package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/docesofia/storefront/modules/catalog/domain/product"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/serrors"
)

type ProductRepository struct{}

func NewProductRepository() product.Repository {
	return &ProductRepository{}
}

// Prices travel as text between Go and Postgres so numeric precision is
// never routed through float64.
const productColumns = `id, slug, name, description, price::text, category, category_slug, images, featured, created_at`

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	var price string
	if err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &price, &p.Category, &p.CategorySlug, &p.Images, &p.Featured, &p.CreatedAt); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	p.Price = d
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, data *product.CreateData) (*product.Product, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	images := data.Images
	if images == nil {
		images = []string{}
	}
	row := tx.QueryRow(ctx, `
INSERT INTO products (slug, name, description, price, category, category_slug, images, featured)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)
RETURNING `+productColumns,
		data.Slug, data.Name, data.Description, data.Price.String(), data.Category, data.CategorySlug, images, data.Featured)

	p, err := scanProduct(row)
	if err != nil {
		return nil, serrors.FromPg(err, "product")
	}
	return p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	p, err := scanProduct(tx.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, serrors.FromPg(err, "product")
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context, params product.FindParams) ([]*product.Product, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where := []string{"1=1"}
	args := []any{}
	if params.Slug != "" {
		args = append(args, params.Slug)
		where = append(where, fmt.Sprintf("slug = $%d", len(args)))
	} else if params.CategorySlug != "" {
		args = append(args, params.CategorySlug)
		where = append(where, fmt.Sprintf("category_slug = $%d", len(args)))
	}
	if params.Featured != nil {
		args = append(args, *params.Featured)
		where = append(where, fmt.Sprintf("featured = $%d", len(args)))
	}

	q := `SELECT ` + productColumns + ` FROM products WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at DESC`
	rows, err := tx.Query(ctx, q, args...)
	if err != nil {
		return nil, serrors.FromPg(err, "product")
	}
	defer rows.Close()

	out := make([]*product.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, id uuid.UUID, data *product.UpdateData) (*product.Product, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	set := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if data.Slug != nil {
		add("slug", *data.Slug)
	}
	if data.Name != nil {
		add("name", *data.Name)
	}
	if data.Description != nil {
		add("description", *data.Description)
	}
	if data.Price != nil {
		args = append(args, data.Price.String())
		set = append(set, fmt.Sprintf("price = $%d::numeric", len(args)))
	}
	if data.Category != nil {
		add("category", *data.Category)
	}
	if data.CategorySlug != nil {
		add("category_slug", *data.CategorySlug)
	}
	if data.Images != nil {
		add("images", *data.Images)
	}
	if data.Featured != nil {
		add("featured", *data.Featured)
	}

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	q := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d RETURNING `+productColumns, strings.Join(set, ", "), len(args))
	p, err := scanProduct(tx.QueryRow(ctx, q, args...))
	if err != nil {
		return nil, serrors.FromPg(err, "product")
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return serrors.FromPg(err, "product")
	}
	if tag.RowsAffected() == 0 {
		return serrors.NewNotFound("product")
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, serrors.FromPg(err, "product")
	}
	return n, nil
}

func (r *ProductRepository) CountByCategorySlug(ctx context.Context, slug string) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM products WHERE category_slug = $1`, slug).Scan(&n); err != nil {
		return 0, serrors.FromPg(err, "product")
	}
	return n, nil
}
