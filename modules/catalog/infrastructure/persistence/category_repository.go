package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/docesofia/storefront/modules/catalog/domain/category"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/serrors"
)

type CategoryRepository struct{}

func NewCategoryRepository() category.Repository {
	return &CategoryRepository{}
}

func (r *CategoryRepository) Create(ctx context.Context, data *category.CreateData) (*category.Category, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var c category.Category
	err = tx.QueryRow(ctx, `
INSERT INTO categories (name, slug)
VALUES ($1, $2)
RETURNING id, name, slug`, data.Name, data.Slug).Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		return nil, serrors.FromPg(err, "category")
	}
	return &c, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var c category.Category
	err = tx.QueryRow(ctx, `SELECT id, name, slug FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		return nil, serrors.FromPg(err, "category")
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `SELECT id, name, slug FROM categories ORDER BY name`)
	if err != nil {
		return nil, serrors.FromPg(err, "category")
	}
	defer rows.Close()

	out := make([]*category.Category, 0)
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, id uuid.UUID, data *category.UpdateData) (*category.Category, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	set := []string{}
	args := []any{}
	if data.Name != nil {
		args = append(args, *data.Name)
		set = append(set, fmt.Sprintf("name = $%d", len(args)))
	}
	if data.Slug != nil {
		args = append(args, *data.Slug)
		set = append(set, fmt.Sprintf("slug = $%d", len(args)))
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	q := fmt.Sprintf(`UPDATE categories SET %s WHERE id = $%d RETURNING id, name, slug`, strings.Join(set, ", "), len(args))
	var c category.Category
	if err := tx.QueryRow(ctx, q, args...).Scan(&c.ID, &c.Name, &c.Slug); err != nil {
		return nil, serrors.FromPg(err, "category")
	}
	return &c, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return serrors.FromPg(err, "category")
	}
	if tag.RowsAffected() == 0 {
		return serrors.NewNotFound("category")
	}
	return nil
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM categories`).Scan(&n); err != nil {
		return 0, serrors.FromPg(err, "category")
	}
	return n, nil
}
