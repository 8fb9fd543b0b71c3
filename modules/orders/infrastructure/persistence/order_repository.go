package persistence

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/docesofia/storefront/modules/orders/domain/order"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/serrors"
)

type OrderRepository struct{}

func NewOrderRepository() order.Repository {
	return &OrderRepository{}
}

// Line items live in a jsonb column: they are an immutable snapshot, never
// queried relationally.
func scanOrder(row pgx.Row) (*order.Order, error) {
	var o order.Order
	var items []byte
	var subtotal string
	if err := row.Scan(&o.ID, &o.CustomerPhone, &items, &subtotal, &o.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(subtotal)
	if err != nil {
		return nil, err
	}
	o.Subtotal = d
	return &o, nil
}

const orderColumns = `id, customer_phone, items, subtotal::text, created_at`

func (r *OrderRepository) Create(ctx context.Context, data *order.CreateData, subtotal decimal.Decimal) (*order.Order, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	items, err := json.Marshal(data.Items)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `
INSERT INTO orders (customer_phone, items, subtotal)
VALUES ($1, $2, $3::numeric)
RETURNING `+orderColumns, data.CustomerPhone, items, subtotal.String())

	o, err := scanOrder(row)
	if err != nil {
		return nil, serrors.FromPg(err, "order")
	}
	return o, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	o, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, serrors.FromPg(err, "order")
	}
	return o, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, serrors.FromPg(err, "order")
	}
	defer rows.Close()

	out := make([]*order.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return serrors.FromPg(err, "order")
	}
	if tag.RowsAffected() == 0 {
		return serrors.NewNotFound("order")
	}
	return nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&n); err != nil {
		return 0, serrors.FromPg(err, "order")
	}
	return n, nil
}

func (r *OrderRepository) TotalsByDay(ctx context.Context, days int) ([]order.DayTotal, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT date_trunc('day', created_at) AS day, count(*), coalesce(sum(subtotal), 0)::text
FROM orders
WHERE created_at >= now() - make_interval(days => $1)
GROUP BY 1
ORDER BY 1 DESC`, days)
	if err != nil {
		return nil, serrors.FromPg(err, "order")
	}
	defer rows.Close()

	out := make([]order.DayTotal, 0)
	for rows.Next() {
		var dt order.DayTotal
		var total string
		if err := rows.Scan(&dt.Day, &dt.Count, &total); err != nil {
			return nil, err
		}
		if dt.Total, err = decimal.NewFromString(total); err != nil {
			return nil, err
		}
		out = append(out, dt)
	}
	return out, rows.Err()
}

func (r *OrderRepository) SumSubtotal(ctx context.Context) (decimal.Decimal, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	var sum string
	if err := tx.QueryRow(ctx, `SELECT coalesce(sum(subtotal), 0)::text FROM orders`).Scan(&sum); err != nil {
		return decimal.Zero, serrors.FromPg(err, "order")
	}
	return decimal.NewFromString(sum)
}
