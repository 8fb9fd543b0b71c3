package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/docesofia/storefront/modules/content/domain/changerequest"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/serrors"
)

type ChangeRequestRepository struct{}

func NewChangeRequestRepository() changerequest.Repository {
	return &ChangeRequestRepository{}
}

const changeRequestColumns = `id, type, target_id, data, change_summary, submitted_by, submitted_at, status, coalesce(decided_by, ''), decided_at`

func scanChangeRequest(row pgx.Row) (*changerequest.ChangeRequest, error) {
	var cr changerequest.ChangeRequest
	err := row.Scan(&cr.ID, &cr.Type, &cr.TargetID, &cr.Data, &cr.ChangeSummary, &cr.SubmittedBy, &cr.SubmittedAt, &cr.Status, &cr.DecidedBy, &cr.DecidedAt)
	if err != nil {
		return nil, err
	}
	return &cr, nil
}

func (r *ChangeRequestRepository) Create(ctx context.Context, data *changerequest.SubmitData, submittedBy string) (*changerequest.ChangeRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	// Status and timestamp are assigned here, never taken from the payload.
	row := tx.QueryRow(ctx, `
INSERT INTO change_requests (type, target_id, data, change_summary, submitted_by, submitted_at, status)
VALUES ($1, $2, $3, $4, $5, now(), 'pending')
RETURNING `+changeRequestColumns,
		data.Type, data.TargetID, data.Data, data.ChangeSummary, submittedBy)

	cr, err := scanChangeRequest(row)
	if err != nil {
		return nil, serrors.FromPg(err, "change request")
	}
	return cr, nil
}

func (r *ChangeRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*changerequest.ChangeRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	cr, err := scanChangeRequest(tx.QueryRow(ctx, `SELECT `+changeRequestColumns+` FROM change_requests WHERE id = $1`, id))
	if err != nil {
		return nil, serrors.FromPg(err, "change request")
	}
	return cr, nil
}

func (r *ChangeRequestRepository) List(ctx context.Context, params changerequest.FindParams) ([]*changerequest.ChangeRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where := []string{"1=1"}
	args := []any{}
	if params.Status != "" {
		args = append(args, params.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	q := `SELECT ` + changeRequestColumns + ` FROM change_requests WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY submitted_at DESC`
	rows, err := tx.Query(ctx, q, args...)
	if err != nil {
		return nil, serrors.FromPg(err, "change request")
	}
	defer rows.Close()

	out := make([]*changerequest.ChangeRequest, 0)
	for rows.Next() {
		cr, err := scanChangeRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

// ClaimPending is the compare-and-swap behind the decision workflow: the
// UPDATE only matches while the row is still pending, so of two concurrent
// decisions exactly one observes an affected row.
func (r *ChangeRequestRepository) ClaimPending(ctx context.Context, id uuid.UUID, status, decidedBy string) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}

	tag, err := tx.Exec(ctx, `
UPDATE change_requests
SET status = $2, decided_by = $3, decided_at = now()
WHERE id = $1 AND status = 'pending'`, id, status, decidedBy)
	if err != nil {
		return false, serrors.FromPg(err, "change request")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ChangeRequestRepository) Count(ctx context.Context, params changerequest.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	q := `SELECT count(*) FROM change_requests`
	args := []any{}
	if params.Status != "" {
		q += ` WHERE status = $1`
		args = append(args, params.Status)
	}

	var n int64
	if err := tx.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, serrors.FromPg(err, "change request")
	}
	return n, nil
}
