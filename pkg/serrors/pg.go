package serrors

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// FromPg translates driver-level failures into the service taxonomy. Entity
// names the resource for not-found messages.
func FromPg(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound(entity)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return New(http.StatusConflict, CodeConflict, "resource already exists", err)
		case "23503": // foreign_key_violation
			return New(http.StatusConflict, CodeConflict, "resource is referenced by another resource", err)
		}
		return NewBackendUnavailable(err)
	}
	return err
}
