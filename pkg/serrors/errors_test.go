package serrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docesofia/storefront/pkg/serrors"
)

func TestBaseError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := serrors.NewBackendUnavailable(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    *serrors.BaseError
		status int
		code   string
	}{
		{"validation", serrors.NewValidation("price is malformed"), http.StatusBadRequest, serrors.CodeValidation},
		{"field required", serrors.NewFieldRequired("submittedBy"), http.StatusBadRequest, serrors.CodeValidation},
		{"not found", serrors.NewNotFound("product"), http.StatusNotFound, serrors.CodeNotFound},
		{"conflict", serrors.NewConflict("already decided"), http.StatusConflict, serrors.CodeConflict},
		{"unknown change type", serrors.NewUnknownChangeType("bogus"), http.StatusInternalServerError, serrors.CodeUnknownChangeType},
		{"unauthorized", serrors.NewUnauthorized(), http.StatusUnauthorized, serrors.CodeUnauthorized},
		{"forbidden", serrors.NewForbidden(), http.StatusForbidden, serrors.CodeForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.Status)
			assert.Equal(t, tc.code, tc.err.Code)
		})
	}
}

func TestFromPg(t *testing.T) {
	t.Parallel()

	t.Run("no rows maps to not found", func(t *testing.T) {
		err := serrors.FromPg(fmt.Errorf("query: %w", pgx.ErrNoRows), "category")

		var be *serrors.BaseError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, http.StatusNotFound, be.Status)
		assert.Contains(t, be.Message, "category")
	})

	t.Run("unique violation maps to conflict", func(t *testing.T) {
		err := serrors.FromPg(&pgconn.PgError{Code: "23505"}, "category")

		var be *serrors.BaseError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, http.StatusConflict, be.Status)
	})

	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, serrors.FromPg(nil, "product"))
	})

	t.Run("unrelated errors are untouched", func(t *testing.T) {
		cause := errors.New("boom")
		assert.Equal(t, cause, serrors.FromPg(cause, "product"))
	})
}
