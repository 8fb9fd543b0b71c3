package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docesofia/storefront/modules/core/domain/aggregates/user"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/middleware"
	"github.com/docesofia/storefront/pkg/serrors"
)

type resolverStub struct {
	byToken map[string]*user.User
}

func (s *resolverStub) UserBySessionToken(_ context.Context, token string) (*user.User, error) {
	u, ok := s.byToken[token]
	if !ok {
		return nil, serrors.NewUnauthorized()
	}
	return u, nil
}

func TestProvideUser(t *testing.T) {
	u := &user.User{ID: uuid.New(), Email: "admin@example.com", Role: user.RoleAdmin}
	resolver := &resolverStub{byToken: map[string]*user.User{"tok-1": u}}

	router := mux.NewRouter()
	router.Use(middleware.ProvideUser("sid", resolver))
	router.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		got, err := composables.UseUser(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(got.Email))
	})

	t.Run("ValidCookieAttachesUser", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "tok-1"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "admin@example.com", rec.Body.String())
	})

	t.Run("UnknownTokenStaysAnonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "bogus"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("NoCookieStaysAnonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRequireUser(t *testing.T) {
	router := mux.NewRouter()
	router.Use(middleware.RequireUser())
	router.HandleFunc("/admin", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("AnonymousIs401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("AuthenticatedPassesThrough", func(t *testing.T) {
		u := &user.User{ID: uuid.New(), Email: "admin@example.com", Role: user.RoleAdmin}
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req = req.WithContext(composables.WithUser(req.Context(), u))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
