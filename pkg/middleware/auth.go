package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/docesofia/storefront/modules/core/domain/aggregates/user"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/serrors"
)

// UserResolver resolves a session cookie value to the authenticated user.
type UserResolver interface {
	UserBySessionToken(ctx context.Context, token string) (*user.User, error)
}

// ProvideUser attaches the authenticated user to the context when a valid
// session cookie is present. Requests without one continue anonymously.
func ProvideUser(cookieKey string, resolver UserResolver) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieKey)
			if err == nil && cookie.Value != "" {
				if u, err := resolver.UserBySessionToken(r.Context(), cookie.Value); err == nil {
					r = r.WithContext(composables.WithUser(r.Context(), u))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := composables.UseUser(r.Context()); err != nil {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    serrors.CodeUnauthorized,
					"message": "authentication required",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
