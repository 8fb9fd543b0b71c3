package controllers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/docesofia/storefront/modules/core/services"
	"github.com/docesofia/storefront/pkg/api"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/serrors"
)

type AuthController struct {
	service      *services.AuthService
	logger       *logrus.Logger
	cookieKey    string
	secureCookie bool

	basePath string
}

func NewAuthController(service *services.AuthService, logger *logrus.Logger, cookieKey string, secureCookie bool) *AuthController {
	return &AuthController{
		service:      service,
		logger:       logger,
		cookieKey:    cookieKey,
		secureCookie: secureCookie,
		basePath:     "/api/auth",
	}
}

func (c *AuthController) Key() string {
	return c.basePath
}

func (c *AuthController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/login", c.login).Methods(http.MethodPost)
	router.HandleFunc("/logout", c.logout).Methods(http.MethodPost)
	router.HandleFunc("/me", c.me).Methods(http.MethodGet)
	router.HandleFunc("/reauth", c.reauthenticate).Methods(http.MethodPost)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *AuthController) login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := api.DecodeJSON(r, &creds); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	u, sess, err := c.service.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.cookieKey,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   c.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	api.WriteJSON(w, http.StatusOK, u)
}

func (c *AuthController) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(c.cookieKey); err == nil {
		if err := c.service.Logout(r.Context(), cookie.Value); err != nil {
			c.logger.WithError(err).Warn("failed to delete session")
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.cookieKey,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	api.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *AuthController) me(w http.ResponseWriter, r *http.Request) {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		api.WriteError(w, r, c.logger, serrors.NewUnauthorized())
		return
	}
	api.WriteJSON(w, http.StatusOK, u)
}

type reauthRequest struct {
	Password string `json:"password"`
}

// reauthenticate re-verifies the password of the already logged-in user
// before the admin panel unlocks a destructive action.
func (c *AuthController) reauthenticate(w http.ResponseWriter, r *http.Request) {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		api.WriteError(w, r, c.logger, serrors.NewUnauthorized())
		return
	}

	var body reauthRequest
	if err := api.DecodeJSON(r, &body); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	if err := c.service.Reauthenticate(r.Context(), u, body.Password); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
