package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/docesofia/storefront/modules/orders/services"
	"github.com/docesofia/storefront/pkg/api"
	"github.com/docesofia/storefront/pkg/authz"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/middleware"
	"github.com/docesofia/storefront/pkg/serrors"
)

type DashboardController struct {
	service *services.DashboardService
	authz   *authz.Service
	logger  *logrus.Logger

	basePath string
}

func NewDashboardController(service *services.DashboardService, authzSvc *authz.Service, logger *logrus.Logger) *DashboardController {
	return &DashboardController{
		service:  service,
		authz:    authzSvc,
		logger:   logger,
		basePath: "/api/admin/dashboard",
	}
}

func (c *DashboardController) Key() string {
	return c.basePath
}

func (c *DashboardController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireUser())
	router.HandleFunc("", c.stats).Methods(http.MethodGet)
}

func (c *DashboardController) stats(w http.ResponseWriter, r *http.Request) {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		api.WriteError(w, r, c.logger, serrors.NewUnauthorized())
		return
	}
	if err := c.authz.Authorize(r.Context(), authz.SubjectForRole(u.Role), authz.ObjectName(moduleName, "dashboard"), "read"); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	stats, err := c.service.Stats(r.Context())
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, stats)
}
