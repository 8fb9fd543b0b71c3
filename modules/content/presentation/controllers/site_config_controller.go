package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/docesofia/storefront/modules/content/domain/siteconfig"
	"github.com/docesofia/storefront/modules/content/services"
	"github.com/docesofia/storefront/pkg/api"
	"github.com/docesofia/storefront/pkg/authz"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/serrors"
)

type SiteConfigController struct {
	service *services.SiteConfigService
	authz   *authz.Service
	logger  *logrus.Logger

	basePath string
}

func NewSiteConfigController(service *services.SiteConfigService, authzSvc *authz.Service, logger *logrus.Logger) *SiteConfigController {
	return &SiteConfigController{
		service:  service,
		authz:    authzSvc,
		logger:   logger,
		basePath: "/api/site-config",
	}
}

func (c *SiteConfigController) Key() string {
	return c.basePath
}

func (c *SiteConfigController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.get).Methods(http.MethodGet)
	router.HandleFunc("", c.update).Methods(http.MethodPut)
}

func (c *SiteConfigController) get(w http.ResponseWriter, r *http.Request) {
	cfg, err := c.service.Get(r.Context())
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, cfg)
}

func (c *SiteConfigController) update(w http.ResponseWriter, r *http.Request) {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		api.WriteError(w, r, c.logger, serrors.NewUnauthorized())
		return
	}
	if err := c.authz.Authorize(r.Context(), authz.SubjectForRole(u.Role), authz.ObjectName(moduleName, "site_config"), "update"); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	var data siteconfig.UpdateData
	if err := api.DecodeJSON(r, &data); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	updated, err := c.service.Update(r.Context(), &data)
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, updated)
}
