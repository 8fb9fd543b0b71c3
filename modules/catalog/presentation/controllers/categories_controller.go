package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/docesofia/storefront/modules/catalog/domain/category"
	"github.com/docesofia/storefront/modules/catalog/services"
	"github.com/docesofia/storefront/pkg/api"
	"github.com/docesofia/storefront/pkg/authz"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/serrors"
)

type CategoriesController struct {
	service *services.CategoryService
	authz   *authz.Service
	logger  *logrus.Logger

	basePath string
}

func NewCategoriesController(service *services.CategoryService, authzSvc *authz.Service, logger *logrus.Logger) *CategoriesController {
	return &CategoriesController{
		service:  service,
		authz:    authzSvc,
		logger:   logger,
		basePath: "/api/categories",
	}
}

func (c *CategoriesController) Key() string {
	return c.basePath
}

func (c *CategoriesController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.list).Methods(http.MethodGet)
	router.HandleFunc("", c.create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.delete).Methods(http.MethodDelete)
}

func (c *CategoriesController) authorize(r *http.Request, action string) error {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		return serrors.NewUnauthorized()
	}
	return c.authz.Authorize(r.Context(), authz.SubjectForRole(u.Role), authz.ObjectName(moduleName, "categories"), action)
}

func (c *CategoriesController) list(w http.ResponseWriter, r *http.Request) {
	categories, err := c.service.List(r.Context())
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, categories)
}

func (c *CategoriesController) create(w http.ResponseWriter, r *http.Request) {
	if err := c.authorize(r, "create"); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	var data category.CreateData
	if err := api.DecodeJSON(r, &data); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	created, err := c.service.Create(r.Context(), &data)
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

func (c *CategoriesController) update(w http.ResponseWriter, r *http.Request) {
	if err := c.authorize(r, "update"); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		api.WriteError(w, r, c.logger, serrors.NewValidation("invalid category id"))
		return
	}

	var data category.UpdateData
	if err := api.DecodeJSON(r, &data); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	updated, err := c.service.Update(r.Context(), id, &data)
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, updated)
}

func (c *CategoriesController) delete(w http.ResponseWriter, r *http.Request) {
	if err := c.authorize(r, "delete"); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		api.WriteError(w, r, c.logger, serrors.NewValidation("invalid category id"))
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
