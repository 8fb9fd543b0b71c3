package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/docesofia/storefront/modules/content/domain/changerequest"
	"github.com/docesofia/storefront/modules/content/services"
	"github.com/docesofia/storefront/pkg/api"
	"github.com/docesofia/storefront/pkg/authz"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/serrors"
)

const moduleName = "content"

type ChangeRequestsController struct {
	service *services.ChangeRequestService
	authz   *authz.Service
	logger  *logrus.Logger

	basePath string
}

func NewChangeRequestsController(service *services.ChangeRequestService, authzSvc *authz.Service, logger *logrus.Logger) *ChangeRequestsController {
	return &ChangeRequestsController{
		service:  service,
		authz:    authzSvc,
		logger:   logger,
		basePath: "/api/pending-changes",
	}
}

func (c *ChangeRequestsController) Key() string {
	return c.basePath
}

func (c *ChangeRequestsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.list).Methods(http.MethodGet)
	router.HandleFunc("", c.submit).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.decide).Methods(http.MethodPut)
}

func (c *ChangeRequestsController) authorize(r *http.Request, action string) error {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		return serrors.NewUnauthorized()
	}
	return c.authz.Authorize(r.Context(), authz.SubjectForRole(u.Role), authz.ObjectName(moduleName, "change_requests"), action)
}

func (c *ChangeRequestsController) list(w http.ResponseWriter, r *http.Request) {
	if err := c.authorize(r, "read"); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	requests, err := c.service.List(r.Context(), changerequest.FindParams{
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, requests)
}

func (c *ChangeRequestsController) get(w http.ResponseWriter, r *http.Request) {
	if err := c.authorize(r, "read"); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		api.WriteError(w, r, c.logger, serrors.NewValidation("invalid change request id"))
		return
	}

	cr, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, cr)
}

func (c *ChangeRequestsController) submit(w http.ResponseWriter, r *http.Request) {
	if err := c.authorize(r, "create"); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	var data changerequest.SubmitData
	if err := api.DecodeJSON(r, &data); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	created, err := c.service.Submit(r.Context(), &data)
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

type decideRequest struct {
	Status string `json:"status"`
}

func (c *ChangeRequestsController) decide(w http.ResponseWriter, r *http.Request) {
	if err := c.authorize(r, "decide"); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		api.WriteError(w, r, c.logger, serrors.NewValidation("invalid change request id"))
		return
	}

	var body decideRequest
	if err := api.DecodeJSON(r, &body); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	if err := c.service.Decide(r.Context(), id, body.Status); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "change request " + body.Status})
}
