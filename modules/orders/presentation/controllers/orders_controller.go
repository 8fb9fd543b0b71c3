package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/docesofia/storefront/modules/orders/domain/order"
	"github.com/docesofia/storefront/modules/orders/services"
	"github.com/docesofia/storefront/pkg/api"
	"github.com/docesofia/storefront/pkg/authz"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/serrors"
)

const moduleName = "orders"

type OrdersController struct {
	service *services.OrderService
	authz   *authz.Service
	logger  *logrus.Logger

	basePath string
}

func NewOrdersController(service *services.OrderService, authzSvc *authz.Service, logger *logrus.Logger) *OrdersController {
	return &OrdersController{
		service:  service,
		authz:    authzSvc,
		logger:   logger,
		basePath: "/api/orders",
	}
}

func (c *OrdersController) Key() string {
	return c.basePath
}

func (c *OrdersController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.list).Methods(http.MethodGet)
	router.HandleFunc("", c.create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.delete).Methods(http.MethodDelete)
}

func (c *OrdersController) authorize(r *http.Request, action string) error {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		return serrors.NewUnauthorized()
	}
	return c.authz.Authorize(r.Context(), authz.SubjectForRole(u.Role), authz.ObjectName(moduleName, "orders"), action)
}

// create is the checkout endpoint; it is open to anonymous storefront
// visitors.
func (c *OrdersController) create(w http.ResponseWriter, r *http.Request) {
	var data order.CreateData
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

func (c *OrdersController) list(w http.ResponseWriter, r *http.Request) {
	if err := c.authorize(r, "read"); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	orders, err := c.service.List(r.Context())
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, orders)
}

func (c *OrdersController) get(w http.ResponseWriter, r *http.Request) {
	if err := c.authorize(r, "read"); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		api.WriteError(w, r, c.logger, serrors.NewValidation("invalid order id"))
		return
	}

	o, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, o)
}

func (c *OrdersController) delete(w http.ResponseWriter, r *http.Request) {
	if err := c.authorize(r, "delete"); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		api.WriteError(w, r, c.logger, serrors.NewValidation("invalid order id"))
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
