package controllers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/docesofia/storefront/modules/catalog/domain/product"
	"github.com/docesofia/storefront/modules/catalog/services"
	"github.com/docesofia/storefront/pkg/api"
	"github.com/docesofia/storefront/pkg/authz"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/serrors"
)

const moduleName = "catalog"

type ProductsController struct {
	service   *services.ProductService
	authz     *authz.Service
	logger    *logrus.Logger
	maxUpload int64

	basePath string
}

func NewProductsController(service *services.ProductService, authzSvc *authz.Service, logger *logrus.Logger, maxUpload int64) *ProductsController {
	return &ProductsController{
		service:   service,
		authz:     authzSvc,
		logger:    logger,
		maxUpload: maxUpload,
		basePath:  "/api/products",
	}
}

func (c *ProductsController) Key() string {
	return c.basePath
}

func (c *ProductsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.list).Methods(http.MethodGet)
	router.HandleFunc("", c.create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.delete).Methods(http.MethodDelete)
}

// authorize resolves the authenticated user and checks the policy. Reads are
// open to everyone; only mutating handlers call this.
func (c *ProductsController) authorize(r *http.Request, resource, action string) error {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		return serrors.NewUnauthorized()
	}
	return c.authz.Authorize(r.Context(), authz.SubjectForRole(u.Role), authz.ObjectName(moduleName, resource), action)
}

func (c *ProductsController) list(w http.ResponseWriter, r *http.Request) {
	params := product.FindParams{
		Slug:         r.URL.Query().Get("slug"),
		CategorySlug: r.URL.Query().Get("categorySlug"),
	}
	if v := r.URL.Query().Get("featured"); v != "" {
		featured := v == "true"
		params.Featured = &featured
	}

	products, err := c.service.List(r.Context(), params)
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, products)
}

func (c *ProductsController) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		api.WriteError(w, r, c.logger, serrors.NewValidation("invalid product id"))
		return
	}

	p, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}

func (c *ProductsController) create(w http.ResponseWriter, r *http.Request) {
	if err := c.authorize(r, "products", "create"); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	var data product.CreateData
	images, err := c.parseMultipart(r, &data)
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	created, err := c.service.Create(r.Context(), &data, images)
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

func (c *ProductsController) update(w http.ResponseWriter, r *http.Request) {
	if err := c.authorize(r, "products", "update"); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		api.WriteError(w, r, c.logger, serrors.NewValidation("invalid product id"))
		return
	}

	var data product.UpdateData
	images, err := c.parseMultipart(r, &data)
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	keepImages := r.MultipartForm.Value["keepImages"]

	updated, err := c.service.Update(r.Context(), id, &data, keepImages, images)
	if err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, updated)
}

func (c *ProductsController) delete(w http.ResponseWriter, r *http.Request) {
	if err := c.authorize(r, "products", "delete"); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		api.WriteError(w, r, c.logger, serrors.NewValidation("invalid product id"))
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		api.WriteError(w, r, c.logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// parseMultipart reads a multipart form whose "data" field holds the JSON
// payload and whose "images" fields hold the uploaded files.
func (c *ProductsController) parseMultipart(r *http.Request, dst any) ([]services.ImageUpload, error) {
	if err := r.ParseMultipartForm(c.maxUpload); err != nil {
		return nil, serrors.NewValidation("invalid multipart form: " + err.Error())
	}

	payload := r.MultipartForm.Value["data"]
	if len(payload) == 0 {
		return nil, serrors.NewFieldRequired("data")
	}
	if err := api.DecodeJSONString(payload[0], dst); err != nil {
		return nil, err
	}

	var images []services.ImageUpload
	for _, header := range r.MultipartForm.File["images"] {
		img, err := readUpload(header)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func readUpload(header *multipart.FileHeader) (services.ImageUpload, error) {
	f, err := header.Open()
	if err != nil {
		return services.ImageUpload{}, serrors.NewValidation("unreadable upload: " + header.Filename)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return services.ImageUpload{}, serrors.NewValidation("unreadable upload: " + header.Filename)
	}
	return services.ImageUpload{Filename: header.Filename, Data: data}, nil
}
