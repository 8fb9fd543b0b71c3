package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docesofia/storefront/modules/catalog/domain/category"
	"github.com/docesofia/storefront/modules/catalog/domain/product"
	"github.com/docesofia/storefront/modules/catalog/presentation/controllers"
	"github.com/docesofia/storefront/modules/catalog/services"
	"github.com/docesofia/storefront/modules/core/domain/aggregates/user"
	"github.com/docesofia/storefront/pkg/authz"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/serrors"
)

const testModel = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

const testPolicy = `p, role:admin, *, *
p, role:social_media, catalog.categories, read
`

type categoryRepoStub struct {
	byID map[uuid.UUID]*category.Category
}

func (s *categoryRepoStub) Create(_ context.Context, data *category.CreateData) (*category.Category, error) {
	c := &category.Category{ID: uuid.New(), Name: data.Name, Slug: data.Slug}
	s.byID[c.ID] = c
	return c, nil
}

func (s *categoryRepoStub) GetByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, serrors.NewNotFound("category")
	}
	return c, nil
}

func (s *categoryRepoStub) List(_ context.Context) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(s.byID))
	for _, c := range s.byID {
		out = append(out, c)
	}
	return out, nil
}

func (s *categoryRepoStub) Update(_ context.Context, id uuid.UUID, data *category.UpdateData) (*category.Category, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, serrors.NewNotFound("category")
	}
	if data.Name != nil {
		c.Name = *data.Name
	}
	if data.Slug != nil {
		c.Slug = *data.Slug
	}
	return c, nil
}

func (s *categoryRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return serrors.NewNotFound("category")
	}
	delete(s.byID, id)
	return nil
}

func (s *categoryRepoStub) Count(_ context.Context) (int64, error) {
	return int64(len(s.byID)), nil
}

type productCountStub struct {
	product.Repository
	countBySlug map[string]int64
}

func (s *productCountStub) CountByCategorySlug(_ context.Context, slug string) (int64, error) {
	return s.countBySlug[slug], nil
}

type fixture struct {
	router     *mux.Router
	categories *categoryRepoStub
	products   *productCountStub
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.conf")
	policyPath := filepath.Join(dir, "policy.csv")
	require.NoError(t, os.WriteFile(modelPath, []byte(testModel), 0o644))
	require.NoError(t, os.WriteFile(policyPath, []byte(testPolicy), 0o644))

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	authzSvc, err := authz.NewService(modelPath, policyPath, logger)
	require.NoError(t, err)

	f := &fixture{
		categories: &categoryRepoStub{byID: map[uuid.UUID]*category.Category{}},
		products:   &productCountStub{countBySlug: map[string]int64{}},
	}
	svc := services.NewCategoryService(f.categories, f.products)

	f.router = mux.NewRouter()
	controllers.NewCategoriesController(svc, authzSvc, logger).Register(f.router)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string, u *user.User) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if u != nil {
		req = req.WithContext(composables.WithUser(req.Context(), u))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func adminUser() *user.User {
	return &user.User{ID: uuid.New(), Email: "admin@example.com", Role: user.RoleAdmin}
}

func editorUser() *user.User {
	return &user.User{ID: uuid.New(), Email: "editor@example.com", Role: user.RoleSocialMedia}
}

func TestCategoriesController(t *testing.T) {
	t.Run("ListIsPublic", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.categories.Create(context.Background(), &category.CreateData{Name: "Bolos", Slug: "bolos"})
		require.NoError(t, err)

		rec := f.do(t, http.MethodGet, "/api/categories", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got []category.Category
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "bolos", got[0].Slug)
	})

	t.Run("CreateRequiresAuthentication", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/categories", `{"name":"Bolos","slug":"bolos"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("CreateForbiddenForEditors", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/categories", `{"name":"Bolos","slug":"bolos"}`, editorUser())
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("AdminCreates", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/categories", `{"name":"Bolos","slug":"bolos"}`, adminUser())
		require.Equal(t, http.StatusCreated, rec.Code)

		var got category.Category
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "Bolos", got.Name)
		assert.NotEqual(t, uuid.Nil, got.ID)
	})

	t.Run("CreateRejectsUnknownFields", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/categories", `{"name":"Bolos","slug":"bolos","status":"approved"}`, adminUser())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("DeleteReferencedCategoryConflicts", func(t *testing.T) {
		f := newFixture(t)
		cat, err := f.categories.Create(context.Background(), &category.CreateData{Name: "Bolos", Slug: "bolos"})
		require.NoError(t, err)
		f.products.countBySlug["bolos"] = 3

		rec := f.do(t, http.MethodDelete, "/api/categories/"+cat.ID.String(), "", adminUser())
		require.Equal(t, http.StatusConflict, rec.Code)

		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, serrors.CodeConflict, body.Error.Code)
	})

	t.Run("DeleteUnknownIdIs404", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodDelete, "/api/categories/"+uuid.NewString(), "", adminUser())
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
