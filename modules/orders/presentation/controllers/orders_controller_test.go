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
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docesofia/storefront/modules/core/domain/aggregates/user"
	"github.com/docesofia/storefront/modules/orders/domain/order"
	"github.com/docesofia/storefront/modules/orders/presentation/controllers"
	"github.com/docesofia/storefront/modules/orders/services"
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
`

type orderRepoStub struct {
	orders []*order.Order
}

func (s *orderRepoStub) Create(_ context.Context, data *order.CreateData, subtotal decimal.Decimal) (*order.Order, error) {
	o := &order.Order{
		ID:            uuid.New(),
		CustomerPhone: data.CustomerPhone,
		Items:         data.Items,
		Subtotal:      subtotal,
		CreatedAt:     time.Now(),
	}
	s.orders = append(s.orders, o)
	return o, nil
}

func (s *orderRepoStub) GetByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, serrors.NewNotFound("order")
}

func (s *orderRepoStub) List(_ context.Context) ([]*order.Order, error) {
	return s.orders, nil
}

func (s *orderRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	for i, o := range s.orders {
		if o.ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return serrors.NewNotFound("order")
}

func (s *orderRepoStub) Count(_ context.Context) (int64, error) {
	return int64(len(s.orders)), nil
}

func (s *orderRepoStub) SumSubtotal(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range s.orders {
		sum = sum.Add(o.Subtotal)
	}
	return sum, nil
}

func (s *orderRepoStub) TotalsByDay(_ context.Context, _ int) ([]order.DayTotal, error) {
	return nil, nil
}

type fixture struct {
	router *mux.Router
	orders *orderRepoStub
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

	f := &fixture{orders: &orderRepoStub{}}
	svc := services.NewOrderService(f.orders, logger)

	f.router = mux.NewRouter()
	controllers.NewOrdersController(svc, authzSvc, logger).Register(f.router)
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

func placeOrder(t *testing.T, f *fixture) *order.Order {
	t.Helper()

	o, err := f.orders.Create(context.Background(), &order.CreateData{
		CustomerPhone: "+5511999990000",
		Items: []order.Item{
			{ProductID: uuid.New(), Name: "Brigadeiro", Quantity: 2, Price: decimal.RequireFromString("2.50")},
		},
	}, decimal.RequireFromString("5.00"))
	require.NoError(t, err)
	return o
}

func TestOrdersController(t *testing.T) {
	t.Run("CheckoutIsPublic", func(t *testing.T) {
		f := newFixture(t)

		body := `{"customerPhone":"+5511999990000","items":[{"productId":"` + uuid.NewString() +
			`","name":"Brigadeiro","quantity":2,"price":"2.50"}]}`
		rec := f.do(t, http.MethodPost, "/api/orders", body, nil)
		require.Equal(t, http.StatusCreated, rec.Code)

		var got order.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.True(t, got.Subtotal.Equal(decimal.RequireFromString("5.00")),
			"got subtotal %s", got.Subtotal)
	})

	t.Run("ListRequiresAuthentication", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodGet, "/api/orders", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("AdminReadsOrderById", func(t *testing.T) {
		f := newFixture(t)
		o := placeOrder(t, f)

		rec := f.do(t, http.MethodGet, "/api/orders/"+o.ID.String(), "", adminUser())
		require.Equal(t, http.StatusOK, rec.Code)

		var got order.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, o.ID, got.ID)
	})

	t.Run("GetRequiresAuthentication", func(t *testing.T) {
		f := newFixture(t)
		o := placeOrder(t, f)

		rec := f.do(t, http.MethodGet, "/api/orders/"+o.ID.String(), "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("AdminDeletesOrder", func(t *testing.T) {
		f := newFixture(t)
		o := placeOrder(t, f)

		rec := f.do(t, http.MethodDelete, "/api/orders/"+o.ID.String(), "", adminUser())
		require.Equal(t, http.StatusOK, rec.Code)

		rec = f.do(t, http.MethodGet, "/api/orders/"+o.ID.String(), "", adminUser())
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("DeleteUnknownIdIs404", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodDelete, "/api/orders/"+uuid.NewString(), "", adminUser())
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
