package services

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/docesofia/storefront/modules/orders/domain/order"
	"github.com/docesofia/storefront/pkg/metrics"
	"github.com/docesofia/storefront/pkg/serrors"
)

var validate = validator.New()

type OrderService struct {
	repo   order.Repository
	logger *logrus.Logger
}

func NewOrderService(repo order.Repository, logger *logrus.Logger) *OrderService {
	return &OrderService{repo: repo, logger: logger}
}

// Create records a checkout. The subtotal is computed here from the line
// items; a client-supplied total is never trusted.
func (s *OrderService) Create(ctx context.Context, data *order.CreateData) (*order.Order, error) {
	if err := validate.Struct(data); err != nil {
		return nil, serrors.NewValidation("at least one order item is required")
	}

	subtotal := decimal.Zero
	for _, item := range data.Items {
		if item.Quantity <= 0 {
			return nil, serrors.NewValidation("item quantity must be positive")
		}
		if item.Price.IsNegative() {
			return nil, serrors.NewValidation("item price must not be negative")
		}
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	created, err := s.repo.Create(ctx, data, subtotal)
	if err != nil {
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	s.logger.WithFields(logrus.Fields{
		"id":       created.ID,
		"items":    len(created.Items),
		"subtotal": created.Subtotal.String(),
	}).Info("order placed")
	return created, nil
}

func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]*order.Order, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"id": id}).Info("order deleted")
	return nil
}
