package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/docesofia/storefront/modules/catalog/domain/category"
	"github.com/docesofia/storefront/modules/catalog/domain/product"
	"github.com/docesofia/storefront/modules/content/domain/changerequest"
	"github.com/docesofia/storefront/modules/orders/domain/order"
)

// Stats is the admin dashboard summary.
type Stats struct {
	TotalProducts   int64            `json:"totalProducts"`
	TotalCategories int64            `json:"totalCategories"`
	TotalOrders     int64            `json:"totalOrders"`
	Revenue         decimal.Decimal  `json:"revenue"`
	PendingChanges  int64            `json:"pendingChanges"`
	OrdersByDay     []order.DayTotal `json:"ordersByDay"`
}

// ordersByDayWindow is how far back the dashboard chart reaches.
const ordersByDayWindow = 7

type DashboardService struct {
	products   product.Repository
	categories category.Repository
	orders     order.Repository
	requests   changerequest.Repository
}

func NewDashboardService(
	products product.Repository,
	categories category.Repository,
	orders order.Repository,
	requests changerequest.Repository,
) *DashboardService {
	return &DashboardService{
		products:   products,
		categories: categories,
		orders:     orders,
		requests:   requests,
	}
}

func (s *DashboardService) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Revenue: decimal.Zero}

	var err error
	if stats.TotalProducts, err = s.products.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCategories, err = s.categories.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.orders.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Revenue, err = s.orders.SumSubtotal(ctx); err != nil {
		return nil, err
	}
	if stats.PendingChanges, err = s.requests.Count(ctx, changerequest.FindParams{Status: changerequest.StatusPending}); err != nil {
		return nil, err
	}
	if stats.OrdersByDay, err = s.orders.TotalsByDay(ctx, ordersByDayWindow); err != nil {
		return nil, err
	}
	return stats, nil
}
