package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChangeRequestsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_change_requests_submitted_total",
		Help: "Change requests submitted for review, by change type.",
	}, []string{"type"})

	ChangeRequestDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_change_request_decisions_total",
		Help: "Decisions applied to change requests, by outcome.",
	}, []string{"decision"})

	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Orders recorded through the storefront checkout.",
	})

	ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_image_uploads_total",
		Help: "Product image uploads, by result.",
	}, []string{"result"})
)
