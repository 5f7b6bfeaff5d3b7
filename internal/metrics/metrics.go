package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dineqr_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dineqr_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	orderOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dineqr_order_operations_total",
			Help: "Total number of order lifecycle operations",
		},
		[]string{"operation", "status"},
	)

	eventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dineqr_events_published_total",
			Help: "Total number of broadcast events published",
		},
		[]string{"event", "status"},
	)

	DashboardClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dineqr_dashboard_clients",
			Help: "Currently connected websocket dashboard clients",
		},
	)
)

func RecordOrderOperation(operation string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	orderOperations.WithLabelValues(operation, status).Inc()
}

func RecordEventPublished(event string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	eventsPublished.WithLabelValues(event, status).Inc()
}
