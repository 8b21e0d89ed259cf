package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "flight_grid"

var (
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "endpoint", "status"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	APIActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "api_active_connections",
		Help:      "Requests currently being served.",
	})

	GridSessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "grid_sessions_active",
		Help:      "Live interactive grid sessions.",
	})

	GridInteractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "grid_interactions_total",
		Help:      "Pointer and keyboard interactions by action and whether they were accepted.",
	}, []string{"action", "accepted"})

	GridRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "grid_requests_emitted_total",
		Help:      "Outbound requests emitted by grids.",
	}, []string{"kind"})

	LayoutBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "layout_build_duration_seconds",
		Help:      "Time to load a snapshot and compute a layout.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"view"})

	CurrentSlot = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "current_slot",
		Help:      "Slot index of the current time, -1 outside operating hours.",
	})
)

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
