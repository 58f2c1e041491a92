package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP-метрики API.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "glimpse_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Метрики событий каталога.
var (
	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_events_published_total",
		Help: "Total number of catalog events published",
	}, []string{"routing_key", "result"})

	EventsProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_events_processed_total",
		Help: "Total number of catalog events processed by the sweeper",
	}, []string{"type", "result"})
)

// Метрики sweeper-а.
var (
	SweepLinksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_sweep_links_total",
		Help: "Join records touched by the sweeper",
	}, []string{"op"})

	SweepLastRun = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "glimpse_sweep_last_run_timestamp_seconds",
		Help: "Unix time of the last completed sweep",
	})
)

// MetricsHandler возвращает handler для /metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
