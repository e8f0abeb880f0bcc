package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP bundles the request-level Prometheus collectors.
type HTTP struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTP registers the request collectors on a fresh registry.
func NewHTTP(serviceName string) *HTTP {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "atelier",
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "Count of handled HTTP requests.",
		ConstLabels: prometheus.Labels{"service": serviceName},
	}, []string{"method", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   "atelier",
		Subsystem:   "http",
		Name:        "request_duration_seconds",
		Help:        "Latency of handled HTTP requests.",
		Buckets:     prometheus.DefBuckets,
		ConstLabels: prometheus.Labels{"service": serviceName},
	}, []string{"method"})

	registry.MustRegister(requests, duration)

	return &HTTP{
		registry: registry,
		requests: requests,
		duration: duration,
	}
}

// Observe records one handled request.
func (h *HTTP) Observe(method string, status int, seconds float64) {
	if h == nil {
		return
	}
	h.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	h.duration.WithLabelValues(method).Observe(seconds)
}

// Handler exposes the scrape endpoint for this registry.
func (h *HTTP) Handler() http.Handler {
	if h == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})
}
