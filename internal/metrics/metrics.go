// Package metrics exposes Prometheus collectors for the HTTP surface and the
// gateway operations behind it.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors. A nil *Metrics records nothing.
type Metrics struct {
	service string

	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	gatewayOps *prometheus.CounterVec
	events     *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on a fresh registry.
func New(service string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return NewWithRegistry(service, reg, reg)
}

func NewWithRegistry(service string, reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		service: service,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path", "status"}),
		gatewayOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_operations_total",
			Help: "Gateway operations by outcome (ok, failed, unauthorized, forbidden, error)",
		}, []string{"service", "operation", "outcome"}),
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_events_consumed_total",
			Help: "Catalog events read from the event stream by type",
		}, []string{"service", "type"}),
		gatherer: gatherer,
	}
}

func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requests.WithLabelValues(m.service, method, path, code).Inc()
	m.duration.WithLabelValues(m.service, method, path, code).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveGatewayOp(operation, outcome string) {
	if m == nil {
		return
	}
	m.gatewayOps.WithLabelValues(m.service, operation, outcome).Inc()
}

func (m *Metrics) ObserveEvent(eventType string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(m.service, eventType).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
