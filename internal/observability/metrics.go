package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics exposes Prometheus collectors for HTTP traffic and auth flows.
type Metrics struct {
	registry        *prometheus.Registry
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorTotal      *prometheus.CounterVec
	authFlowTotal   *prometheus.CounterVec
}

// NewMetrics registers collectors on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Request errors by route, method and error code.",
		}, []string{"route", "method", "code"}),
		authFlowTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_flow_total",
			Help: "Auth flow executions by flow and outcome.",
		}, []string{"flow", "outcome"}),
	}

	registry.MustRegister(m.requestTotal, m.requestDuration, m.errorTotal, m.authFlowTotal)
	return m
}

// RecordRequest increments request counters and latency samples.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errorTotal.WithLabelValues(route, method, code).Inc()
}

// RecordAuthFlow increments the auth flow counter.
func (m *Metrics) RecordAuthFlow(flow, outcome string) {
	if m == nil {
		return
	}
	m.authFlowTotal.WithLabelValues(flow, outcome).Inc()
}

// Handler serves the Prometheus exposition endpoint through fiber.
func (m *Metrics) Handler() fiber.Handler {
	var h http.Handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	fastHandler := fasthttpadaptor.NewFastHTTPHandler(h)
	return func(c *fiber.Ctx) error {
		fastHandler(c.Context())
		return nil
	}
}
