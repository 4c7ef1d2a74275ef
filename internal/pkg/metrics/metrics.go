// Package metrics exposes Prometheus collectors for the HTTP surface and the
// route lifecycle.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors registered under one prefix.
type Metrics struct {
	gatherer prometheus.Gatherer

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RouteDecisions      *prometheus.CounterVec
	RoutesByStatus      *prometheus.GaugeVec
}

// New registers the collectors on reg. Passing prometheus.DefaultRegisterer
// exposes them next to the Go runtime collectors.
func New(prefix string, reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: gatherer,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		RouteDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_route_decisions_total",
				Help: "Routes created, approved, rejected or held, by outcome",
			},
			[]string{"decision"},
		),

		RoutesByStatus: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: prefix + "_routes",
				Help: "Current number of routes per status across tenants",
			},
			[]string{"status"},
		),
	}
}

// Middleware records count and duration per method, route template and status.
func (m *Metrics) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		duration := time.Since(start).Seconds()
		method := c.Request().Method
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)

		m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration)

		return err
	}
}

// RecordDecision counts one lifecycle outcome such as "auto_released" or "rejected".
func (m *Metrics) RecordDecision(decision string) {
	m.RouteDecisions.WithLabelValues(decision).Inc()
}

// SetRoutes sets the gauge for one status.
func (m *Metrics) SetRoutes(status string, count int64) {
	m.RoutesByStatus.WithLabelValues(status).Set(float64(count))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
