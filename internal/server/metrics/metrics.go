// Package metrics holds the Prometheus collectors of the API server and the
// gin middleware that feeds them.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const unmatchedRoute = "unmatched"

// Auth failure reasons.
const (
	ReasonNoToken      = "no_token"
	ReasonInvalidToken = "invalid_token"
	ReasonBadLogin     = "bad_credentials"
	ReasonThrottled    = "throttled"
)

type Metrics struct {
	registry *prometheus.Registry

	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	authFailures      *prometheus.CounterVec
	attachmentsStored *prometheus.CounterVec
}

// New creates the collectors on a private registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		authFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_failures_total",
				Help: "Rejected authentication attempts by reason",
			},
			[]string{"reason"},
		),
		attachmentsStored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attachments_stored_total",
				Help: "Uploaded attachments written to storage by form field",
			},
			[]string{"field"},
		),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.authFailures,
		m.attachmentsStored,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records one sample per request. Routes are labelled by their
// pattern, not the raw path.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		method := c.Request.Method

		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// AuthFailure counts a rejected authentication attempt.
func (m *Metrics) AuthFailure(reason string) {
	m.authFailures.WithLabelValues(reason).Inc()
}

// AttachmentStored counts a file written for the given form field.
func (m *Metrics) AttachmentStored(field string) {
	m.attachmentsStored.WithLabelValues(field).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
