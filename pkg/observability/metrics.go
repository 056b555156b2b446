// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for the pagination server.
package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mcperrors "github.com/mcp-extras/pagination-server/pkg/errors"
)

// MetricsConfig configures the metrics provider
type MetricsConfig struct {
	// Service identification
	ServiceName    string
	ServiceVersion string

	// Prometheus configuration
	Namespace   string // Prometheus namespace (default: pagination)
	ListenAddr  string // Address for the metrics listener (default: :9090)
	MetricsPath string // HTTP path for the metrics endpoint (default: /metrics)

	// HistogramBuckets for request latency, in milliseconds
	HistogramBuckets []float64

	// Registry to register into. A nil Registry creates a private one,
	// which keeps tests independent of global state.
	Registry *prometheus.Registry
}

// Metrics records request and pagination metrics
type Metrics struct {
	config   MetricsConfig
	registry *prometheus.Registry
	server   *http.Server

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	pagesServed     *prometheus.CounterVec
	pageItems       *prometheus.HistogramVec
	invalidCursors  *prometheus.CounterVec
}

// NewMetrics creates and registers the server's metric collectors
func NewMetrics(config MetricsConfig) (*Metrics, error) {
	if config.Namespace == "" {
		config.Namespace = "pagination"
	}
	if config.ListenAddr == "" {
		config.ListenAddr = ":9090"
	}
	if config.MetricsPath == "" {
		config.MetricsPath = "/metrics"
	}
	if config.HistogramBuckets == nil {
		config.HistogramBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}

	constLabels := prometheus.Labels{
		"service": config.ServiceName,
		"version": config.ServiceVersion,
	}

	m := &Metrics{
		config:   config,
		registry: config.Registry,

		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   config.Namespace,
				Name:        "request_total",
				Help:        "Total number of handled requests",
				ConstLabels: constLabels,
			},
			[]string{"method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   config.Namespace,
				Name:        "request_duration_milliseconds",
				Help:        "Duration of handled requests in milliseconds",
				Buckets:     config.HistogramBuckets,
				ConstLabels: constLabels,
			},
			[]string{"method", "status"},
		),
		pagesServed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   config.Namespace,
				Name:        "pages_served_total",
				Help:        "Total number of list pages served",
				ConstLabels: constLabels,
			},
			[]string{"collection"},
		),
		pageItems: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   config.Namespace,
				Name:        "page_items",
				Help:        "Number of items per served page",
				Buckets:     []float64{0, 1, 2, 5, 10, 25, 50, 100},
				ConstLabels: constLabels,
			},
			[]string{"collection"},
		),
		invalidCursors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   config.Namespace,
				Name:        "invalid_cursor_total",
				Help:        "Total number of list requests rejected for an undecodable cursor",
				ConstLabels: constLabels,
			},
			[]string{"method"},
		),
	}

	collectors := []prometheus.Collector{
		m.requestTotal,
		m.requestDuration,
		m.pagesServed,
		m.pageItems,
		m.invalidCursors,
	}
	for _, collector := range collectors {
		if err := m.registry.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, fmt.Errorf("failed to register metrics: %w", err)
			}
		}
	}

	return m, nil
}

// RecordRequest records the outcome and duration of one handled request.
// The status label is "success" or the structured error code name.
func (m *Metrics) RecordRequest(method string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
		if mcpErr, ok := mcperrors.AsMCPError(err); ok {
			status = mcperrors.GetErrorCodeName(mcpErr.Code())
		}
		if mcperrors.IsInvalidCursor(err) {
			m.invalidCursors.WithLabelValues(method).Inc()
		}
	}

	ms := float64(duration.Milliseconds())
	m.requestTotal.WithLabelValues(method, status).Inc()
	m.requestDuration.WithLabelValues(method, status).Observe(ms)
}

// RecordPage records one served page of a collection
func (m *Metrics) RecordPage(collection string, items int) {
	m.pagesServed.WithLabelValues(collection).Inc()
	m.pageItems.WithLabelValues(collection).Observe(float64(items))
}

// Handler returns the HTTP handler exposing the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Start serves the metrics endpoint in the background
func (m *Metrics) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle(m.config.MetricsPath, m.Handler())

	m.server = &http.Server{
		Addr:    m.config.ListenAddr,
		Handler: mux,
	}

	go func() {
		_ = m.server.ListenAndServe()
	}()

	return nil
}

// Shutdown gracefully shuts down the metrics listener
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m.server != nil {
		return m.server.Shutdown(ctx)
	}
	return nil
}
