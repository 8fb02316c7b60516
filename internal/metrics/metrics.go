// Package metrics exposes Prometheus instruments for adaptations, category resolution
// and the HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"platform-adapter-service/internal/domain"
)

var httpDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// Metrics holds all Prometheus metric instruments of the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AdaptationsTotal         *prometheus.CounterVec
	AdaptationIssuesTotal    *prometheus.CounterVec
	CategoryResolutionsTotal *prometheus.CounterVec
	StoreBreakerState        *prometheus.GaugeVec
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adapter_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path_pattern", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "adapter_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: httpDurationBuckets,
		}, []string{"method", "path_pattern"}),
		AdaptationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adapter_adaptations_total",
			Help: "Total number of product adaptations.",
		}, []string{"platform", "valid"}),
		AdaptationIssuesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adapter_adaptation_issues_total",
			Help: "Validation errors and warnings produced by adaptations.",
		}, []string{"platform", "severity", "field"}),
		CategoryResolutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adapter_category_resolutions_total",
			Help: "Category resolutions by outcome (cached, computed, fallback).",
		}, []string{"platform", "outcome"}),
		StoreBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "adapter_store_circuit_breaker_state",
			Help: "Category store circuit breaker state: 0=closed, 1=half-open, 2=open.",
		}, []string{"store"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AdaptationsTotal,
		m.AdaptationIssuesTotal,
		m.CategoryResolutionsTotal,
		m.StoreBreakerState,
	)
	return m
}

// ObserveAdaptation records one finished adaptation and its findings.
func (m *Metrics) ObserveAdaptation(platform string, result *domain.AdaptedProduct) {
	m.AdaptationsTotal.WithLabelValues(platform, strconv.FormatBool(result.IsValid)).Inc()
	for _, e := range result.Errors {
		m.AdaptationIssuesTotal.WithLabelValues(platform, string(e.Severity), e.Field).Inc()
	}
	for _, w := range result.Warnings {
		m.AdaptationIssuesTotal.WithLabelValues(platform, string(w.Severity), w.Field).Inc()
	}
}

// ObserveCategoryResolution records how a category resolution was answered.
func (m *Metrics) ObserveCategoryResolution(platform, outcome string) {
	m.CategoryResolutionsTotal.WithLabelValues(platform, outcome).Inc()
}

// SetStoreBreakerState records the breaker state of a named store.
func (m *Metrics) SetStoreBreakerState(store string, state float64) {
	m.StoreBreakerState.WithLabelValues(store).Set(state)
}

// Middleware records request metrics keyed by chi's route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		pattern := routePattern(r)
		m.HTTPRequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(sw.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}

// HandlerFor serves the metrics gathered by g.
func HandlerFor(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	pattern := strings.TrimSuffix(strings.Join(rctx.RoutePatterns, ""), "/*")
	if pattern == "" {
		return r.URL.Path
	}
	return pattern
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}
