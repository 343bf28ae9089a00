package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	gatewayCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_gateway_calls_total",
			Help: "Total number of AI gateway calls",
		},
		[]string{"kind", "status"},
	)

	gatewayDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_gateway_call_duration_seconds",
			Help:    "Duration of AI gateway calls in seconds",
			Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"kind"},
	)

	contentDegraded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "content_degraded_total",
			Help: "Total number of content pieces created from fallback copy",
		},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming handlers working behind the middleware.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// unmatchedRoute labels requests no route matched, so 404 scans share one series.
const unmatchedRoute = "unmatched"

// routePattern labels by chi route ("/leads/{id}/qualify") so ids do not
// explode the series count.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatchedRoute
}

// RecordGatewayCall counts one gateway round trip. kind is "text" or "image".
func RecordGatewayCall(kind string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	gatewayCalls.WithLabelValues(kind, status).Inc()
	gatewayDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func RecordDegradedContent() {
	contentDegraded.Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
