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

	dedupeOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_dedupe_outcomes_total",
			Help: "Duplicate resolver outcomes by reason, accepted included",
		},
		[]string{"reason"},
	)

	auditLockContention = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_lock_contention_total",
			Help: "Audit requests rejected because an audit for the lead was already running",
		},
	)

	auditsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "audits_in_flight",
			Help: "Leads currently holding the audit lock",
		},
	)

	auditsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audits_completed_total",
			Help: "Audits finished, by outcome",
		},
		[]string{"status"},
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

// routePattern keeps lead IDs out of the path label
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}

	return "unmatched"
}

func RecordDedupeOutcome(reason string) {
	if reason == "" {
		reason = "accepted"
	}
	dedupeOutcomes.WithLabelValues(reason).Inc()
}

func RecordAuditLockContention() {
	auditLockContention.Inc()
}

func SetAuditsInFlight(n int) {
	auditsInFlight.Set(float64(n))
}

func RecordAudit(status string) {
	auditsCompleted.WithLabelValues(status).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
