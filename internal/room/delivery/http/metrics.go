package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/gift-rooms/internal/room/usecase/command"
)

// Metrics holds the room service Prometheus collectors
type Metrics struct {
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	userDeletions  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "room_service_requests_total",
				Help: "Total number of requests to room service",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "room_service_request_duration_seconds",
				Help:    "Duration of room service requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		userDeletions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "room_service_user_deletions_total",
				Help: "User deletion attempts by outcome",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(m.requestCounter, m.requestLatency, m.userDeletions)
	return m
}

// recordDeletion counts a delete outcome. Propagated failures are labelled "Error".
func (m *Metrics) recordDeletion(result command.DeleteUserResult, err error) {
	label := "Success"
	switch {
	case err != nil:
		label = "Error"
	case !result.Success:
		label = string(result.ErrorCode)
	}
	m.userDeletions.WithLabelValues(label).Inc()
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// instrument wraps a handler with request count and latency metrics
func (m *Metrics) instrument(endpoint string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		m.requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
		m.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	})
}
