package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/gift-rooms/pkg/logger"
)

// LoggingMiddleware logs HTTP requests with structured logging
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		ctx := r.Context()
		traceID := "no-trace"
		if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
			traceID = span.SpanContext().TraceID().String()
		}

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		var event *zerolog.Event
		switch {
		case ww.statusCode >= 500:
			event = logger.Error(ctx)
		case ww.statusCode >= 400:
			event = logger.Warn(ctx)
		default:
			event = logger.Info(ctx)
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Int("status", ww.statusCode).
			Dur("duration", duration).
			Int64("duration_ms", duration.Milliseconds()).
			Str("trace_id", traceID).
			Msg("HTTP request completed")
	})
}

// TracingMiddleware wraps HTTP handlers with OpenTelemetry tracing
func TracingMiddleware(operationName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, operationName)
	}
}

// MiddlewareConfig holds middleware configuration
type MiddlewareConfig struct {
	EnableLogging bool
	EnableTracing bool
}

// DefaultMiddlewareConfig returns default middleware configuration
func DefaultMiddlewareConfig() MiddlewareConfig {
	return MiddlewareConfig{
		EnableLogging: true,
		EnableTracing: true,
	}
}

// RegisterMiddlewares registers all middlewares to the router.
// Tracing runs outermost so the request log carries the trace id.
func RegisterMiddlewares(router *mux.Router, config MiddlewareConfig) {
	if config.EnableTracing {
		router.Use(TracingMiddleware("room-service"))
	}
	if config.EnableLogging {
		router.Use(LoggingMiddleware)
	}
}
