package http

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/gift-rooms/pkg/logger"
)

// DBPinger is satisfied by *sql.DB
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse reports the state of the service dependencies
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler checks PostgreSQL and Redis
type HealthHandler struct {
	db      DBPinger
	redis   *redis.Client
	timeout time.Duration
}

// NewHealthHandler creates a new health handler. redis may be nil.
func NewHealthHandler(db DBPinger, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, timeout: 2 * time.Second}
}

// ServeHTTP handles GET /health
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{Status: "healthy", Checks: map[string]string{}}

	resp.Checks["postgres"] = "up"
	if err := h.db.PingContext(ctx); err != nil {
		logger.Warn(ctx).Err(err).Msg("PostgreSQL health check failed")
		resp.Checks["postgres"] = "down"
		resp.Status = "unhealthy"
	}

	if h.redis != nil {
		resp.Checks["redis"] = "up"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			logger.Warn(ctx).Err(err).Msg("Redis health check failed")
			resp.Checks["redis"] = "down"
			resp.Status = "unhealthy"
		}
	}

	status := http.StatusOK
	if resp.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, resp)
}
