//go:build wireinject
// +build wireinject

package room

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/gift-rooms/internal/config"
	"github.com/tair/gift-rooms/internal/room/delivery/http"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	redisClient *redis.Client,
	publisher http.EventPublisher,
	cfg *config.Config,
	reg prometheus.Registerer,
) (*http.RoomHandler, error) {
	wire.Build(
		AllHandlersSet,
		ProvideParticipantCache,
		ProvideRateLimiter,
		http.NewMetrics,
		http.NewRoomHandler,
	)
	return nil, nil
}
