package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/tair/gift-rooms/internal/config"
	"github.com/tair/gift-rooms/internal/room"
	httpDelivery "github.com/tair/gift-rooms/internal/room/delivery/http"
	"github.com/tair/gift-rooms/internal/room/repository"
	"github.com/tair/gift-rooms/kafka"
	"github.com/tair/gift-rooms/pkg/database"
	"github.com/tair/gift-rooms/pkg/logger"
	"github.com/tair/gift-rooms/pkg/tracing"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.IsDevelopment(), cfg.LogLevel)

	tp, err := tracing.InitTracer(cfg.ServiceName, "1.0.0", cfg.JaegerEndpoint)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
		}
	}()

	// Connect to database with GORM
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := repository.NewGormRoomRepository(db).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Kafka is optional; without brokers events are not published
	var publisher httpDelivery.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka publisher unavailable, events will not be published")
		} else {
			defer kafkaPublisher.Close()
			publisher = kafkaPublisher
		}
	}

	handler, err := room.InitializeHTTPHandler(db, redisClient, publisher, cfg, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize HTTP handler")
	}

	router := mux.NewRouter()
	httpDelivery.RegisterMiddlewares(router, httpDelivery.DefaultMiddlewareConfig())
	handler.RegisterRoutes(router)
	router.Handle("/health", httpDelivery.NewHealthHandler(sqlDB, redisClient)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Logger.Info().Str("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
}
