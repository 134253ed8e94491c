package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tair/gift-rooms/pkg/database"
)

// Config holds the room service configuration
type Config struct {
	HTTPPort       string
	Environment    string
	LogLevel       string
	ServiceName    string
	JaegerEndpoint string

	Database database.Config
	Redis    database.RedisConfig

	KafkaBrokers []string

	MaxParticipants      int
	ParticipantsCacheTTL time.Duration
	RateLimitRequests    int
	RateLimitWindow      time.Duration
	// TrustedProxies lists IPs or CIDRs whose X-Forwarded-For is honoured
	TrustedProxies     []string
	CORSAllowedOrigins []string
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads an optional .env file and then the environment
func Load() *Config {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	return &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ServiceName:    getEnv("OTEL_SERVICE_NAME", "room-service"),
		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "roomdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: database.RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		KafkaBrokers:         getEnvList("KAFKA_BROKERS", ""),
		MaxParticipants:      getEnvInt("MAX_PARTICIPANTS", 20),
		ParticipantsCacheTTL: getEnvDuration("PARTICIPANTS_CACHE_TTL", 5*time.Minute),
		RateLimitRequests:    getEnvInt("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:      getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		TrustedProxies:       getEnvList("TRUSTED_PROXIES", ""),
		CORSAllowedOrigins:   getEnvList("CORS_ALLOWED_ORIGINS", "*"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key, defaultValue string) []string {
	var items []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
