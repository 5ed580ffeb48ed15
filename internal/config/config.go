package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
	Dispatch DispatchConfig
	Maps     MapsConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration. When Enabled is false driver locks
// are held in process and nothing is cached.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// DispatchConfig holds the tunables of the dispatch core.
type DispatchConfig struct {
	OperationTimeout  time.Duration
	DistanceTimeout   time.Duration
	LockTTL           time.Duration
	LockRetryInterval time.Duration
	SlabCacheTTL      time.Duration
	PenaltyFee        decimal.Decimal

	// Cancellation policy amounts.
	OngoingCancellationCharge decimal.Decimal
	CancellationCommission    decimal.Decimal
	DriverCancellationPenalty decimal.Decimal
}

// MapsConfig holds Google Maps configuration. An empty APIKey disables quotes.
type MapsConfig struct {
	APIKey   string
	Language string
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level string
	JSON  bool
}

// Load loads configuration from environment variables. Values from a .env
// file in the working directory fill in anything not already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			AllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "dispatch"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			Enabled:  getBoolEnv("REDIS_ENABLED", true),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "dispatch-service"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Dispatch: DispatchConfig{
			OperationTimeout:  getDurationEnv("DISPATCH_OPERATION_TIMEOUT", 5*time.Second),
			DistanceTimeout:   getDurationEnv("DISPATCH_DISTANCE_TIMEOUT", 3*time.Second),
			LockTTL:           getDurationEnv("DISPATCH_LOCK_TTL", 10*time.Second),
			LockRetryInterval: getDurationEnv("DISPATCH_LOCK_RETRY_INTERVAL", 50*time.Millisecond),
			SlabCacheTTL:      getDurationEnv("DISPATCH_SLAB_CACHE_TTL", 5*time.Minute),
			PenaltyFee:        getDecimalEnv("DISPATCH_PENALTY_FEE", decimal.NewFromInt(120)),

			OngoingCancellationCharge: getDecimalEnv("DISPATCH_CANCEL_CHARGE", decimal.NewFromInt(50)),
			CancellationCommission:    getDecimalEnv("DISPATCH_CANCEL_COMMISSION", decimal.NewFromInt(20)),
			DriverCancellationPenalty: getDecimalEnv("DISPATCH_DRIVER_PENALTY", decimal.NewFromInt(50)),
		},
		Maps: MapsConfig{
			APIKey:   getEnv("GOOGLE_MAPS_API_KEY", ""),
			Language: getEnv("GOOGLE_MAPS_LANGUAGE", "en"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			JSON:  getBoolEnv("LOG_JSON", true),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getDecimalEnv(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil && !d.IsNegative() {
			return d
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
