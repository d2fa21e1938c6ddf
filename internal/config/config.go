package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	AppEnv                string
	LogLevel              slog.Level
	ApiServicePort        string
	ApiGrpcPort           string
	DatabaseURL           string
	PostgreSQLHost        string
	PostgreSQLPort        int64
	PostgreSQLUser        string
	PostgreSQLPassword    string
	PostgreSQLDatabase    string
	DBMaxOpenConns        int64
	DBMaxIdleConns        int64
	DBConnMaxLifetime     int64 // Seconds
	DBConnectRetries      int64
	StoreTimeout          int64 // Seconds, applied to every store call
	BcryptCost            int64
	JWTSecret             string
	AccessTokenExpiration int64
	RedisHost             string
	RedisPort             int64
	RedisPassword         string
	RedisDatabase         int64
	RateLimitPerMinute    int64
	KafkaBrokers          []string
	KafkaReservationTopic string
	KafkaGroupID          string
	HealthCheckInterval   int64 // Seconds
	ShutdownTimeout       int64 // Seconds
}

func LoadConfig() *Config {
	return &Config{
		AppEnv:                getEnv("APP_ENV", "development"),                      // Default development
		LogLevel:              getLogLevel(),                                         // Default INFO
		ApiServicePort:        getEnv("API_SERVICE_PORT", "8080"),                    // Default 8080
		ApiGrpcPort:           getEnv("API_GRPC_PORT", "50052"),                      // Default 50052 (gRPC health)
		DatabaseURL:           getEnv("DATABASE_URL", ""),                            // Overrides POSTGRESQL_* when set
		PostgreSQLHost:        getEnv("POSTGRESQL_HOST", "db"),                       // Default db
		PostgreSQLPort:        getEnvAsInt64("POSTGRESQL_PORT", 5432),                // Default 5432
		PostgreSQLUser:        getEnv("POSTGRESQL_USER", "identity_user"),            // Default user
		PostgreSQLPassword:    getEnv("POSTGRESQL_PASSWORD", "identity_password"),    // Default password
		PostgreSQLDatabase:    getEnv("POSTGRESQL_DATABASE", "identity_db"),          // Default database name
		DBMaxOpenConns:        getEnvAsInt64("DB_MAX_OPEN_CONNS", 25),                // Default 25
		DBMaxIdleConns:        getEnvAsInt64("DB_MAX_IDLE_CONNS", 5),                 // Default 5
		DBConnMaxLifetime:     getEnvAsInt64("DB_CONN_MAX_LIFETIME", 300),            // Default 5 minutes
		DBConnectRetries:      getEnvAsInt64("DB_CONNECT_RETRIES", 30),               // Default 30 attempts
		StoreTimeout:          getEnvAsInt64("STORE_TIMEOUT", 5),                     // Default 5 seconds
		BcryptCost:            getEnvAsInt64("BCRYPT_COST", int64(bcrypt.DefaultCost)), // Default 10
		JWTSecret:             getEnv("JWT_SECRET", ""),                              // Empty disables tokens
		AccessTokenExpiration: getEnvAsInt64("ACCESS_TOKEN_EXPIRATION", 900),         // Default 15 minutes
		RedisHost:             getEnv("REDIS_HOST", "redis"),                         // Default redis
		RedisPort:             getEnvAsInt64("REDIS_PORT", 6379),                     // Default 6379
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),                          // Default empty
		RedisDatabase:         getEnvAsInt64("REDIS_DATABASE", 0),                    // Default 0
		RateLimitPerMinute:    getEnvAsInt64("RATE_LIMIT_PER_MINUTE", 60),            // 0 disables
		KafkaBrokers:          getEnvAsList("KAFKA_BROKERS"),                         // Empty disables listener
		KafkaReservationTopic: getEnv("KAFKA_RESERVATION_TOPIC", "reservations"),     // Default reservations
		KafkaGroupID:          getEnv("KAFKA_GROUP_ID", "identity-service"),          // Default consumer group
		HealthCheckInterval:   getEnvAsInt64("HEALTH_CHECK_INTERVAL", 10),            // Default 10 seconds
		ShutdownTimeout:       getEnvAsInt64("SHUTDOWN_TIMEOUT", 10),                 // Default 10 seconds
	}
}

// DSN returns the PostgreSQL connection string, preferring DATABASE_URL.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		c.PostgreSQLHost,
		c.PostgreSQLUser,
		c.PostgreSQLPassword,
		c.PostgreSQLDatabase,
		c.PostgreSQLPort,
	)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

func (c *Config) StoreTimeoutDuration() time.Duration {
	return time.Duration(c.StoreTimeout) * time.Second
}

func (c *Config) TokensEnabled() bool {
	return c.JWTSecret != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}

	var items []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
