package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/EgehanKilicarslan/identity-service/internal/config"
)

func TestLoadConfig_Success(t *testing.T) {
	t.Setenv("API_SERVICE_PORT", "5001")
	t.Setenv("STORE_TIMEOUT", "3")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg := config.LoadConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "5001", cfg.ApiServicePort)
	assert.Equal(t, int64(3), cfg.StoreTimeout)
	assert.Equal(t, 3*time.Second, cfg.StoreTimeoutDuration())
	assert.Equal(t, int64(4), cfg.BcryptCost)
	assert.True(t, cfg.TokensEnabled())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := config.LoadConfig()

	assert.Equal(t, "8080", cfg.ApiServicePort)
	assert.Equal(t, "50052", cfg.ApiGrpcPort)
	assert.Equal(t, int64(60), cfg.RateLimitPerMinute)
	assert.Equal(t, "reservations", cfg.KafkaReservationTopic)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.TokensEnabled())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	t.Setenv("LOG_LEVEL", "verbose")

	cfg := config.LoadConfig()

	assert.Equal(t, int64(25), cfg.DBMaxOpenConns)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadConfig_LogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	cfg := config.LoadConfig()

	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "database url wins",
			cfg: config.Config{
				DatabaseURL:    "postgres://u:p@localhost:5432/identity",
				PostgreSQLHost: "ignored",
			},
			want: "postgres://u:p@localhost:5432/identity",
		},
		{
			name: "discrete settings",
			cfg: config.Config{
				PostgreSQLHost:     "db",
				PostgreSQLPort:     5433,
				PostgreSQLUser:     "u",
				PostgreSQLPassword: "p",
				PostgreSQLDatabase: "identity",
			},
			want: "host=db user=u password=p dbname=identity port=5433 sslmode=disable TimeZone=UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
