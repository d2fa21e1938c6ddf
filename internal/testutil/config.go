package testutil

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/EgehanKilicarslan/identity-service/internal/config"
)

// TestConfig returns a config tuned for fast tests: minimum bcrypt cost,
// short store timeout and token issuance enabled.
func TestConfig() *config.Config {
	return &config.Config{
		AppEnv:                "test",
		LogLevel:              slog.LevelError,
		StoreTimeout:          2,
		BcryptCost:            int64(bcrypt.MinCost),
		JWTSecret:             "test-secret",
		AccessTokenExpiration: 900,
		RateLimitPerMinute:    0,
	}
}
