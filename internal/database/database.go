package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/EgehanKilicarslan/identity-service/internal/config"
	"github.com/EgehanKilicarslan/identity-service/internal/database/models"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// GormConfig is shared by production and test connections. TranslateError
// is required: repositories rely on gorm.ErrDuplicatedKey for unique emails.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

func ConnectDatabase(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	logger.Info("🔌 [Database] Connecting to PostgreSQL...",
		"host", cfg.PostgreSQLHost,
		"port", cfg.PostgreSQLPort,
		"database", cfg.PostgreSQLDatabase,
		"from_url", cfg.DatabaseURL != "",
	)

	maxRetries := int(cfg.DBConnectRetries)
	if maxRetries < 1 {
		maxRetries = 1
	}
	retryDelay := 2 * time.Second

	var db *gorm.DB
	var err error
	for i := 0; i < maxRetries; i++ {
		db, err = open(cfg)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			logger.Warn("⏳ [Database] Connection failed, retrying...",
				"attempt", i+1,
				"max_retries", maxRetries,
				"retry_in", retryDelay,
				"error", err,
			)
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL after %d attempts: %w", maxRetries, err)
	}

	logger.Info("✅ [Database] Database connection established",
		"max_open_conns", cfg.DBMaxOpenConns,
		"max_idle_conns", cfg.DBMaxIdleConns,
	)

	logger.Info("🔄 [Database] Running migrations...")
	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := SeedUserTypes(context.Background(), db); err != nil {
		return nil, fmt.Errorf("failed to seed user types: %w", err)
	}

	logger.Info("✅ [Database] Migrations completed successfully")

	return db, nil
}

// open dials PostgreSQL, sizes the pool and pings once.
func open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), GormConfig())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(int(cfg.DBMaxOpenConns))
	sqlDB.SetMaxIdleConns(int(cfg.DBMaxIdleConns))
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeoutDuration())
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

func runMigrations(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	return nil
}

// SeedUserTypes makes sure every default role category exists. Safe to run repeatedly.
func SeedUserTypes(ctx context.Context, db *gorm.DB) error {
	userTypes := append([]models.UserType(nil), models.DefaultUserTypes...)
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&userTypes).Error
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return errors.New("database not initialized")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
