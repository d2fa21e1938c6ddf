package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/EgehanKilicarslan/identity-service/internal/database"
	"github.com/EgehanKilicarslan/identity-service/internal/database/models"
)

// SetupTestDB opens a private in-memory SQLite database with the identity
// schema migrated and the default user types seeded.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())

	gormCfg := database.GormConfig()
	gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)

	db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// SQLite serialises writers; one connection keeps concurrent tests deterministic.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.UserType{}, &models.Restaurant{}, &models.User{}))
	require.NoError(t, database.SeedUserTypes(context.Background(), db))

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// CreateRestaurant inserts a restaurant row and returns it
func CreateRestaurant(t *testing.T, db *gorm.DB, name string) *models.Restaurant {
	t.Helper()

	restaurant := &models.Restaurant{Name: name}
	require.NoError(t, db.Create(restaurant).Error)
	return restaurant
}
