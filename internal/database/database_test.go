package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/identity-service/internal/database"
	"github.com/EgehanKilicarslan/identity-service/internal/database/models"
	"github.com/EgehanKilicarslan/identity-service/internal/testutil"
)

func TestHealthChecker(t *testing.T) {
	db := testutil.SetupTestDB(t)
	checker := database.NewHealthChecker(db)

	assert.NoError(t, checker.Check(context.Background()))

	require.NoError(t, database.Close(db))
	assert.Error(t, checker.Check(context.Background()))
}

func TestHealthChecker_CancelledContext(t *testing.T) {
	db := testutil.SetupTestDB(t)
	checker := database.NewHealthChecker(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, checker.Check(ctx))
}

func TestSeedUserTypes_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, database.SeedUserTypes(ctx, db))
	require.NoError(t, database.SeedUserTypes(ctx, db))

	var userTypes []models.UserType
	require.NoError(t, db.Order("id").Find(&userTypes).Error)
	assert.Equal(t, models.DefaultUserTypes, userTypes)
}
