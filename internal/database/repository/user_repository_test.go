package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/identity-service/internal/database/models"
	"github.com/EgehanKilicarslan/identity-service/internal/database/repository"
	"github.com/EgehanKilicarslan/identity-service/internal/testutil"
)

func newUser(email string) *models.User {
	return &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
		Address:      "1 Main St",
		TypeID:       1,
	}
}

func TestUserRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *models.User
		wantErr error
	}{
		{
			name: "success",
			user: newUser("test@example.com"),
		},
		{
			name:    "duplicate email",
			user:    newUser("test@example.com"),
			wantErr: repository.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, tt.user.ID)
			}
		})
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("find@example.com")))

	tests := []struct {
		name      string
		email     string
		wantErr   error
		wantEmail string
	}{
		{
			name:      "found",
			email:     "find@example.com",
			wantEmail: "find@example.com",
		},
		{
			name:    "not found",
			email:   "nonexistent@example.com",
			wantErr: repository.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := repo.FindByEmail(ctx, tt.email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantEmail, user.Email)
				assert.Equal(t, models.UserTypeCustomer, user.Type.Name)
			}
		})
	}
}

func TestUserRepository_FindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	created := newUser("id@example.com")
	created.TypeID = 2
	require.NoError(t, repo.Create(ctx, created))

	user, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "id@example.com", user.Email)
	assert.Equal(t, models.UserTypeOwner, user.Type.Name)

	_, err = repo.FindByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_SetRestaurant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	user := newUser("owner@example.com")
	require.NoError(t, repo.Create(ctx, user))
	restaurant := testutil.CreateRestaurant(t, db, "Noodle Bar")

	require.NoError(t, repo.SetRestaurant(ctx, user.ID, restaurant.ID))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, found.HasRestaurant())
	assert.Equal(t, restaurant.ID, *found.RestaurantID)

	err = repo.SetRestaurant(ctx, user.ID+100, restaurant.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_CanceledContext(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindByEmail(ctx, "any@example.com")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrUserNotFound)
}
