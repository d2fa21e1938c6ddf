package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/EgehanKilicarslan/identity-service/internal/database/models"
)

// ==================== MOCK USER REPOSITORY ====================

// MockUserRepository implements repository.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetRestaurant(ctx context.Context, userID, restaurantID uint) error {
	args := m.Called(ctx, userID, restaurantID)
	return args.Error(0)
}

// ==================== MOCK USER TYPE REPOSITORY ====================

// MockUserTypeRepository implements repository.UserTypeRepository for testing
type MockUserTypeRepository struct {
	mock.Mock
}

func (m *MockUserTypeRepository) FindByName(ctx context.Context, name string) (*models.UserType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserType), args.Error(1)
}

func (m *MockUserTypeRepository) List(ctx context.Context) ([]models.UserType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserType), args.Error(1)
}

// ==================== MOCK RESTAURANT REPOSITORY ====================

// MockRestaurantRepository implements repository.RestaurantRepository for testing
type MockRestaurantRepository struct {
	mock.Mock
}

func (m *MockRestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	args := m.Called(ctx, restaurant)
	return args.Error(0)
}

func (m *MockRestaurantRepository) FindByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Restaurant), args.Error(1)
}

// ==================== MOCK HEALTH CHECKER ====================

// MockHealthChecker implements database.HealthChecker for testing
type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) Check(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
