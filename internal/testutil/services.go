package testutil

import (
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/identity-service/internal/database/repository"
	"github.com/EgehanKilicarslan/identity-service/internal/database/service"
	"github.com/EgehanKilicarslan/identity-service/internal/logger"
)

// NewIdentityService wires the identity service to real repositories over db
func NewIdentityService(db *gorm.DB) service.IdentityService {
	return service.NewIdentityService(
		repository.NewUserRepository(db),
		repository.NewUserTypeRepository(db),
		repository.NewRestaurantRepository(db),
		TestConfig(),
		logger.Discard(),
	)
}

// CreateIdentityServiceWithMocks wires the identity service to mock repositories
func CreateIdentityServiceWithMocks(
	userRepo *MockUserRepository,
	userTypeRepo *MockUserTypeRepository,
	restaurantRepo *MockRestaurantRepository,
) service.IdentityService {
	return service.NewIdentityService(userRepo, userTypeRepo, restaurantRepo, TestConfig(), logger.Discard())
}
