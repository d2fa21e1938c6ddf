package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/identity-service/internal/database/models"
)

// UserTypeRepository resolves role category names against the user_types table
type UserTypeRepository interface {
	FindByName(ctx context.Context, name string) (*models.UserType, error)
	List(ctx context.Context) ([]models.UserType, error)
}

type userTypeRepository struct {
	db *gorm.DB
}

func NewUserTypeRepository(db *gorm.DB) UserTypeRepository {
	return &userTypeRepository{db: db}
}

func (r *userTypeRepository) FindByName(ctx context.Context, name string) (*models.UserType, error) {
	var userType models.UserType
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&userType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserTypeNotFound
		}
		return nil, err
	}
	return &userType, nil
}

func (r *userTypeRepository) List(ctx context.Context) ([]models.UserType, error) {
	var userTypes []models.UserType
	err := r.db.WithContext(ctx).Order("id ASC").Find(&userTypes).Error
	return userTypes, err
}

var ErrUserTypeNotFound = errors.New("user type not found")
