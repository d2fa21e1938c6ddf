package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/EgehanKilicarslan/identity-service/internal/config"
	"github.com/EgehanKilicarslan/identity-service/internal/database/models"
	"github.com/EgehanKilicarslan/identity-service/internal/database/repository"
)

// IdentityService owns registration, authentication and profile data of users
type IdentityService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.User, error)
	LinkRestaurant(ctx context.Context, userID, restaurantID uint) error
	ListUserTypes(ctx context.Context) ([]models.UserType, error)
}

// RegisterInput carries the fields of a new account; all are required
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	UserType string
}

func (in RegisterInput) complete() bool {
	return in.Name != "" && in.Email != "" && in.Password != "" && in.Address != "" && in.UserType != ""
}

type identityService struct {
	userRepo       repository.UserRepository
	userTypeRepo   repository.UserTypeRepository
	restaurantRepo repository.RestaurantRepository
	bcryptCost     int
	storeTimeout   time.Duration
	logger         *slog.Logger
}

// NewIdentityService creates a new identity service instance
func NewIdentityService(
	userRepo repository.UserRepository,
	userTypeRepo repository.UserTypeRepository,
	restaurantRepo repository.RestaurantRepository,
	cfg *config.Config,
	logger *slog.Logger,
) IdentityService {
	cost := int(cfg.BcryptCost)
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &identityService{
		userRepo:       userRepo,
		userTypeRepo:   userTypeRepo,
		restaurantRepo: restaurantRepo,
		bcryptCost:     cost,
		storeTimeout:   cfg.StoreTimeoutDuration(),
		logger:         logger,
	}
}

func (s *identityService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	s.logger.Info("📝 [IdentityService] Registration attempt", "email", input.Email, "user_type", input.UserType)

	if !input.complete() {
		return nil, ErrMalformedRequest
	}

	userType, err := s.resolveUserType(ctx, input.UserType)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password longer than 72 bytes", ErrMalformedRequest)
		}
		s.logger.Error("❌ [IdentityService] Failed to hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Address:      input.Address,
		TypeID:       userType.ID,
	}

	storeCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	// The unique index on users.email is the only uniqueness check.
	if err := s.userRepo.Create(storeCtx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			s.logger.Warn("⚠️ [IdentityService] Email already registered", "email", input.Email)
			return nil, ErrDuplicateEmail
		}
		return nil, s.storeError("create user", err)
	}

	user.Type = *userType

	s.logger.Info("✅ [IdentityService] User registered successfully", "user_id", user.ID, "type_id", user.TypeID)
	return user, nil
}

func (s *identityService) resolveUserType(ctx context.Context, name string) (*models.UserType, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	userType, err := s.userTypeRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrUserTypeNotFound) {
			s.logger.Warn("⚠️ [IdentityService] Unknown user type", "user_type", name)
			return nil, ErrInvalidType
		}
		return nil, s.storeError("resolve user type", err)
	}
	return userType, nil
}

func (s *identityService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	s.logger.Info("🔐 [IdentityService] Login attempt", "email", email)

	if email == "" || password == "" {
		return nil, ErrMalformedRequest
	}

	storeCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := s.userRepo.FindByEmail(storeCtx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [IdentityService] User not found", "email", email)
			return nil, repository.ErrUserNotFound
		}
		return nil, s.storeError("find user by email", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("⚠️ [IdentityService] Invalid password", "email", email)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("✅ [IdentityService] User authenticated", "user_id", user.ID)
	return user, nil
}

func (s *identityService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	if userID == 0 {
		return nil, ErrMalformedRequest
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		return nil, s.storeError("find user by id", err)
	}
	return user, nil
}

func (s *identityService) GetProfileByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, ErrMalformedRequest
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		return nil, s.storeError("find user by email", err)
	}
	return user, nil
}

func (s *identityService) LinkRestaurant(ctx context.Context, userID, restaurantID uint) error {
	s.logger.Info("🔗 [IdentityService] Linking restaurant", "user_id", userID, "restaurant_id", restaurantID)

	if userID == 0 || restaurantID == 0 {
		return ErrMalformedRequest
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.restaurantRepo.FindByID(ctx, restaurantID); err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			s.logger.Warn("⚠️ [IdentityService] Restaurant not found", "restaurant_id", restaurantID)
			return err
		}
		return s.storeError("find restaurant", err)
	}

	if err := s.userRepo.SetRestaurant(ctx, userID, restaurantID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrRestaurantNotFound) {
			s.logger.Warn("⚠️ [IdentityService] Link target missing", "user_id", userID, "restaurant_id", restaurantID, "error", err)
			return err
		}
		return s.storeError("set restaurant", err)
	}

	s.logger.Info("✅ [IdentityService] Restaurant linked", "user_id", userID, "restaurant_id", restaurantID)
	return nil
}

func (s *identityService) ListUserTypes(ctx context.Context) ([]models.UserType, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	userTypes, err := s.userTypeRepo.List(ctx)
	if err != nil {
		return nil, s.storeError("list user types", err)
	}
	return userTypes, nil
}

func (s *identityService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

// storeError logs and wraps an unexpected repository failure
func (s *identityService) storeError(op string, err error) error {
	s.logger.Error("❌ [IdentityService] Store error", "op", op, "error", err)
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}

// Service errors
var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidType        = errors.New("invalid user type")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrMalformedRequest   = errors.New("malformed request")
)
