package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/identity-service/internal/database/models"
	"github.com/EgehanKilicarslan/identity-service/internal/database/repository"
	"github.com/EgehanKilicarslan/identity-service/internal/database/service"
	"github.com/EgehanKilicarslan/identity-service/internal/middleware"
)

// IdentityHandler handles HTTP requests for registration, login and profiles
type IdentityHandler struct {
	service service.IdentityService
	tokens  service.TokenService
	logger  *slog.Logger
}

// NewIdentityHandler creates a new identity handler. tokens may be nil,
// in which case login responses carry no access token.
func NewIdentityHandler(service service.IdentityService, tokens service.TokenService, logger *slog.Logger) *IdentityHandler {
	return &IdentityHandler{
		service: service,
		tokens:  tokens,
		logger:  logger,
	}
}

// Request/Response DTOs
type RegisterRequest struct {
	UserName     string `json:"user_name" binding:"required,max=100"`
	UserEmail    string `json:"user_email" binding:"required,email"`
	UserPassword string `json:"user_password" binding:"required"`
	UserAddress  string `json:"user_address" binding:"required_without=UserAdress"`
	UserAdress   string `json:"user_adress"` // accepted from older clients
	UserType     string `json:"user_type" binding:"required"`
}

func (r RegisterRequest) address() string {
	if r.UserAddress != "" {
		return r.UserAddress
	}
	return r.UserAdress
}

type LoginRequest struct {
	UserEmail    string `json:"user_email" binding:"required,email"`
	UserPassword string `json:"user_password" binding:"required"`
}

type UserInfoRequest struct {
	UserID    uint   `json:"user_id" form:"user_id"`
	UserEmail string `json:"user_email" form:"user_email" binding:"omitempty,email"`
}

type LinkRestaurantRequest struct {
	UserID       uint `json:"user_id" binding:"required"`
	RestaurantID uint `json:"restaurant_id" binding:"required"`
}

type IdentityResponse struct {
	UserID      uint   `json:"user_id"`
	UserType    uint   `json:"user_type"`
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

type UserInfoResponse struct {
	UserName     string `json:"user_name"`
	UserEmail    string `json:"user_email"`
	Adress       string `json:"adress"`
	UserType     uint   `json:"user_type"`
	RestaurantID *uint  `json:"restaurant_id"`
}

func newUserInfoResponse(user *models.User) UserInfoResponse {
	return UserInfoResponse{
		UserName:     user.Name,
		UserEmail:    user.Email,
		Adress:       user.Address,
		UserType:     user.TypeID,
		RestaurantID: user.RestaurantID,
	}
}

// Register handles POST /api/register
func (h *IdentityHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [Handler] Invalid registration request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. user_name, user_email, user_password, user_address and user_type are required."})
		return
	}

	user, err := h.service.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.UserName,
		Email:    req.UserEmail,
		Password: req.UserPassword,
		Address:  req.address(),
		UserType: req.UserType,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, IdentityResponse{
		UserID:   user.ID,
		UserType: user.TypeID,
	})
}

// Login handles POST /api/login
func (h *IdentityHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [Handler] Invalid login request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. user_email and user_password are required."})
		return
	}

	user, err := h.service.Authenticate(c.Request.Context(), req.UserEmail, req.UserPassword)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	resp := IdentityResponse{
		UserID:   user.ID,
		UserType: user.TypeID,
	}

	if h.tokens != nil {
		token, err := h.tokens.IssueToken(user.ID)
		if err != nil {
			h.logger.Error("❌ [Handler] Failed to issue token", "user_id", user.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		resp.AccessToken = token
		resp.TokenType = "Bearer"
		resp.ExpiresIn = h.tokens.ExpiresIn()
	}

	c.JSON(http.StatusOK, resp)
}

// GetUserInfo handles GET and POST /api/getUserInfo, by user_id or user_email
func (h *IdentityHandler) GetUserInfo(c *gin.Context) {
	var req UserInfoRequest
	var err error
	if c.Request.Method == http.MethodGet {
		err = c.ShouldBindQuery(&req)
	} else {
		err = c.ShouldBindJSON(&req)
	}
	if err != nil || (req.UserID == 0 && req.UserEmail == "") {
		h.logger.Warn("⚠️ [Handler] Invalid user info request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. user_id or user_email is required."})
		return
	}

	var user *models.User
	if req.UserID != 0 {
		user, err = h.service.GetProfile(c.Request.Context(), req.UserID)
	} else {
		user, err = h.service.GetProfileByEmail(c.Request.Context(), req.UserEmail)
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserInfoResponse(user))
}

// LinkRestaurant handles POST /api/link_restaurant
func (h *IdentityHandler) LinkRestaurant(c *gin.Context) {
	var req LinkRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [Handler] Invalid link request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. user_id and restaurant_id are required."})
		return
	}

	if err := h.service.LinkRestaurant(c.Request.Context(), req.UserID, req.RestaurantID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Restaurant linked successfully",
		"user_id":       req.UserID,
		"restaurant_id": req.RestaurantID,
	})
}

// ListUserTypes handles GET /api/user_types
func (h *IdentityHandler) ListUserTypes(c *gin.Context) {
	userTypes, err := h.service.ListUserTypes(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_types": userTypes})
}

// Me handles GET /api/me for the bearer of a valid access token
func (h *IdentityHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		h.logger.Error("❌ [Handler] User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserInfoResponse(user))
}

// handleServiceError maps service errors to HTTP responses
func (h *IdentityHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMalformedRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists. Please use a different email."})
	case errors.Is(err, service.ErrInvalidType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user type"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, repository.ErrRestaurantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
	case errors.Is(err, service.ErrStoreUnavailable):
		h.logger.Error("❌ [Handler] Store unavailable", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
