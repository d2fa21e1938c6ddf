package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/identity-service/internal/database/service"
)

// ContextUserIDKey is the gin context key holding the authenticated user id
const ContextUserIDKey = "userID"

// AuthMiddleware handles JWT validation
type AuthMiddleware struct {
	tokens service.TokenService
	logger *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(tokens service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		logger: logger,
	}
}

// RequireAuth validates the bearer token and sets userID in context
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.logger.Warn("⚠️ [Middleware] Missing Authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || scheme != "Bearer" || tokenString == "" {
			m.logger.Warn("⚠️ [Middleware] Invalid Authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		userID, err := m.tokens.VerifyToken(tokenString)
		if err != nil {
			m.logger.Warn("⚠️ [Middleware] Invalid token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextUserIDKey, userID)
		m.logger.Debug("✅ [Middleware] Token validated", "user_id", userID)

		c.Next()
	}
}

// UserIDFromContext returns the id set by RequireAuth
func UserIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}
