package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/identity-service/internal/handler"
	"github.com/EgehanKilicarslan/identity-service/internal/middleware"
)

// SetupRouter builds the HTTP surface of the identity service.
// authMiddleware may be nil, in which case /api/me is not registered.
func SetupRouter(
	identityHandler *handler.IdentityHandler,
	healthHandler *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter middleware.RateLimiter,
	logger *slog.Logger,
) *gin.Engine {
	r := gin.New()
	r.SetTrustedProxies(nil)

	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("❌ [API] Panic recovered", "error", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))

	// Public routes
	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	{
		api.POST("/register", middleware.RateLimit(rateLimiter, "register"), identityHandler.Register)
		api.POST("/login", middleware.RateLimit(rateLimiter, "login"), identityHandler.Login)
		api.GET("/getUserInfo", identityHandler.GetUserInfo)
		api.POST("/getUserInfo", identityHandler.GetUserInfo)
		api.POST("/link_restaurant", identityHandler.LinkRestaurant)
		api.GET("/user_types", identityHandler.ListUserTypes)
	}

	// Protected routes
	if authMiddleware != nil {
		api.GET("/me", authMiddleware.RequireAuth(), identityHandler.Me)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return r
}
