package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/identity-service/internal/database"
)

// HealthHandler reports store reachability
type HealthHandler struct {
	checker database.HealthChecker
	timeout time.Duration
	logger  *slog.Logger
}

func NewHealthHandler(checker database.HealthChecker, timeout time.Duration, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		checker: checker,
		timeout: timeout,
		logger:  logger,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	if err := h.checker.Check(ctx); err != nil {
		h.logger.Error("❌ [Health] Store check failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "unhealthy", "error": "Store unreachable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
