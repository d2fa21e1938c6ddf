package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// AccessLog writes one structured record per request
func AccessLog(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"request_id", c.GetString(ContextRequestIDKey),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}

		switch {
		case status >= 500:
			logger.Error("🌐 [HTTP] Request completed", attrs...)
		case status >= 400:
			logger.Warn("🌐 [HTTP] Request completed", attrs...)
		default:
			logger.Info("🌐 [HTTP] Request completed", attrs...)
		}
	}
}
