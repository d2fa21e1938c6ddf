package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/identity-service/internal/database/service"
	"github.com/EgehanKilicarslan/identity-service/internal/logger"
	"github.com/EgehanKilicarslan/identity-service/internal/middleware"
	"github.com/EgehanKilicarslan/identity-service/internal/testutil"
)

func setupAuthRouter(tokens service.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	authMiddleware := middleware.NewAuthMiddleware(tokens, logger.Discard())

	r := gin.New()
	r.GET("/me", authMiddleware.RequireAuth(), func(c *gin.Context) {
		userID, ok := middleware.UserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	tokens := service.NewTokenService(testutil.TestConfig())
	validToken, err := tokens.IssueToken(5)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer " + validToken, wantStatus: http.StatusOK, wantBody: `"user_id":5`},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantBody: "Authorization header required"},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantBody: "Invalid authorization header format"},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantBody: "Invalid authorization header format"},
		{name: "bad token", header: "Bearer nope", wantStatus: http.StatusUnauthorized, wantBody: "Invalid or expired token"},
	}

	router := setupAuthRouter(tokens)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
