package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gaming-community-api/internal/response"
	"gaming-community-api/internal/service"
)

// ContextUserIDKey is the gin context key holding the authenticated user ID
const ContextUserIDKey = "user_id"

// Auth requires a valid bearer token and stores the user ID in the context
func Auth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseBearerToken(c, authService)
		if !ok {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth stores the user ID when a valid bearer token is present and
// lets the request proceed anonymously otherwise
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := parseBearerToken(c, authService); ok {
			c.Set(ContextUserIDKey, userID)
		}
		c.Next()
	}
}

func parseBearerToken(c *gin.Context, authService service.AuthService) (uuid.UUID, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return uuid.Nil, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return uuid.Nil, false
	}

	userID, err := authService.ValidateToken(parts[1])
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

// CurrentUserID returns the authenticated user ID from the context
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}
