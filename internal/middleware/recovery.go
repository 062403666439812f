package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gaming-community-api/internal/response"
)

// Recovery converts panics into 500 responses, logging the stack server-side
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.Stack("stack"))

				response.SendError(c, http.StatusInternalServerError,
					response.ErrCodeInternal, "Internal server error")
			}
		}()
		c.Next()
	}
}
