package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tillbook/pkg/logger"
)

// RequestID assigns every request an id, honoring X-Request-ID when the
// client sends one. The id rides the context into all log lines.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
