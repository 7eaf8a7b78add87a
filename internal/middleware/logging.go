package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderRequestID carries the request correlation id across services.
const HeaderRequestID = "X-Request-Id"

// RequestLogging returns middleware that tags each request with an id and
// logs method, path, status and duration. Tokens and credentials are
// never logged.
func RequestLogging(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
			c.Request.Header.Set(HeaderRequestID, requestID)
		}
		c.Header(HeaderRequestID, requestID)

		start := time.Now()
		c.Next()

		logger.Debug("http request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("remote", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000.0),
			zap.Int("size", c.Writer.Size()),
		)
	}
}
