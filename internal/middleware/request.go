package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"task-reminder-bot/pkg/log"
)

// RequestIDHeader is echoed back, and reused when the caller already sent one.
const RequestIDHeader = "X-Request-ID"

// RequestLogger tags the request context with a request id and logs one line per request
// through the service logger instead of gin's stdout writer.
func (m Middleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		ctx := log.WithFields(c.Request.Context(), "request_id", requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		if status >= 500 {
			m.l.Warnf(ctx, "%s %s %d %s", c.Request.Method, c.FullPath(), status, time.Since(start))
			return
		}
		m.l.Debugf(ctx, "%s %s %d %s", c.Request.Method, c.FullPath(), status, time.Since(start))
	}
}
