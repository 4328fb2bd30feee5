package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haukened/rr-authdns/internal/dns/common/log"
)

// requestLogger logs every API request at Info.
func requestLogger(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info(map[string]any{
			"method":     method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}, "api request")
	}
}
