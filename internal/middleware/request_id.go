package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pageza/caloria/backend/internal/logger"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	maxRequestIDLen = 128
)

// RequestLogger tags each request with an ID and logs it once it completes
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		}).Info("Request handled")
	}
}

// RequestID returns the ID assigned by RequestLogger, or "" outside of it
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
