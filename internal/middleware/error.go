package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/caloria/backend/internal/logger"
	"github.com/pageza/caloria/backend/internal/types"
)

// MessageRetry is the generic message for failures the user can only retry
const MessageRetry = "Failed to analyze the image. Please try again."

// ErrorHandler recovers panics and turns unanswered gin errors into a JSON error response.
// Details are logged, never sent to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.WithFields(logrus.Fields{
					"request_id": RequestID(c),
					"panic":      err,
					"path":       c.Request.URL.Path,
				}).Error("Recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: MessageRetry})
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			logger.WithError(c.Errors.Last()).WithField("request_id", RequestID(c)).Error("Request failed")
			status := c.Writer.Status()
			if status < http.StatusBadRequest {
				status = http.StatusInternalServerError
			}
			c.JSON(status, types.ErrorResponse{Error: MessageRetry})
		}
	}
}
