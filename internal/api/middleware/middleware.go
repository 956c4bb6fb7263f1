package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-ownership-resolver/internal/api/shared/errors"
	"github.com/feral-file/ff-ownership-resolver/internal/logger"
)

const (
	REQUEST_ID_HEADER = "X-Request-ID"
	REQUEST_ID_KEY    = "request_id"
)

// RequestID tags every request with a ULID, reusing the caller's id when present
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(REQUEST_ID_HEADER)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Set(REQUEST_ID_KEY, id)
		c.Header(REQUEST_ID_HEADER, id)
		c.Next()
	}
}

// Logger returns a gin middleware for structured logging using zap
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.InfoCtx(c.Request.Context(), "API request",
			zap.String("request_id", c.GetString(REQUEST_ID_KEY)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	}
}

// Recovery returns a gin middleware for panic recovery with logging
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorCtx(c.Request.Context(), fmt.Errorf("panic recovered: %v", err),
					zap.String("request_id", c.GetString(REQUEST_ID_KEY)),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierrors.NewInternalError("Internal server error"))
			}
		}()
		c.Next()
	}
}
