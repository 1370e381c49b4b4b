package devserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/logger"
)

const requestIDKey = "request_id"

// requestID reuses the caller's X-Request-ID when it is short enough, or generates one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(constants.RequestIDHeader)
		if rid == "" || len(rid) > constants.RequestIDMaxLen {
			rid = uuid.NewString()
		}

		c.Set(requestIDKey, rid)
		c.Header(constants.RequestIDHeader, rid)

		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		keyvals := []interface{}{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"request_id", c.GetString(requestIDKey),
			"latency", time.Since(start),
		}
		if len(c.Errors) > 0 {
			keyvals = append(keyvals, "errors", c.Errors.ByType(gin.ErrorTypePrivate).String())
		}

		switch {
		case status >= 500:
			logger.Error("Request failed", keyvals...)
		case status >= 400:
			logger.Warn("Client error", keyvals...)
		default:
			logger.Info("Request completed", keyvals...)
		}
	}
}

// bearerAuth rejects requests whose Authorization header does not carry token.
// An empty token disables the check.
func bearerAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] != token {
			abort(c, http.StatusUnauthorized, constants.MsgUnauthorized)
			return
		}
		c.Next()
	}
}
