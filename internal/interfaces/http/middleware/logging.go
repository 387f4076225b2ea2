// Package middleware holds the gin middleware shared by the HTTP interface:
// request logging, metrics observation and panic recovery.
package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns a request id when the client did not send one and echoes
// it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request and feeds the HTTP metrics.  The
// route template (c.FullPath) is used as the metrics path label to keep label
// cardinality bounded.
func RequestLogger(logger logging.Logger, metrics *prometheus.AppMetrics) gin.HandlerFunc {
	if logger == nil {
		logger = logging.Default()
	}
	if metrics == nil {
		metrics = prometheus.NewNopAppMetrics()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		metrics.ObserveHTTPRequest(c.Request.Method, path, strconv.Itoa(status), elapsed)

		fields := []logging.Field{
			logging.String("request_id", c.GetString("request_id")),
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", status),
			logging.Duration("elapsed", elapsed),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("http request", fields...)
		case status >= 400:
			logger.Warn("http request", fields...)
		default:
			logger.Info("http request", fields...)
		}
	}
}

// Recovery converts panics into 500 responses instead of dropping the
// connection, logging the panic value with the request id.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.Default()
	}
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					logging.String("request_id", c.GetString("request_id")),
					logging.String("path", c.Request.URL.Path),
					logging.String("panic", fmt.Sprint(r)))
				c.AbortWithStatusJSON(500, gin.H{
					"code":    apperrors.ErrCodeInternal.String(),
					"message": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
