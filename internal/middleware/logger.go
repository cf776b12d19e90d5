package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"fileshelf/internal/pkg/response"
)

// RequestLogger logs every request and recovers from panics. Server errors
// and gin errors are logged at error level with the stack.
func RequestLogger(l *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				logRequestError(l, c, start, "panic", err.Error(), debug.Stack())

				response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal Server Error")
				c.Abort()
				return
			}

			if len(c.Errors) == 0 {
				if c.Writer.Status() >= http.StatusInternalServerError {
					logRequestError(l, c, start, "http_error", fmt.Sprintf("status=%d", c.Writer.Status()), nil)
					return
				}
				l.Info("request",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"status", c.Writer.Status(),
					"latency", time.Since(start),
					"request_id", requestID(c),
				)
				return
			}

			for _, err := range c.Errors {
				logRequestError(l, c, start, fmt.Sprintf("%v", err.Type), err.Error(), nil)
				if err.Meta != nil {
					l.Error("request_error_meta", "request_id", requestID(c), "meta", fmt.Sprintf("%+v", err.Meta))
				}
			}
		}()

		c.Next()
	}
}

func logRequestError(l *log.Logger, c *gin.Context, start time.Time, errType string, message string, stack []byte) {
	keyvals := []any{
		"type", errType,
		"status", c.Writer.Status(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"query", c.Request.URL.RawQuery,
		"client_ip", c.ClientIP(),
		"request_id", requestID(c),
		"latency", time.Since(start),
		"error", message,
	}
	if stack != nil {
		keyvals = append(keyvals, "stack", string(stack))
	}
	l.Error("request_error", keyvals...)
}

func requestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-Id")
	}
	return requestID
}
