package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/devboard-backend/internal/logging"
)

const HeaderRequestID = "X-Request-Id"

// RequestIDMiddleware is the single logging boundary for HTTP requests.
// - Reads X-Request-Id header if present, otherwise generates one
// - Stores it in the Gin context and the request context
// - Attaches a request-scoped logger to the request context
// - Echoes it back in response header X-Request-Id
// - Logs method, path, status, latency and handler errors once the request is done
func RequestIDMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if rid == "" {
			rid = uuid.NewString()
		}

		reqLogger := logger.With("request_id", rid)

		c.Set("request_id", rid)
		ctx := logging.WithRequestID(c.Request.Context(), rid)
		ctx = logging.WithContext(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Writer.Header().Set(HeaderRequestID, rid)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			reqLogger.Error("request", attrs...)
		case status >= http.StatusBadRequest:
			reqLogger.Warn("request", attrs...)
		default:
			reqLogger.Info("request", attrs...)
		}
	}
}

// GetRequestID returns the request id stored by RequestIDMiddleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString("request_id")
}
