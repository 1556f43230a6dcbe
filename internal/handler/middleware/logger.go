package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"filmorate/pkg/logger"
)

// LoggerStructured логирует каждый запрос одной структурированной записью.
// Уровень зависит от статуса ответа: 5xx ERROR, 4xx WARN, остальное INFO.
func LoggerStructured(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		status := c.Writer.Status()
		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(ContextRequestIDKey),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields["errors"] = errs
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("http request", fields)
		case status >= http.StatusBadRequest:
			log.Warn("http request", fields)
		default:
			log.Info("http request", fields)
		}
	}
}
