package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"filmorate/internal/handler/response"
	"filmorate/pkg/logger"
)

// Recovery перехватывает панику в обработчике и отвечает 500 в формате API.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("panic recovered", map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(ContextRequestIDKey),
			"panic":      fmt.Sprintf("%v", recovered),
		})

		response.Error(c, http.StatusInternalServerError, "internal server error")
	})
}
