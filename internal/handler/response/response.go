package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	repo "filmorate/internal/repository/interfaces"
	"filmorate/internal/usecase/validation"
	"filmorate/pkg/logger"
)

// ErrorBody описывает стандартный формат ошибки API.
type ErrorBody struct {
	Error string `json:"error"`
}

// Error отправляет JSON-ответ с ошибкой в едином формате и прерывает цепочку обработчиков.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: message})
}

// FromError переводит ошибку usecase-слоя в HTTP-ответ:
// NotFound -> 404, Validation -> 400, всё остальное -> 500.
// Внутренние ошибки логируются, клиент получает обезличенное сообщение.
func FromError(c *gin.Context, log logger.Logger, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, validation.ErrValidation):
		Error(c, http.StatusBadRequest, err.Error())
	default:
		log.Error("internal error", map[string]any{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"error":  err.Error(),
		})
		Error(c, http.StatusInternalServerError, "internal server error")
	}
}
