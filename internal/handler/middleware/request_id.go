package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader заголовок, в котором передаётся идентификатор запроса.
const RequestIDHeader = "X-Request-ID"

// ContextRequestIDKey ключ gin.Context с идентификатором запроса.
const ContextRequestIDKey = "request_id"

// RequestID берёт идентификатор из заголовка клиента или генерирует новый UUID
// и возвращает его в ответе.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(ContextRequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
