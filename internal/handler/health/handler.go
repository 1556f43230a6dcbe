package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger проверяет доступность хранилища. Реализуется *database.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает health check запросы
type Handler struct {
	db      Pinger
	backend string
	appEnv  string
}

// NewHandler создает новый экземпляр health handler.
// db равен nil, если приложение работает с хранилищем в памяти.
func NewHandler(db Pinger, backend, appEnv string) *Handler {
	return &Handler{
		db:      db,
		backend: backend,
		appEnv:  appEnv,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
	Message string `json:"message,omitempty"`
}

// Health проверяет работоспособность сервера
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Message: "Сервер работает",
	})
}

// HealthDB проверяет доступность хранилища. Хранилище в памяти доступно всегда.
func (h *Handler) HealthDB(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, HealthResponse{
			Status:  "ok",
			Backend: h.backend,
			Message: "Хранилище в памяти",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		errorMessage := "База данных недоступна"
		if h.appEnv != "production" {
			errorMessage = "База данных недоступна: " + err.Error()
		}

		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:  "error",
			Backend: h.backend,
			Message: errorMessage,
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Backend: h.backend,
		Message: "База данных доступна",
	})
}
