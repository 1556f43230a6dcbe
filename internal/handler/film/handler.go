package film

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "filmorate/internal/domain/film"
	"filmorate/internal/handler/binding"
	"filmorate/internal/handler/response"
	filmuc "filmorate/internal/usecase/film"
	"filmorate/internal/usecase/validation"
	"filmorate/pkg/logger"
)

// Handler обрабатывает HTTP-запросы к фильмам.
type Handler struct {
	films filmuc.Service
	log   logger.Logger
}

// NewHandler создаёт новый FilmHandler.
func NewHandler(films filmuc.Service, log logger.Logger) *Handler {
	return &Handler{films: films, log: log}
}

// Register подключает маршруты фильмов к группе.
func (h *Handler) Register(rg *gin.RouterGroup) {
	films := rg.Group("/films")
	films.POST("", h.Create)
	films.PUT("", h.Update)
	films.GET("", h.List)
	films.GET("/popular", h.Popular)
	films.GET("/:id", h.Get)
	films.PUT("/:id/like/:userId", h.Like)
	films.DELETE("/:id/like/:userId", h.Unlike)
}

// Create godoc
// @Summary     Создать фильм
// @Tags        films
// @Accept      json
// @Produce     json
// @Param       film body     FilmRequest true "Фильм"
// @Success     200  {object} FilmResponse
// @Failure     400  {object} response.ErrorBody
// @Failure     404  {object} response.ErrorBody
// @Router      /films [post]
func (h *Handler) Create(c *gin.Context) {
	f, ok := h.bind(c)
	if !ok {
		return
	}

	created, err := h.films.Create(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toFilmResponse(created))
}

// Update godoc
// @Summary     Обновить фильм
// @Tags        films
// @Accept      json
// @Produce     json
// @Param       film body     FilmRequest true "Фильм с id"
// @Success     200  {object} FilmResponse
// @Failure     400  {object} response.ErrorBody
// @Failure     404  {object} response.ErrorBody
// @Router      /films [put]
func (h *Handler) Update(c *gin.Context) {
	f, ok := h.bind(c)
	if !ok {
		return
	}

	updated, err := h.films.Update(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toFilmResponse(updated))
}

// Get godoc
// @Summary     Получить фильм
// @Tags        films
// @Produce     json
// @Param       id  path     int true "ID фильма"
// @Success     200 {object} FilmResponse
// @Failure     404 {object} response.ErrorBody
// @Router      /films/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := binding.ParamID(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	f, err := h.films.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toFilmResponse(f))
}

// List godoc
// @Summary     Список фильмов
// @Tags        films
// @Produce     json
// @Success     200 {array} FilmResponse
// @Router      /films [get]
func (h *Handler) List(c *gin.Context) {
	films, err := h.films.List(c.Request.Context())
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toFilmResponses(films))
}

// Like godoc
// @Summary     Поставить лайк
// @Tags        films
// @Param       id     path int true "ID фильма"
// @Param       userId path int true "ID пользователя"
// @Success     200
// @Failure     404 {object} response.ErrorBody
// @Router      /films/{id}/like/{userId} [put]
func (h *Handler) Like(c *gin.Context) {
	filmID, userID, ok := h.likeParams(c)
	if !ok {
		return
	}

	if err := h.films.Like(c.Request.Context(), filmID, userID); err != nil {
		response.FromError(c, h.log, err)
		return
	}

	c.Status(http.StatusOK)
}

// Unlike godoc
// @Summary     Снять лайк
// @Tags        films
// @Param       id     path int true "ID фильма"
// @Param       userId path int true "ID пользователя"
// @Success     200
// @Failure     404 {object} response.ErrorBody
// @Router      /films/{id}/like/{userId} [delete]
func (h *Handler) Unlike(c *gin.Context) {
	filmID, userID, ok := h.likeParams(c)
	if !ok {
		return
	}

	if err := h.films.Unlike(c.Request.Context(), filmID, userID); err != nil {
		response.FromError(c, h.log, err)
		return
	}

	c.Status(http.StatusOK)
}

// Popular godoc
// @Summary     Самые популярные фильмы
// @Tags        films
// @Produce     json
// @Param       count query    int false "Размер рейтинга" default(10)
// @Success     200   {array}  FilmResponse
// @Failure     400   {object} response.ErrorBody
// @Router      /films/popular [get]
func (h *Handler) Popular(c *gin.Context) {
	count := filmuc.DefaultPopularCount
	if raw, ok := c.GetQuery("count"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, validation.MsgCountNotPositive)
			return
		}
		count = n
	}

	films, err := h.films.MostPopular(c.Request.Context(), count)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toFilmResponses(films))
}

func (h *Handler) bind(c *gin.Context) (*domain.Film, bool) {
	var req FilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("film request rejected", map[string]any{"error": err.Error()})
		response.Error(c, http.StatusBadRequest, binding.Message(err))
		return nil, false
	}

	f, err := req.toDomain()
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return f, true
}

func (h *Handler) likeParams(c *gin.Context) (int64, int64, bool) {
	filmID, err := binding.ParamID(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	userID, err := binding.ParamID(c, "userId")
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	return filmID, userID, true
}
