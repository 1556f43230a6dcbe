package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filmorate/internal/handler/binding"
	"filmorate/internal/handler/response"
	cataloguc "filmorate/internal/usecase/catalog"
	"filmorate/pkg/logger"
)

// Item элемент справочника в ответе API.
type Item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Handler отдаёт справочники жанров и рейтингов MPA.
type Handler struct {
	catalog cataloguc.Service
	log     logger.Logger
}

// NewHandler создаёт новый CatalogHandler.
func NewHandler(catalog cataloguc.Service, log logger.Logger) *Handler {
	return &Handler{catalog: catalog, log: log}
}

// Register подключает маршруты /genres и /mpa.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/genres", h.ListGenres)
	rg.GET("/genres/:id", h.GetGenre)
	rg.GET("/mpa", h.ListMpa)
	rg.GET("/mpa/:id", h.GetMpa)
}

// ListGenres godoc
// @Summary     Справочник жанров
// @Tags        catalog
// @Produce     json
// @Success     200 {array} Item
// @Router      /genres [get]
func (h *Handler) ListGenres(c *gin.Context) {
	genres, err := h.catalog.ListGenres(c.Request.Context())
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}

	items := make([]Item, 0, len(genres))
	for _, g := range genres {
		items = append(items, Item{ID: g.ID, Name: g.Name})
	}
	c.JSON(http.StatusOK, items)
}

// GetGenre godoc
// @Summary     Жанр по id
// @Tags        catalog
// @Produce     json
// @Param       id  path     int true "ID жанра"
// @Success     200 {object} Item
// @Failure     404 {object} response.ErrorBody
// @Router      /genres/{id} [get]
func (h *Handler) GetGenre(c *gin.Context) {
	id, err := binding.ParamID(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	g, err := h.catalog.GenreByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, Item{ID: g.ID, Name: g.Name})
}

// ListMpa godoc
// @Summary     Справочник рейтингов MPA
// @Tags        catalog
// @Produce     json
// @Success     200 {array} Item
// @Router      /mpa [get]
func (h *Handler) ListMpa(c *gin.Context) {
	mpa, err := h.catalog.ListMpa(c.Request.Context())
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}

	items := make([]Item, 0, len(mpa))
	for _, m := range mpa {
		items = append(items, Item{ID: m.ID, Name: m.Name})
	}
	c.JSON(http.StatusOK, items)
}

// GetMpa godoc
// @Summary     Рейтинг MPA по id
// @Tags        catalog
// @Produce     json
// @Param       id  path     int true "ID рейтинга"
// @Success     200 {object} Item
// @Failure     404 {object} response.ErrorBody
// @Router      /mpa/{id} [get]
func (h *Handler) GetMpa(c *gin.Context) {
	id, err := binding.ParamID(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.catalog.MpaByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, Item{ID: m.ID, Name: m.Name})
}
