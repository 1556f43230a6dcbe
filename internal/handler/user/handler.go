package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "filmorate/internal/domain/user"
	"filmorate/internal/handler/binding"
	"filmorate/internal/handler/response"
	useruc "filmorate/internal/usecase/user"
	"filmorate/pkg/logger"
)

// Handler обрабатывает HTTP-запросы к пользователям и их друзьям.
type Handler struct {
	users useruc.Service
	log   logger.Logger
}

// NewHandler создаёт новый UserHandler.
func NewHandler(users useruc.Service, log logger.Logger) *Handler {
	return &Handler{users: users, log: log}
}

// Register подключает маршруты пользователей к группе.
func (h *Handler) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.POST("", h.Create)
	users.PUT("", h.Update)
	users.GET("", h.List)
	users.GET("/:id", h.Get)
	users.GET("/:id/friends", h.Friends)
	users.PUT("/:id/friends/:friendId", h.AddFriend)
	users.DELETE("/:id/friends/:friendId", h.RemoveFriend)
	users.GET("/:id/friends/common/:otherId", h.CommonFriends)
}

// Create godoc
// @Summary     Создать пользователя
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       user body     UserRequest true "Пользователь"
// @Success     200  {object} UserResponse
// @Failure     400  {object} response.ErrorBody
// @Router      /users [post]
func (h *Handler) Create(c *gin.Context) {
	u, ok := h.bind(c)
	if !ok {
		return
	}

	created, err := h.users.Create(c.Request.Context(), u)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(created))
}

// Update godoc
// @Summary     Обновить пользователя
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       user body     UserRequest true "Пользователь с id"
// @Success     200  {object} UserResponse
// @Failure     400  {object} response.ErrorBody
// @Failure     404  {object} response.ErrorBody
// @Router      /users [put]
func (h *Handler) Update(c *gin.Context) {
	u, ok := h.bind(c)
	if !ok {
		return
	}

	updated, err := h.users.Update(c.Request.Context(), u)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(updated))
}

// Get godoc
// @Summary     Получить пользователя
// @Tags        users
// @Produce     json
// @Param       id  path     int true "ID пользователя"
// @Success     200 {object} UserResponse
// @Failure     404 {object} response.ErrorBody
// @Router      /users/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.param(c, "id")
	if !ok {
		return
	}

	u, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(u))
}

// List godoc
// @Summary     Список пользователей
// @Tags        users
// @Produce     json
// @Success     200 {array} UserResponse
// @Router      /users [get]
func (h *Handler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponses(users))
}

// Friends godoc
// @Summary     Друзья пользователя
// @Tags        users
// @Produce     json
// @Param       id  path    int true "ID пользователя"
// @Success     200 {array} UserResponse
// @Failure     404 {object} response.ErrorBody
// @Router      /users/{id}/friends [get]
func (h *Handler) Friends(c *gin.Context) {
	id, ok := h.param(c, "id")
	if !ok {
		return
	}

	friends, err := h.users.Friends(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponses(friends))
}

// AddFriend godoc
// @Summary     Добавить в друзья
// @Tags        users
// @Param       id       path int true "ID пользователя"
// @Param       friendId path int true "ID друга"
// @Success     200
// @Failure     400 {object} response.ErrorBody
// @Failure     404 {object} response.ErrorBody
// @Router      /users/{id}/friends/{friendId} [put]
func (h *Handler) AddFriend(c *gin.Context) {
	id, friendID, ok := h.pair(c, "friendId")
	if !ok {
		return
	}

	if err := h.users.AddFriend(c.Request.Context(), id, friendID); err != nil {
		response.FromError(c, h.log, err)
		return
	}

	c.Status(http.StatusOK)
}

// RemoveFriend godoc
// @Summary     Удалить из друзей
// @Tags        users
// @Param       id       path int true "ID пользователя"
// @Param       friendId path int true "ID друга"
// @Success     200
// @Failure     404 {object} response.ErrorBody
// @Router      /users/{id}/friends/{friendId} [delete]
func (h *Handler) RemoveFriend(c *gin.Context) {
	id, friendID, ok := h.pair(c, "friendId")
	if !ok {
		return
	}

	if err := h.users.RemoveFriend(c.Request.Context(), id, friendID); err != nil {
		response.FromError(c, h.log, err)
		return
	}

	c.Status(http.StatusOK)
}

// CommonFriends godoc
// @Summary     Общие друзья
// @Tags        users
// @Produce     json
// @Param       id      path    int true "ID пользователя"
// @Param       otherId path    int true "ID другого пользователя"
// @Success     200     {array} UserResponse
// @Failure     404     {object} response.ErrorBody
// @Router      /users/{id}/friends/common/{otherId} [get]
func (h *Handler) CommonFriends(c *gin.Context) {
	id, otherID, ok := h.pair(c, "otherId")
	if !ok {
		return
	}

	common, err := h.users.MutualFriends(c.Request.Context(), id, otherID)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponses(common))
}

func (h *Handler) bind(c *gin.Context) (*domain.User, bool) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("user request rejected", map[string]any{"error": err.Error()})
		response.Error(c, http.StatusBadRequest, binding.Message(err))
		return nil, false
	}

	u, err := req.toDomain()
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return u, true
}

func (h *Handler) param(c *gin.Context, name string) (int64, bool) {
	id, err := binding.ParamID(c, name)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

func (h *Handler) pair(c *gin.Context, other string) (int64, int64, bool) {
	id, ok := h.param(c, "id")
	if !ok {
		return 0, 0, false
	}
	otherID, ok := h.param(c, other)
	if !ok {
		return 0, 0, false
	}
	return id, otherID, true
}
