package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"tipjar/internal/domain/dto"
	"tipjar/internal/domain/models"

	"github.com/gin-gonic/gin"
)

type UserService interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	Get(ctx context.Context, userID string, include models.TipsInclude) (models.UserProfile, error)
	List(ctx context.Context, wallet string, skip, take int) ([]models.User, error)
	Update(ctx context.Context, userID string, upd models.UserUpdate) (models.User, error)
	Delete(ctx context.Context, userID string) error
}

type UserHandler struct {
	log         *slog.Logger
	userService UserService
}

func NewUserHandler(log *slog.Logger, userService UserService) *UserHandler {
	return &UserHandler{
		log:         log,
		userService: userService,
	}
}

// CreateUser
// @Summary Зарегистрировать пользователя
// @Description Адрес кошелька обязателен и уникален. Без userId генерируется UUID.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "Пользователь"
// @Success 201 {object} dto.Response{data=models.User} "Пользователь создан"
// @Failure 400 {object} dto.ErrorResponse "Неверный запрос"
// @Failure 409 {object} dto.ErrorResponse "Кошелек уже зарегистрирован"
// @Failure 500 {object} dto.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var input dto.CreateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(input.BaseWalletAddress) == "" {
		respondBadRequest(c, "Wallet address is required")
		return
	}

	u, err := h.userService.Create(c.Request.Context(), input.ToModel())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Response{Success: true, Data: u})
}

// ListUsers
// @Summary Список пользователей
// @Description С walletAddress возвращает найденного пользователя или пустой список.
// @Tags users
// @Produce json
// @Param walletAddress query string false "Адрес кошелька"
// @Param skip query int false "Пропустить" default(0)
// @Param take query int false "Взять (максимум 100)" default(10)
// @Success 200 {object} dto.Response{data=[]models.User}
// @Failure 400 {object} dto.ErrorResponse "Неверный запрос"
// @Failure 500 {object} dto.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	skip, take, err := pagination(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	items, err := h.userService.List(c.Request.Context(), c.Query("walletAddress"), skip, take)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Data: items})
}

// GetUser
// @Summary Пользователь
// @Description includeTips=sent|received|all добавляет чаевые пользователя, новые первыми.
// @Tags users
// @Produce json
// @Param id path string true "ID пользователя"
// @Param includeTips query string false "sent, received или all"
// @Success 200 {object} dto.Response{data=models.UserProfile}
// @Failure 404 {object} dto.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} dto.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	include := models.TipsInclude(strings.TrimSpace(c.Query("includeTips")))

	profile, err := h.userService.Get(c.Request.Context(), c.Param("id"), include)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Data: profile})
}

// UpdateUser
// @Summary Обновить пользователя
// @Description Меняет только переданные поля.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "ID пользователя"
// @Param user body dto.UpdateUserRequest true "Изменения"
// @Success 200 {object} dto.Response{data=models.User}
// @Failure 400 {object} dto.ErrorResponse "Неверный запрос"
// @Failure 404 {object} dto.ErrorResponse "Пользователь не найден"
// @Failure 409 {object} dto.ErrorResponse "Кошелек уже зарегистрирован"
// @Failure 500 {object} dto.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var input dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	u, err := h.userService.Update(c.Request.Context(), c.Param("id"), input.ToUpdate())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Data: u})
}

// DeleteUser
// @Summary Удалить пользователя
// @Tags users
// @Produce json
// @Param id path string true "ID пользователя"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} dto.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "User deleted successfully"})
}
