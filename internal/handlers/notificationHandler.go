package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"tipjar/internal/domain/dto"
	"tipjar/internal/domain/models"

	"github.com/gin-gonic/gin"
)

type NotificationService interface {
	List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error)
	Create(ctx context.Context, n models.Notification) (models.Notification, error)
	MarkRead(ctx context.Context, id string, read bool) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type NotificationHandler struct {
	log                 *slog.Logger
	notificationService NotificationService
}

func NewNotificationHandler(log *slog.Logger, notificationService NotificationService) *NotificationHandler {
	return &NotificationHandler{
		log:                 log,
		notificationService: notificationService,
	}
}

// ListNotifications
// @Summary Уведомления пользователя
// @Description Новые первыми. unreadOnly=true оставляет только непрочитанные.
// @Tags notifications
// @Produce json
// @Param userId query string true "ID пользователя"
// @Param unreadOnly query bool false "Только непрочитанные"
// @Success 200 {object} dto.Response{data=[]models.Notification}
// @Failure 400 {object} dto.ErrorResponse "Неверный запрос"
// @Failure 500 {object} dto.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		respondBadRequest(c, "User ID is required")
		return
	}
	unreadOnly := c.Query("unreadOnly") == "true"

	items, err := h.notificationService.List(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Data: items})
}

// CreateNotification
// @Summary Создать уведомление
// @Tags notifications
// @Accept json
// @Produce json
// @Param notification body dto.CreateNotificationRequest true "Уведомление"
// @Success 201 {object} dto.Response{data=models.Notification}
// @Failure 400 {object} dto.ErrorResponse "Неверный запрос"
// @Failure 500 {object} dto.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/notifications [post]
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var input dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	n, err := h.notificationService.Create(c.Request.Context(), input.ToModel())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Response{Success: true, Data: n})
}

// MarkRead
// @Summary Отметить уведомление
// @Tags notifications
// @Accept json
// @Produce json
// @Param id path string true "ID уведомления"
// @Param read body dto.MarkReadRequest true "Статус прочтения"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse "Неверный запрос"
// @Failure 404 {object} dto.ErrorResponse "Уведомление не найдено"
// @Failure 500 {object} dto.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/notifications/{id} [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var input dto.MarkReadRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if input.Read == nil {
		respondBadRequest(c, "Read status is required")
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), c.Param("id"), *input.Read); err != nil {
		respondError(c, h.log, err)
		return
	}

	message := "Notification marked as read"
	if !*input.Read {
		message = "Notification marked as unread"
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Message: message})
}

// MarkAllRead
// @Summary Отметить все уведомления прочитанными
// @Tags notifications
// @Accept json
// @Produce json
// @Param user body dto.MarkAllReadRequest true "Пользователь"
// @Success 200 {object} dto.MarkAllReadResponse
// @Failure 400 {object} dto.ErrorResponse "Неверный запрос"
// @Failure 500 {object} dto.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/notifications/mark-all-read [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	var input dto.MarkAllReadRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(input.UserID) == "" {
		respondBadRequest(c, "User ID is required")
		return
	}

	count, err := h.notificationService.MarkAllRead(c.Request.Context(), strings.TrimSpace(input.UserID))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MarkAllReadResponse{
		Success: true,
		Message: fmt.Sprintf("%d notifications marked as read", count),
		Count:   count,
	})
}
