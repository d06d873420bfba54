package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"tipjar/internal/domain/dto"
	"tipjar/internal/domain/models"
	"tipjar/internal/lib/logger/sl"
	"tipjar/internal/repository"

	"github.com/gin-gonic/gin"
)

type TransactionService interface {
	Create(ctx context.Context, intent models.TipIntent) (models.TipTransaction, error)
	Reconcile(ctx context.Context, transactionID string, outcome models.TransactionStatus, hash string) (models.TipTransaction, error)
	ReconcileTransfer(ctx context.Context, transactionID string, leg models.TransferLeg, outcome models.TransactionStatus,
		hash string) (models.TipTransaction, error)
	GetByID(ctx context.Context, transactionID string) (models.TipTransaction, error)
	GetByHash(ctx context.Context, hash string) (models.TipTransaction, error)
	List(ctx context.Context, filter models.TransactionFilter) ([]models.TipTransaction, error)
}

// UserDirectory maps a wallet to its registered user.
type UserDirectory interface {
	GetByWallet(ctx context.Context, wallet string) (models.User, error)
}

type TransactionHandler struct {
	log                *slog.Logger
	transactionService TransactionService
	users              UserDirectory
}

// NewTransactionHandler builds the tip handler. users may be nil: tips without explicit user ids
// are then attributed to the wallet addresses.
func NewTransactionHandler(log *slog.Logger, transactionService TransactionService, users UserDirectory) *TransactionHandler {
	return &TransactionHandler{
		log:                log,
		transactionService: transactionService,
		users:              users,
	}
}

// CreateTip
// @Summary Создать чаевые
// @Description Считает комиссию, сохраняет транзакцию в статусе pending и уведомляет отправителя и получателя.
// @Tags tip
// @Accept json
// @Produce json
// @Param tip body dto.CreateTipRequest true "Данные чаевых"
// @Success 201 {object} dto.Response{data=models.TipTransaction} "Транзакция создана"
// @Failure 400 {object} dto.ErrorResponse "Неверный запрос"
// @Failure 409 {object} dto.ErrorResponse "Транзакция уже существует"
// @Failure 429 {object} dto.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} dto.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/tip [post]
func (h *TransactionHandler) CreateTip(c *gin.Context) {
	var input dto.CreateTipRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	input.SenderUserID = h.registeredUserID(ctx, input.SenderUserID, input.SenderAddress)
	input.ReceiverUserID = h.registeredUserID(ctx, input.ReceiverUserID, input.ReceiverAddress)

	tx, err := h.transactionService.Create(ctx, input.ToIntent())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Response{Success: true, Data: tx})
}

// ListTips
// @Summary Список чаевых
// @Description Фильтр по отправителю, получателю или статусу; сортировка по времени, новые первыми.
// @Tags tip
// @Produce json
// @Param senderAddress query string false "Адрес отправителя"
// @Param receiverAddress query string false "Адрес получателя"
// @Param status query string false "pending, success или failed"
// @Param skip query int false "Пропустить" default(0)
// @Param take query int false "Взять (максимум 100)" default(10)
// @Success 200 {object} dto.Response{data=[]models.TipTransaction}
// @Failure 400 {object} dto.ErrorResponse "Неверный запрос"
// @Failure 500 {object} dto.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/tip [get]
func (h *TransactionHandler) ListTips(c *gin.Context) {
	skip, take, err := pagination(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	items, err := h.transactionService.List(c.Request.Context(), models.TransactionFilter{
		SenderAddress:   strings.TrimSpace(c.Query("senderAddress")),
		ReceiverAddress: strings.TrimSpace(c.Query("receiverAddress")),
		Status:          models.TransactionStatus(strings.TrimSpace(c.Query("status"))),
		Skip:            skip,
		Take:            take,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Data: items})
}

// registeredUserID fills a missing user id from the user registered for the wallet.
// Lookup failures leave it empty, so the id falls back to the address.
func (h *TransactionHandler) registeredUserID(ctx context.Context, userID *string, wallet string) *string {
	if h.users == nil || (userID != nil && strings.TrimSpace(*userID) != "") {
		return userID
	}
	wallet = strings.TrimSpace(wallet)
	if wallet == "" {
		return userID
	}

	u, err := h.users.GetByWallet(ctx, wallet)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			h.log.Warn("user lookup by wallet failed", slog.String("wallet", wallet), sl.Err(err))
		}
		return userID
	}

	return &u.UserID
}
