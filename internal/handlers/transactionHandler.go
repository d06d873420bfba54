package handlers

import (
	"errors"
	"net/http"
	"strings"

	"tipjar/internal/domain/dto"
	"tipjar/internal/domain/models"
	"tipjar/internal/repository"

	"github.com/gin-gonic/gin"
)

// UpdateTransaction
// @Summary Подтвердить транзакцию
// @Description Переводит транзакцию из pending в success или failed. С полем leg подтверждает только один из переводов (net или fee).
// @Description Повторное подтверждение ничего не меняет и возвращает текущую запись.
// @Tags transactions
// @Accept json
// @Produce json
// @Param reconcile body dto.ReconcileRequest true "Результат перевода"
// @Success 200 {object} dto.Response{data=models.TipTransaction}
// @Failure 400 {object} dto.ErrorResponse "Неверный запрос"
// @Failure 404 {object} dto.ErrorResponse "Транзакция не найдена"
// @Failure 500 {object} dto.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/transactions [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var input dto.ReconcileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	var (
		tx  models.TipTransaction
		err error
	)
	if strings.TrimSpace(input.Leg) != "" {
		tx, err = h.transactionService.ReconcileTransfer(c.Request.Context(), strings.TrimSpace(input.TransactionID),
			input.TransferLeg(), input.Outcome(), strings.TrimSpace(input.TransactionHash))
	} else {
		tx, err = h.transactionService.Reconcile(c.Request.Context(), strings.TrimSpace(input.TransactionID),
			input.Outcome(), strings.TrimSpace(input.TransactionHash))
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Data: tx})
}

// ListTransactions
// @Summary Найти транзакции
// @Description По transactionId или transactionHash возвращает ноль или одну запись, иначе список с фильтром по статусу.
// @Tags transactions
// @Produce json
// @Param transactionId query string false "ID транзакции"
// @Param transactionHash query string false "Хеш транзакции"
// @Param status query string false "pending, success или failed"
// @Param skip query int false "Пропустить" default(0)
// @Param take query int false "Взять (максимум 100)" default(10)
// @Success 200 {object} dto.Response{data=[]models.TipTransaction}
// @Failure 400 {object} dto.ErrorResponse "Неверный запрос"
// @Failure 500 {object} dto.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	ctx := c.Request.Context()

	lookup := func(tx models.TipTransaction, err error) {
		switch {
		case err == nil:
			c.JSON(http.StatusOK, dto.Response{Success: true, Data: []models.TipTransaction{tx}})
		case errors.Is(err, repository.ErrTransactionNotFound):
			c.JSON(http.StatusOK, dto.Response{Success: true, Data: []models.TipTransaction{}})
		default:
			respondError(c, h.log, err)
		}
	}

	if id := strings.TrimSpace(c.Query("transactionId")); id != "" {
		lookup(h.transactionService.GetByID(ctx, id))
		return
	}
	if hash := strings.TrimSpace(c.Query("transactionHash")); hash != "" {
		lookup(h.transactionService.GetByHash(ctx, hash))
		return
	}

	skip, take, err := pagination(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	items, err := h.transactionService.List(ctx, models.TransactionFilter{
		Status: models.TransactionStatus(strings.TrimSpace(c.Query("status"))),
		Skip:   skip,
		Take:   take,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Data: items})
}
