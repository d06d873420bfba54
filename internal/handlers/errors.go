package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"tipjar/internal/domain/dto"
	"tipjar/internal/lib/logger/sl"
	"tipjar/internal/middlewares"
	"tipjar/internal/repository"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, log *slog.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case middlewares.IsValidationError(err):
		status, message = http.StatusBadRequest, publicMessage(err)
	case errors.Is(err, repository.ErrTransactionNotFound), errors.Is(err, repository.ErrNotificationNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		status, message = http.StatusNotFound, publicMessage(err)
	case errors.Is(err, repository.ErrDuplicateTransaction), errors.Is(err, repository.ErrDuplicateUser),
		errors.Is(err, repository.ErrUserAlreadyExists):
		status, message = http.StatusConflict, publicMessage(err)
	case errors.Is(err, repository.ErrStoreUnavailable):
		message = repository.ErrStoreUnavailable.Error()
	}

	if status == http.StatusInternalServerError {
		log.Error("request failed", sl.Err(err))
	}

	c.JSON(status, dto.ErrorResponse{Success: false, Error: message})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Error: message})
}

// publicMessage drops the "pkg.Type.Method: " prefixes added while the error travelled up.
func publicMessage(err error) string {
	msg := err.Error()
	for {
		idx := strings.Index(msg, ": ")
		if idx <= 0 {
			return msg
		}
		prefix := msg[:idx]
		if strings.ContainsAny(prefix, " ") || !strings.Contains(prefix, ".") {
			return msg
		}
		msg = msg[idx+2:]
	}
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, middlewares.ErrInvalidPagination
	}
	return v, nil
}

func pagination(c *gin.Context) (int, int, error) {
	skip, err := queryInt(c, "skip")
	if err != nil {
		return 0, 0, err
	}
	take, err := queryInt(c, "take")
	if err != nil {
		return 0, 0, err
	}
	return skip, take, nil
}
