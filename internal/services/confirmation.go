package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"tipjar/internal/domain/dto"
	"tipjar/internal/domain/models"
	"tipjar/internal/lib/logger/sl"
	"tipjar/internal/middlewares"
	"tipjar/internal/repository"
)

type Reconciler interface {
	Reconcile(ctx context.Context, transactionID string, outcome models.TransactionStatus, hash string) (models.TipTransaction, error)
	ReconcileTransfer(ctx context.Context, transactionID string, leg models.TransferLeg, outcome models.TransactionStatus,
		hash string) (models.TipTransaction, error)
}

// ConfirmationConsumer applies confirmations delivered by the broker. It decides between ack
// and requeue; everything else is the Reconciler's job.
type ConfirmationConsumer struct {
	log        *slog.Logger
	reconciler Reconciler
	timeout    time.Duration
}

func NewConfirmationConsumer(log *slog.Logger, reconciler Reconciler, timeout time.Duration) *ConfirmationConsumer {
	return &ConfirmationConsumer{
		log:        log,
		reconciler: reconciler,
		timeout:    timeout,
	}
}

// HandleMessage returns true when the delivery should be acked.
func (c *ConfirmationConsumer) HandleMessage(body []byte, redelivered bool) bool {
	const op = "services.ConfirmationConsumer.HandleMessage"

	log := c.log.With(slog.String("op", op))

	var event dto.ConfirmationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Error("malformed confirmation, dropping", sl.Err(err))
		return true
	}

	log = log.With(
		slog.String("transaction_id", event.TransactionID),
		slog.String("status", event.Status),
		slog.String("leg", event.Leg),
	)

	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var err error
	if event.Leg != "" {
		_, err = c.reconciler.ReconcileTransfer(ctx, event.TransactionID, event.TransferLeg(), event.Outcome(), event.TransactionHash)
	} else {
		_, err = c.reconciler.Reconcile(ctx, event.TransactionID, event.Outcome(), event.TransactionHash)
	}

	switch {
	case err == nil:
		log.Info("confirmation applied")
		return true
	case middlewares.IsValidationError(err):
		log.Error("invalid confirmation, dropping", sl.Err(err))
		return true
	case errors.Is(err, repository.ErrTransactionNotFound):
		// подтверждение могло обогнать создание, даем ему еще одну попытку
		if redelivered {
			log.Warn("confirmation for unknown transaction, dropping", sl.Err(err))
			return true
		}
		log.Warn("confirmation for unknown transaction, requeueing", sl.Err(err))
		return false
	default:
		log.Error("failed to apply confirmation, requeueing", sl.Err(err))
		return false
	}
}
