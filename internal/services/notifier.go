package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tipjar/internal/domain/models"
	"tipjar/internal/lib/logger/sl"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	InsertNotification(ctx context.Context, n models.Notification) (bool, error)
	ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error)
	SetNotificationRead(ctx context.Context, id uuid.UUID, read bool) error
	MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error)
}

// Notifier turns lifecycle events into user notifications. Delivery is best effort: failures
// are logged and never reach the caller.
type Notifier struct {
	log     *slog.Logger
	repo    NotificationRepository
	timeout time.Duration
	now     func() time.Time
}

func NewNotifier(log *slog.Logger, repo NotificationRepository, timeout time.Duration) *Notifier {
	return &Notifier{
		log:     log,
		repo:    repo,
		timeout: timeout,
		now:     time.Now,
	}
}

func (n *Notifier) OnCreated(ctx context.Context, tx models.TipTransaction) {
	amount := tx.AmountUSD.StringFixed(2)

	if tx.SenderUserID != nil {
		n.deliver(ctx, tx, models.Notification{
			UserID:  *tx.SenderUserID,
			Type:    models.NotificationTipSent,
			Title:   "Tip Sent",
			Message: fmt.Sprintf("You sent $%s to %s", amount, shortAddress(tx.ReceiverAddress)),
			Data: map[string]interface{}{
				"transactionId":   tx.TransactionID,
				"amount":          amount,
				"receiverAddress": tx.ReceiverAddress,
			},
		})
	}

	if tx.ReceiverUserID != nil {
		n.deliver(ctx, tx, models.Notification{
			UserID:  *tx.ReceiverUserID,
			Type:    models.NotificationTipReceived,
			Title:   "Tip Received",
			Message: fmt.Sprintf("You received $%s from %s", amount, shortAddress(tx.SenderAddress)),
			Data: map[string]interface{}{
				"transactionId": tx.TransactionID,
				"amount":        amount,
				"senderAddress": tx.SenderAddress,
			},
		})
	}
}

func (n *Notifier) OnFinalized(ctx context.Context, tx models.TipTransaction) {
	if tx.SenderUserID == nil {
		return
	}

	notification := models.Notification{
		UserID: *tx.SenderUserID,
		Data: map[string]interface{}{
			"transactionId": tx.TransactionID,
			"status":        string(tx.Status),
		},
	}

	switch tx.Status {
	case models.StatusSuccess:
		notification.Type = models.NotificationTransactionSuccess
		notification.Title = "Transaction Successful"
		notification.Message = "Transaction completed successfully"
	case models.StatusFailed:
		notification.Type = models.NotificationTransactionFailed
		notification.Title = "Transaction Failed"
		notification.Message = "Transaction failed"
	default:
		return
	}

	n.deliver(ctx, tx, notification)
}

func (n *Notifier) deliver(ctx context.Context, tx models.TipTransaction, notification models.Notification) {
	const op = "services.Notifier.deliver"

	log := n.log.With(
		slog.String("op", op),
		slog.String("transaction_id", tx.TransactionID),
		slog.String("type", string(notification.Type)),
		slog.String("user_id", notification.UserID),
	)

	id, err := uuid.NewV7()
	if err != nil {
		log.Error("failed to generate notification id", sl.Err(err))
		return
	}
	notification.ID = id
	notification.Timestamp = n.now().UTC().Truncate(time.Microsecond)
	notification.DedupeKey = fmt.Sprintf("%s:%s:%s", tx.TransactionID, notification.Type, notification.UserID)

	// уведомление не должно пропасть из-за отмены запроса
	deliverCtx := context.WithoutCancel(ctx)
	if n.timeout > 0 {
		var cancel context.CancelFunc
		deliverCtx, cancel = context.WithTimeout(deliverCtx, n.timeout)
		defer cancel()
	}

	inserted, err := n.repo.InsertNotification(deliverCtx, notification)
	if err != nil {
		log.Error("failed to deliver notification", sl.Err(err))
		return
	}
	if !inserted {
		log.Debug("notification already delivered")
		return
	}

	log.Info("notification delivered", slog.String("notification_id", id.String()))
}

func shortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
