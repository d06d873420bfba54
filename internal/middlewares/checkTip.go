package middlewares

import (
	"fmt"
	"strings"

	"tipjar/internal/domain/models"
)

const maxTake = 100

func CheckTipIntent(intent models.TipIntent) error {
	var missing []string
	if strings.TrimSpace(intent.SenderAddress) == "" {
		missing = append(missing, "senderAddress")
	}
	if strings.TrimSpace(intent.ReceiverAddress) == "" {
		missing = append(missing, "receiverAddress")
	}
	if strings.TrimSpace(intent.AmountUSDC) == "" {
		missing = append(missing, "amountUSDC")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrEmptyField, strings.Join(missing, ", "))
	}

	if !intent.AmountUSD.IsPositive() {
		return ErrInvalidAmount
	}

	if intent.Status != "" && !intent.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, intent.Status)
	}

	return nil
}

func CheckReconcile(transactionID string, outcome models.TransactionStatus) error {
	if strings.TrimSpace(transactionID) == "" || outcome == "" {
		return fmt.Errorf("%w: transactionId, status", ErrEmptyField)
	}

	if !outcome.Terminal() {
		return fmt.Errorf("%w: %q, expected success or failed", ErrInvalidStatus, outcome)
	}

	return nil
}

func CheckTransferLeg(leg models.TransferLeg) error {
	if !leg.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidTransferLeg, leg)
	}

	return nil
}

// CheckPagination validates skip/take and applies the defaults (take=10, capped at 100).
func CheckPagination(skip, take int) (int, int, error) {
	if skip < 0 || take < 0 {
		return 0, 0, ErrInvalidPagination
	}

	if take == 0 {
		take = 10
	}
	if take > maxTake {
		take = maxTake
	}

	return skip, take, nil
}

func CheckNotification(n models.Notification) error {
	var missing []string
	if strings.TrimSpace(n.UserID) == "" {
		missing = append(missing, "userId")
	}
	if n.Type == "" {
		missing = append(missing, "type")
	}
	if strings.TrimSpace(n.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(n.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrEmptyField, strings.Join(missing, ", "))
	}

	if !n.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidNotificationType, n.Type)
	}

	return nil
}
