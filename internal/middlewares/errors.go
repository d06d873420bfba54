package middlewares

import (
	"errors"

	"tipjar/internal/lib/fee"
)

var (
	ErrEmptyField              = errors.New("required fields are missing")
	ErrInvalidAmount           = errors.New("amountUSD must be greater than zero")
	ErrInvalidStatus           = errors.New("status is invalid")
	ErrInvalidTransferLeg      = errors.New("leg must be one of net, fee")
	ErrInvalidPagination       = errors.New("skip and take must be non-negative integers")
	ErrInvalidNotificationType = errors.New("notification type is invalid")
	ErrInvalidNotificationID   = errors.New("notification id is invalid")
	ErrRateLimited             = errors.New("too many requests")
)

// IsValidationError reports whether err was caused by bad input.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrEmptyField,
		ErrInvalidAmount,
		ErrInvalidStatus,
		ErrInvalidTransferLeg,
		ErrInvalidPagination,
		ErrInvalidNotificationType,
		ErrInvalidNotificationID,
		fee.ErrInvalidAmount,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
