package repository

import "errors"

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrDuplicateTransaction = errors.New("transaction already exists")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateUser        = errors.New("user already exists")
	ErrUserAlreadyExists    = errors.New("user with this wallet address already exists")
	// ErrStoreUnavailable wraps timeouts and connection failures. Callers may retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)
