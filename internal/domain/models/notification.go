package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTipSent            NotificationType = "tip_sent"
	NotificationTipReceived        NotificationType = "tip_received"
	NotificationTransactionSuccess NotificationType = "transaction_success"
	NotificationTransactionFailed  NotificationType = "transaction_failed"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTipSent, NotificationTipReceived, NotificationTransactionSuccess, NotificationTransactionFailed:
		return true
	}
	return false
}

type Notification struct {
	ID        uuid.UUID              `json:"id" db:"id"`
	UserID    string                 `json:"userId" db:"user_id"`
	Type      NotificationType       `json:"type" db:"type"`
	Title     string                 `json:"title" db:"title"`
	Message   string                 `json:"message" db:"message"`
	Data      map[string]interface{} `json:"data,omitempty" db:"data"`
	Read      bool                   `json:"read" db:"read"`
	Timestamp time.Time              `json:"timestamp" db:"created_at"`
	// DedupeKey makes inserts idempotent; empty means no deduplication.
	DedupeKey string `json:"-" db:"dedupe_key"`
}
