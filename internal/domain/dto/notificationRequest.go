package dto

import (
	"strings"

	"tipjar/internal/domain/models"
)

// swagger:model
type CreateNotificationRequest struct {
	UserID  string                 `json:"userId" example:"0x1234567890abcdef1234567890abcdef12345678"`
	Type    string                 `json:"type" example:"tip_received"`
	Title   string                 `json:"title" example:"Tip Received"`
	Message string                 `json:"message" example:"You received $10.00 from 0x1234...5678"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

func (r CreateNotificationRequest) ToModel() models.Notification {
	return models.Notification{
		UserID:  strings.TrimSpace(r.UserID),
		Type:    models.NotificationType(strings.TrimSpace(r.Type)),
		Title:   r.Title,
		Message: r.Message,
		Data:    r.Data,
	}
}

// swagger:model
type MarkReadRequest struct {
	Read *bool `json:"read" example:"true"`
}

// swagger:model
type MarkAllReadRequest struct {
	UserID string `json:"userId" example:"0x1234567890abcdef1234567890abcdef12345678"`
}
