package dto

import (
	"strings"

	"tipjar/internal/domain/models"
)

// swagger:model
type CreateUserRequest struct {
	UserID            string  `json:"userId,omitempty" example:"3b241101-e2bb-4255-8caf-4136c566a962"`
	FarcasterID       *string `json:"farcasterId,omitempty" example:"1234"`
	BaseWalletAddress string  `json:"baseWalletAddress" example:"0x1234567890abcdef1234567890abcdef12345678"`
}

func (r CreateUserRequest) ToModel() models.User {
	return models.User{
		UserID:            strings.TrimSpace(r.UserID),
		FarcasterID:       r.FarcasterID,
		BaseWalletAddress: strings.TrimSpace(r.BaseWalletAddress),
	}
}

// swagger:model
type UpdateUserRequest struct {
	FarcasterID       *string `json:"farcasterId,omitempty" example:"1234"`
	BaseWalletAddress *string `json:"baseWalletAddress,omitempty" example:"0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"`
}

func (r UpdateUserRequest) ToUpdate() models.UserUpdate {
	return models.UserUpdate{
		FarcasterID:       r.FarcasterID,
		BaseWalletAddress: r.BaseWalletAddress,
	}
}
