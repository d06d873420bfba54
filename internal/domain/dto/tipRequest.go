package dto

import (
	"encoding/json"
	"strings"

	"tipjar/internal/domain/models"

	"github.com/shopspring/decimal"
)

// swagger:model
type CreateTipRequest struct {
	TransactionID   string           `json:"transactionId,omitempty" example:"7f1c2d3e-0000-4000-8000-000000000001"`
	SenderAddress   string           `json:"senderAddress" example:"0x1234567890abcdef1234567890abcdef12345678"`
	ReceiverAddress string           `json:"receiverAddress" example:"0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"`
	AmountUSD       *decimal.Decimal `json:"amountUSD" swaggertype:"string" example:"10.00"`
	AmountUSDC      json.Number      `json:"amountUSDC" swaggertype:"string" example:"10000000"`
	Status          string           `json:"status,omitempty" example:"pending"`
	TransactionHash string           `json:"transactionHash,omitempty"`
	// FeeAmount is accepted for compatibility; the fee is always computed server side.
	FeeAmount      *decimal.Decimal `json:"feeAmount,omitempty" swaggertype:"string"`
	SenderUserID   *string          `json:"senderUserId,omitempty"`
	ReceiverUserID *string          `json:"receiverUserId,omitempty"`
}

// ToIntent resolves the optional user ids: an absent id falls back to the address.
func (r CreateTipRequest) ToIntent() models.TipIntent {
	intent := models.TipIntent{
		TransactionID:   strings.TrimSpace(r.TransactionID),
		SenderAddress:   strings.TrimSpace(r.SenderAddress),
		ReceiverAddress: strings.TrimSpace(r.ReceiverAddress),
		AmountUSDC:      r.AmountUSDC.String(),
		SenderUserID:    resolveUserID(r.SenderUserID, r.SenderAddress),
		ReceiverUserID:  resolveUserID(r.ReceiverUserID, r.ReceiverAddress),
		Status:          models.TransactionStatus(strings.TrimSpace(strings.ToLower(r.Status))),
		TransactionHash: strings.TrimSpace(r.TransactionHash),
	}
	if r.AmountUSD != nil {
		intent.AmountUSD = *r.AmountUSD
	}

	return intent
}

func resolveUserID(userID *string, address string) *string {
	if userID != nil {
		if id := strings.TrimSpace(*userID); id != "" {
			return &id
		}
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return nil
	}
	return &address
}
