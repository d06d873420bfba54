package dto

import (
	"strings"

	"tipjar/internal/domain/models"
)

// swagger:model
type ReconcileRequest struct {
	TransactionID   string `json:"transactionId" example:"7f1c2d3e-0000-4000-8000-000000000001"`
	Status          string `json:"status" example:"success"`
	TransactionHash string `json:"transactionHash,omitempty" example:"0xdeadbeef"`
	Leg             string `json:"leg,omitempty" example:"net"`
}

// ConfirmationEvent is the body published on the tip events exchange.
type ConfirmationEvent = ReconcileRequest

// Outcome maps the reported status onto a transaction status. Chain watchers are not
// consistent about spelling, so a few aliases are accepted.
func (r ReconcileRequest) Outcome() models.TransactionStatus {
	status := strings.TrimSpace(strings.ToLower(r.Status))
	switch status {
	case "successful", "succeeded", "completed", "confirmed":
		return models.StatusSuccess
	case "failure", "error", "reverted":
		return models.StatusFailed
	default:
		return models.TransactionStatus(status)
	}
}

func (r ReconcileRequest) TransferLeg() models.TransferLeg {
	return models.TransferLeg(strings.TrimSpace(strings.ToLower(r.Leg)))
}
