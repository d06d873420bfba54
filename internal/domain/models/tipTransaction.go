package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	StatusPending TransactionStatus = "pending"
	StatusSuccess TransactionStatus = "success"
	StatusFailed  TransactionStatus = "failed"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed:
		return true
	}
	return false
}

func (s TransactionStatus) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

type TransferStatus string

const (
	TransferPending TransferStatus = "pending"
	TransferSuccess TransferStatus = "success"
	TransferFailed  TransferStatus = "failed"
	// TransferSkipped marks a fee leg that is never submitted because the fee rounded to zero.
	TransferSkipped TransferStatus = "skipped"
)

type TransferLeg string

const (
	LegNet TransferLeg = "net"
	LegFee TransferLeg = "fee"
)

func (l TransferLeg) Valid() bool {
	return l == LegNet || l == LegFee
}

// Transfer is one of the two on-chain transfers a tip is settled with.
type Transfer struct {
	Status          TransferStatus `json:"status"`
	TransactionHash *string        `json:"transactionHash"`
}

type TipTransaction struct {
	TransactionID       string            `json:"transactionId" db:"transaction_id"`
	SenderAddress       string            `json:"senderAddress" db:"sender_address"`
	ReceiverAddress     string            `json:"receiverAddress" db:"receiver_address"`
	AmountUSD           decimal.Decimal   `json:"amountUSD" db:"amount_usd"`
	FeeAmountUSD        decimal.Decimal   `json:"feeAmountUSD" db:"fee_usd"`
	NetAmountUSD        decimal.Decimal   `json:"netAmountUSD" db:"net_usd"`
	AmountUSDC          string            `json:"amountUSDC" db:"amount_usdc"`
	FeeRecipientAddress string            `json:"feeRecipientAddress" db:"fee_recipient_address"`
	Status              TransactionStatus `json:"status" db:"status"`
	TransactionHash     *string           `json:"transactionHash" db:"transaction_hash"`
	NetTransfer         Transfer          `json:"netTransfer"`
	FeeTransfer         Transfer          `json:"feeTransfer"`
	SenderUserID        *string           `json:"senderUserId" db:"sender_user_id"`
	ReceiverUserID      *string           `json:"receiverUserId" db:"receiver_user_id"`
	Timestamp           time.Time         `json:"timestamp" db:"created_at"`
	UpdatedAt           time.Time         `json:"updatedAt" db:"updated_at"`
}

// Leg returns the transfer for the given leg.
func (t TipTransaction) Leg(leg TransferLeg) Transfer {
	if leg == LegFee {
		return t.FeeTransfer
	}
	return t.NetTransfer
}

type TransactionFilter struct {
	SenderAddress   string
	ReceiverAddress string
	SenderUserID    string
	ReceiverUserID  string
	Status          TransactionStatus
	Skip            int
	Take            int
}

// TransactionUpdate is applied atomically to a single record. The guards make it a
// compare-and-set: when a guard does not hold, nothing is written.
type TransactionUpdate struct {
	ExpectStatus    *TransactionStatus
	Status          *TransactionStatus
	TransactionHash *string
	Transfer        *TransferUpdate
}

// TransferUpdate is only applied while the leg is still pending.
type TransferUpdate struct {
	Leg             TransferLeg
	Status          TransferStatus
	TransactionHash *string
}

// TipIntent is what a caller asks for. User ids are already resolved: a nil id means that
// side gets no notification.
type TipIntent struct {
	TransactionID   string
	SenderAddress   string
	ReceiverAddress string
	AmountUSD       decimal.Decimal
	AmountUSDC      string
	SenderUserID    *string
	ReceiverUserID  *string
	// Status and TransactionHash carry a confirmation the caller already holds.
	// The record is still created pending and then reconciled.
	Status          TransactionStatus
	TransactionHash string
}
