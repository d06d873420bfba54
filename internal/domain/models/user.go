package models

import "time"

type User struct {
	UserID            string    `json:"userId" db:"user_id"`
	FarcasterID       *string   `json:"farcasterId" db:"farcaster_id"`
	BaseWalletAddress string    `json:"baseWalletAddress" db:"base_wallet_address"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// UserUpdate changes only the fields that are set.
type UserUpdate struct {
	FarcasterID       *string
	BaseWalletAddress *string
}

// TipsInclude selects which tips are attached to a user profile.
type TipsInclude string

const (
	IncludeSent     TipsInclude = "sent"
	IncludeReceived TipsInclude = "received"
	IncludeAll      TipsInclude = "all"
)

func (i TipsInclude) Sent() bool {
	return i == IncludeSent || i == IncludeAll
}

func (i TipsInclude) Received() bool {
	return i == IncludeReceived || i == IncludeAll
}

type UserProfile struct {
	User
	SentTips     []TipTransaction `json:"sentTips,omitempty"`
	ReceivedTips []TipTransaction `json:"receivedTips,omitempty"`
}
