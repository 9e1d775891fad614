package models

import (
	"time"

	"gorm.io/gorm"
)

// TransferRecord is one executed transfer on the payment rail, tied back to
// the session or offer that produced it. Level 0 is a primary payout
// (session net or offer bonus, disambiguated by Purpose); levels 1..10 are
// referral-chain bonuses.
type TransferRecord struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	SessionID       *uint  `gorm:"index" json:"session_id"`
	OfferID         *uint  `gorm:"index" json:"offer_id"`
	RecipientUserID uint   `gorm:"not null;index" json:"recipient_user_id"`
	Level           int    `gorm:"not null;default:0" json:"level"`
	AmountCents     int64  `gorm:"not null" json:"amount_cents"`
	Purpose         string `gorm:"size:30;not null;index" json:"purpose"` // SESSION_NET, REFERRAL_BONUS, OFFER_BONUS
	ProviderRef     string `gorm:"size:128;uniqueIndex;not null" json:"provider_ref"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Recipient User `gorm:"foreignKey:RecipientUserID" json:"-"`
}

func (TransferRecord) TableName() string { return "transfer_records" }
