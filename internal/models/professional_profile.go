package models

import (
	"time"

	"gorm.io/gorm"
)

// ProfessionalProfile is the mentor side of a user. The referral chain is a
// relationship on this record: ReferredByID points at the profile of the
// professional who referred them, and is walked (never materialized) when a
// payout is computed.
type ProfessionalProfile struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	DisplayName string `gorm:"size:128;not null" json:"display_name"`
	Firm        string `gorm:"size:128;not null;index" json:"firm"`
	Title       string `gorm:"size:128" json:"title"`
	Bio         string `gorm:"type:text" json:"bio"`
	// RateCents is the gross price of one coffee chat, fixed onto the session
	// at booking time.
	RateCents    int64 `gorm:"not null;default:0" json:"rate_cents"`
	ReferredByID *uint `gorm:"index" json:"referred_by_id"`
	// PayoutAccountID is the professional's account on the payment rail.
	// Empty means no payout destination: they cannot confirm sessions or
	// receive transfers.
	PayoutAccountID string `gorm:"size:128" json:"-"`
	// CalendarToken is a serialized OAuth token for the calendar provider.
	// Optional; sessions work without a calendar entry.
	CalendarToken string         `gorm:"type:text" json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User       User                 `gorm:"foreignKey:UserID" json:"-"`
	ReferredBy *ProfessionalProfile `gorm:"foreignKey:ReferredByID" json:"-"`
}

func (ProfessionalProfile) TableName() string { return "professional_profiles" }

func (p *ProfessionalProfile) HasPayoutDestination() bool {
	return p != nil && p.PayoutAccountID != ""
}
