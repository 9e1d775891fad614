package models

import (
	"time"

	"gorm.io/gorm"
)

// Offer is a job offer a candidate reports at a firm. FirstChatProID and
// BonusCents are captured at creation from the candidate's earliest
// confirmed-or-completed session at that firm, then immutable.
type Offer struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CandidateID uint   `gorm:"not null;index" json:"candidate_id"`
	Firm        string `gorm:"size:128;not null;index" json:"firm"`
	// FirstChatProID is the professional who had the candidate's first chat
	// at this firm. Nil when the candidate never chatted there.
	FirstChatProID *uint `gorm:"index" json:"first_chat_pro_id"`
	// BonusCents is the pledge snapshotted on that first-chat session.
	BonusCents int64  `gorm:"not null;default:0" json:"bonus_cents"`
	Status     string `gorm:"size:20;not null;index" json:"status"` // PENDING, ACCEPTED, DECLINED, EXPIRED

	TransferID  string     `gorm:"size:128" json:"transfer_id"`
	BonusPaidAt *time.Time `json:"bonus_paid_at"`
	AcceptedAt  *time.Time `json:"accepted_at"`
	DeclinedAt  *time.Time `json:"declined_at"`
	ExpiresAt   *time.Time `json:"expires_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Candidate User `gorm:"foreignKey:CandidateID" json:"-"`
}

func (Offer) TableName() string { return "offers" }
