package models

import (
	"time"

	"brewhire/internal/domain"

	"gorm.io/gorm"
)

// Session is one booked coffee chat. Rate, firm, referrer and bonus pledge
// are snapshotted at booking time and immutable afterward.
type Session struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	CandidateID    uint `gorm:"not null;index" json:"candidate_id"`
	ProfessionalID uint `gorm:"not null;index" json:"professional_id"`
	// ReferrerProID is the professional who referred this session's
	// professional, captured at booking. Start of the level-1 bonus chain.
	ReferrerProID *uint  `gorm:"index" json:"referrer_pro_id"`
	Firm          string `gorm:"size:128;not null;index" json:"firm"`
	// BonusPledgeCents is the candidate's offer-bonus pledge at booking time.
	// An offer at this firm pays out the pledge captured at the first chat,
	// not whatever the candidate pledges later.
	BonusPledgeCents int64     `gorm:"not null;default:0" json:"bonus_pledge_cents"`
	ScheduledAt      time.Time `gorm:"not null;index" json:"scheduled_at"`
	DurationMinutes  int       `gorm:"not null;default:30" json:"duration_minutes"`
	RateCents        int64     `gorm:"not null" json:"rate_cents"`
	Status           string    `gorm:"size:20;not null;index" json:"status"` // REQUESTED, CONFIRMED, COMPLETED, CANCELLED

	MeetingID       string `gorm:"size:128" json:"meeting_id"`
	MeetingJoinURL  string `gorm:"size:512" json:"meeting_join_url"`
	CalendarEventID string `gorm:"size:128" json:"calendar_event_id"`

	// Settlement artifacts. FeedbackSubmittedAt is the idempotency guard:
	// settlement runs at most once per session.
	PrimaryTransferID   string     `gorm:"size:128" json:"primary_transfer_id"`
	PaidAt              *time.Time `json:"paid_at"`
	CompletedAt         *time.Time `json:"completed_at"`
	FeedbackSubmittedAt *time.Time `json:"feedback_submitted_at"`
	CancelledAt         *time.Time `json:"cancelled_at"`
	CancelReason        string     `gorm:"size:255" json:"cancel_reason"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Candidate    User                `gorm:"foreignKey:CandidateID" json:"-"`
	Professional ProfessionalProfile `gorm:"foreignKey:ProfessionalID" json:"-"`
}

func (Session) TableName() string { return "sessions" }

func (s *Session) IsConfirmed() bool { return s.Status == domain.SessionConfirmed }
