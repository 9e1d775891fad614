package models

import (
	"time"

	"gorm.io/gorm"
)

// Feedback is the professional's write-up after a session. The unique index
// on SessionID doubles as the settlement compare-and-swap: a second concurrent
// submission fails at insert rather than double-paying.
type Feedback struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	SessionID uint   `gorm:"uniqueIndex;not null" json:"session_id"`
	AuthorID  uint   `gorm:"not null;index" json:"author_id"` // professional profile id
	Rating    int    `gorm:"not null" json:"rating"`          // 1..5
	Strengths string `gorm:"type:text" json:"strengths"`
	NextSteps string `gorm:"type:text" json:"next_steps"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Session Session `gorm:"foreignKey:SessionID" json:"-"`
}

func (Feedback) TableName() string { return "feedbacks" }
