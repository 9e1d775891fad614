package models

import (
	"time"

	"brewhire/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Role         string `gorm:"size:20;not null;index" json:"role"` // CANDIDATE | PROFESSIONAL | ADMIN
	AvatarURL    string `gorm:"size:512" json:"avatar_url"`
	// PledgedBonusCents is a candidate's standing pledge: the bonus they
	// commit to the first professional they chatted with at a firm, payable
	// when they accept an offer there. Snapshotted onto sessions at booking.
	PledgedBonusCents int64          `gorm:"not null;default:0" json:"pledged_bonus_cents"`
	FCMToken          string         `gorm:"size:512" json:"-"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Profile *ProfessionalProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

func (u *User) IsCandidate() bool    { return u.Role == domain.RoleCandidate }
func (u *User) IsProfessional() bool { return u.Role == domain.RoleProfessional }
