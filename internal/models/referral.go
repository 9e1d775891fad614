package models

import (
	"time"

	"gorm.io/gorm"
)

// ReferralCode is a professional's invite code. A new professional who signs
// up with a code gets their profile's ReferredByID set to the code owner's
// profile, which is how referral chains form.
type ReferralCode struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProfileID uint           `gorm:"uniqueIndex;not null" json:"profile_id"`
	Code      string         `gorm:"uniqueIndex;size:20;not null" json:"code"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Profile ProfessionalProfile `gorm:"foreignKey:ProfileID" json:"-"`
}

func (ReferralCode) TableName() string { return "referral_codes" }
