package models

import (
	"time"

	"gorm.io/gorm"
)

// AuditLog keeps a trail of settlement activity, including transfers that
// succeeded on the rail but failed to persist locally. Those entries are the
// input for manual reconciliation.
type AuditLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ActorID   uint           `gorm:"index" json:"actor_id"`
	Action    string         `gorm:"size:64;not null;index" json:"action"`
	Entity    string         `gorm:"size:32;index" json:"entity"`
	EntityID  uint           `gorm:"index" json:"entity_id"`
	Detail    string         `gorm:"type:text" json:"detail"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AuditLog) TableName() string { return "audit_logs" }
