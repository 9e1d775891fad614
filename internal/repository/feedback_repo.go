package repository

import (
	"brewhire/internal/models"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts the feedback row. The unique index on session_id makes this
// the settlement's compare-and-swap: a concurrent duplicate fails here.
func (r *FeedbackRepository) Create(f *models.Feedback) error {
	return r.db.Create(f).Error
}

func (r *FeedbackRepository) GetBySessionID(sessionID uint) (*models.Feedback, error) {
	var f models.Feedback
	if err := r.db.Where("session_id = ?", sessionID).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// DeleteBySessionID removes the feedback row. Used as settlement rollback
// when the primary transfer fails; a hard delete so the unique index frees up
// for the retry.
func (r *FeedbackRepository) DeleteBySessionID(sessionID uint) error {
	return r.db.Unscoped().Where("session_id = ?", sessionID).Delete(&models.Feedback{}).Error
}
