package repository

import (
	"brewhire/internal/models"

	"gorm.io/gorm"
)

type TransferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Create(t *models.TransferRecord) error {
	return r.db.Create(t).Error
}

func (r *TransferRepository) ListBySessionID(sessionID uint) ([]models.TransferRecord, error) {
	var list []models.TransferRecord
	err := r.db.Where("session_id = ?", sessionID).Order("level ASC").Find(&list).Error
	return list, err
}

func (r *TransferRepository) ListByRecipient(userID uint, limit, offset int) ([]models.TransferRecord, error) {
	var list []models.TransferRecord
	err := r.db.Where("recipient_user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}
