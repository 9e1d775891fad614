package repository

import (
	"brewhire/internal/models"

	"gorm.io/gorm"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) Create(o *models.Offer) error {
	return r.db.Create(o).Error
}

func (r *OfferRepository) GetByID(id uint) (*models.Offer, error) {
	var o models.Offer
	if err := r.db.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OfferRepository) Update(o *models.Offer) error {
	return r.db.Save(o).Error
}

func (r *OfferRepository) ListByCandidateID(candidateID uint, limit, offset int) ([]models.Offer, error) {
	var list []models.Offer
	err := r.db.Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}
