package repository

import (
	"brewhire/internal/models"

	"gorm.io/gorm"
)

type ProfessionalRepository struct {
	db *gorm.DB
}

func NewProfessionalRepository(db *gorm.DB) *ProfessionalRepository {
	return &ProfessionalRepository{db: db}
}

func (r *ProfessionalRepository) Create(p *models.ProfessionalProfile) error {
	return r.db.Create(p).Error
}

func (r *ProfessionalRepository) GetByID(id uint) (*models.ProfessionalProfile, error) {
	var p models.ProfessionalProfile
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfessionalRepository) GetByUserID(userID uint) (*models.ProfessionalProfile, error) {
	var p models.ProfessionalProfile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfessionalRepository) Update(p *models.ProfessionalProfile) error {
	return r.db.Save(p).Error
}

// ReferrerOf returns the profile id of the professional who referred the
// given profile, or nil at the top of a chain. This is the single lookup the
// chain walker needs; the chain itself is never materialized.
func (r *ProfessionalRepository) ReferrerOf(profileID uint) (*uint, error) {
	var p models.ProfessionalProfile
	if err := r.db.Select("id", "referred_by_id").First(&p, profileID).Error; err != nil {
		return nil, err
	}
	return p.ReferredByID, nil
}

// ListReferred returns profiles directly referred by the given professional.
func (r *ProfessionalRepository) ListReferred(profileID uint, limit, offset int) ([]models.ProfessionalProfile, error) {
	var list []models.ProfessionalProfile
	err := r.db.Where("referred_by_id = ?", profileID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}
