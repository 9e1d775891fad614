package repository

import (
	"brewhire/internal/domain"
	"brewhire/internal/models"

	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(s *models.Session) error {
	return r.db.Create(s).Error
}

func (r *SessionRepository) GetByID(id uint) (*models.Session, error) {
	var s models.Session
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// GetWithParties loads a session with its candidate and professional rows,
// the composed shape the lifecycle and settlement flows work on.
func (r *SessionRepository) GetWithParties(id uint) (*models.Session, error) {
	var s models.Session
	err := r.db.Preload("Candidate").Preload("Professional").First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Update(s *models.Session) error {
	return r.db.Save(s).Error
}

// FirstChatAtFirm returns the candidate's earliest confirmed-or-completed
// session at a firm, the session whose professional earns the offer bonus.
func (r *SessionRepository) FirstChatAtFirm(candidateID uint, firm string) (*models.Session, error) {
	var s models.Session
	err := r.db.Where("candidate_id = ? AND firm = ? AND status IN ?",
		candidateID, firm, []string{domain.SessionConfirmed, domain.SessionCompleted}).
		Order("scheduled_at ASC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) ListByCandidateID(candidateID uint, limit, offset int) ([]models.Session, error) {
	var list []models.Session
	err := r.db.Where("candidate_id = ?", candidateID).
		Preload("Professional").
		Order("scheduled_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *SessionRepository) ListByProfessionalID(professionalID uint, limit, offset int) ([]models.Session, error) {
	var list []models.Session
	err := r.db.Where("professional_id = ?", professionalID).
		Preload("Candidate").
		Order("scheduled_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}
