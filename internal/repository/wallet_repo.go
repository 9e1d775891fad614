package repository

import (
	"brewhire/internal/models"

	"gorm.io/gorm"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) GetOrCreate(userID uint) (*models.Wallet, error) {
	w, err := r.GetByUserID(userID)
	if err == nil {
		return w, nil
	}
	w = &models.Wallet{UserID: userID, BalanceCents: 0, Currency: "USD"}
	if err := r.db.Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// Credit adds to the earnings balance. Mirrors a successful external
// transfer; never moves real money.
func (r *WalletRepository) Credit(userID uint, amountCents int64) error {
	w, err := r.GetOrCreate(userID)
	if err != nil {
		return err
	}
	return r.db.Model(w).Update("balance_cents", gorm.Expr("balance_cents + ?", amountCents)).Error
}

func (r *WalletRepository) RecordTransaction(userID uint, amountCents int64, txType, reference string) error {
	return r.db.Create(&models.WalletTransaction{
		UserID:      userID,
		AmountCents: amountCents,
		Type:        txType,
		Reference:   reference,
	}).Error
}

func (r *WalletRepository) ListTransactions(userID uint, limit, offset int) ([]models.WalletTransaction, error) {
	var list []models.WalletTransaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}
