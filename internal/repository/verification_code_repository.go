package repository

import (
	"errors"
	"time"

	"github.com/songgate/internal/models"

	"gorm.io/gorm"
)

// VerificationCodeRepository is the data access interface for verification codes.
type VerificationCodeRepository interface {
	Create(code *models.VerificationCode) error
	GetLatest(email string) (*models.VerificationCode, error)
	Redeem(email, code string, now time.Time) (bool, error)
}

// GormVerificationCodeRepository is the GORM implementation.
type GormVerificationCodeRepository struct {
	db *gorm.DB
}

// NewVerificationCodeRepository creates a verification code repository.
func NewVerificationCodeRepository(db *gorm.DB) *GormVerificationCodeRepository {
	return &GormVerificationCodeRepository{db: db}
}

// Create persists a new code record.
func (r *GormVerificationCodeRepository) Create(code *models.VerificationCode) error {
	return r.db.Create(code).Error
}

// GetLatest returns the newest code record for email, or nil when none exists.
func (r *GormVerificationCodeRepository) GetLatest(email string) (*models.VerificationCode, error) {
	var record models.VerificationCode
	if err := r.db.Where("email = ?", email).
		Order("created_at desc, id desc").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Redeem consumes the most recently created unexpired unused record matching
// (email, code). Outstanding codes for the same email stay independently
// redeemable until their own expiry. The used flag flips in a guarded update
// so each record redeems at most once under concurrent requests.
func (r *GormVerificationCodeRepository) Redeem(email, code string, now time.Time) (bool, error) {
	redeemed := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var record models.VerificationCode
		if err := tx.Where("email = ? AND code = ? AND used = ? AND expires_at > ?",
			email, code, false, now).
			Order("created_at desc, id desc").
			First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		result := tx.Model(&models.VerificationCode{}).
			Where("id = ? AND used = ?", record.ID, false).
			Update("used", true)
		if result.Error != nil {
			return result.Error
		}
		redeemed = result.RowsAffected == 1
		return nil
	})
	if err != nil {
		return false, err
	}
	return redeemed, nil
}
