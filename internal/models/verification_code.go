package models

import "time"

// VerificationCode is a single-use email ownership proof. Several
// outstanding rows per email may coexist; each redeems at most once
// before its own expiry.
type VerificationCode struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"size:255;not null;index:idx_verification_codes_email_created" json:"email"`
	Code      string    `gorm:"size:16;not null" json:"-"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"index:idx_verification_codes_email_created" json:"created_at"`
}

// TableName sets the table name.
func (VerificationCode) TableName() string {
	return "verification_codes"
}
