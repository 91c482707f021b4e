package models

import "time"

// Submission is one ledger row per decided submission attempt. Approved rows
// carry the canonical track fields from the catalog; rejected rows keep the
// text as submitted and a non-empty rejection reason.
type Submission struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Email           string    `gorm:"size:255;not null" json:"email"`
	EmailHash       string    `gorm:"size:64;not null;index" json:"-"`
	Artist          string    `gorm:"not null" json:"artist"`
	Title           string    `gorm:"not null" json:"title"`
	Status          string    `gorm:"size:16;not null;index" json:"status"`
	RejectionReason *string   `json:"rejection_reason"`
	TrackID         *string   `gorm:"size:64" json:"track_id"`
	TrackURI        *string   `gorm:"size:128" json:"track_uri"`
	Verified        bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (Submission) TableName() string {
	return "submissions"
}
