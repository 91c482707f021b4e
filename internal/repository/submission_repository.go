package repository

import (
	"time"

	"github.com/songgate/internal/constants"
	"github.com/songgate/internal/models"

	"gorm.io/gorm"
)

// SubmissionStats aggregates ledger counts over a time window.
type SubmissionStats struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// SubmissionRepository is the data access interface for the submission ledger.
type SubmissionRepository interface {
	Create(submission *models.Submission) error
	CountApprovedSince(emailHash string, since time.Time) (int64, error)
	ListRecent(limit int) ([]models.Submission, error)
	StatsBetween(startAt, endAt time.Time) (*SubmissionStats, error)
}

// GormSubmissionRepository is the GORM implementation.
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a submission repository.
func NewSubmissionRepository(db *gorm.DB) *GormSubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// Create appends a ledger row.
func (r *GormSubmissionRepository) Create(submission *models.Submission) error {
	return r.db.Create(submission).Error
}

// CountApprovedSince counts approved rows for emailHash created at or after since.
func (r *GormSubmissionRepository) CountApprovedSince(emailHash string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Submission{}).
		Where("email_hash = ? AND status = ? AND created_at >= ?",
			emailHash, constants.SubmissionStatusApproved, since).
		Count(&count).Error
	return count, err
}

// ListRecent returns the newest rows, capped at limit.
func (r *GormSubmissionRepository) ListRecent(limit int) ([]models.Submission, error) {
	var rows []models.Submission
	err := r.db.Order("created_at desc, id desc").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// StatsBetween counts rows created in [startAt, endAt) grouped by status.
func (r *GormSubmissionRepository) StatsBetween(startAt, endAt time.Time) (*SubmissionStats, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.Model(&models.Submission{}).
		Select("status, count(*) as count").
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &SubmissionStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case constants.SubmissionStatusApproved:
			stats.Approved += row.Count
		case constants.SubmissionStatusRejected:
			stats.Rejected += row.Count
		}
	}
	return stats, nil
}
