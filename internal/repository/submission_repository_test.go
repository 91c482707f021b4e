package repository

import (
	"testing"
	"time"

	"github.com/songgate/internal/constants"
	"github.com/songgate/internal/models"
)

func strPtr(s string) *string {
	return &s
}

func TestCountApprovedSinceIgnoresRejectedAndOldRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubmissionRepository(db)
	now := time.Now()
	emailHash := "a1b2c3"

	rows := []models.Submission{
		{EmailHash: emailHash, Artist: "Dawid Podsiadlo", Title: "Malomiasteczkowy",
			Status: constants.SubmissionStatusApproved, CreatedAt: now.Add(-time.Hour)},
		{EmailHash: emailHash, Artist: "Taco Hemingway", Title: "Polskie Tango",
			Status:          constants.SubmissionStatusRejected,
			RejectionReason: strPtr(constants.RejectionTrackNotFound),
			CreatedAt:       now.Add(-time.Hour)},
		{EmailHash: emailHash, Artist: "Sanah", Title: "Szampan",
			Status: constants.SubmissionStatusApproved, CreatedAt: now.Add(-72 * time.Hour)},
		{EmailHash: "other", Artist: "Bedoes", Title: "Gwiazdy",
			Status: constants.SubmissionStatusApproved, CreatedAt: now.Add(-time.Hour)},
	}
	for i := range rows {
		if err := repo.Create(&rows[i]); err != nil {
			t.Fatalf("create submission failed: %v", err)
		}
	}

	count, err := repo.CountApprovedSince(emailHash, now.Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("count approved failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 approved row in window, got=%d", count)
	}
}

func TestListRecentOrdersNewestFirstAndCaps(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubmissionRepository(db)
	now := time.Now()

	for i := 0; i < 5; i++ {
		row := models.Submission{
			EmailHash: "hash",
			Artist:    "Artist",
			Title:     "Title",
			Status:    constants.SubmissionStatusApproved,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}
		if err := repo.Create(&row); err != nil {
			t.Fatalf("create submission failed: %v", err)
		}
	}

	rows, err := repo.ListRecent(3)
	if err != nil {
		t.Fatalf("list recent failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got=%d", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].CreatedAt.After(rows[i-1].CreatedAt) {
			t.Fatalf("rows not ordered newest first")
		}
	}
}

func TestStatsBetweenCountsByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubmissionRepository(db)
	dayStart := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	rows := []models.Submission{
		{EmailHash: "h1", Artist: "A", Title: "T1",
			Status: constants.SubmissionStatusApproved, CreatedAt: dayStart.Add(time.Hour)},
		{EmailHash: "h2", Artist: "B", Title: "T2",
			Status: constants.SubmissionStatusApproved, CreatedAt: dayStart.Add(2 * time.Hour)},
		{EmailHash: "h3", Artist: "C", Title: "T3",
			Status:          constants.SubmissionStatusRejected,
			RejectionReason: strPtr(constants.RejectionExplicit),
			CreatedAt:       dayStart.Add(3 * time.Hour)},
		{EmailHash: "h4", Artist: "D", Title: "T4",
			Status: constants.SubmissionStatusApproved, CreatedAt: dayStart.Add(-time.Hour)},
		{EmailHash: "h5", Artist: "E", Title: "T5",
			Status: constants.SubmissionStatusApproved, CreatedAt: dayEnd},
	}
	for i := range rows {
		if err := repo.Create(&rows[i]); err != nil {
			t.Fatalf("create submission failed: %v", err)
		}
	}

	stats, err := repo.StatsBetween(dayStart, dayEnd)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 3 || stats.Approved != 2 || stats.Rejected != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	again, err := repo.StatsBetween(dayStart, dayEnd)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if *again != *stats {
		t.Fatalf("stats not stable across reads: %+v vs %+v", again, stats)
	}
}
