package service

import (
	"context"
	"time"

	"github.com/songgate/internal/catalog"
	"github.com/songgate/internal/config"
	"github.com/songgate/internal/constants"
	"github.com/songgate/internal/logger"
	"github.com/songgate/internal/models"
	"github.com/songgate/internal/repository"
)

// SubmitInput is one submission attempt as received from the frontend.
type SubmitInput struct {
	Email  string
	Code   string
	Artist string
	Title  string
}

// SubmitResult describes an approved submission.
type SubmitResult struct {
	Track *catalog.Track
}

// SubmissionService runs the gate sequence for song submissions and keeps
// the ledger. Gates run in a fixed order: fields, school domain, code,
// quota, vulgarity filter, catalog lookup, explicit flag, playlist append.
// The first failing gate decides the attempt.
type SubmissionService struct {
	submissions  repository.SubmissionRepository
	verification *VerificationService
	filter       *ContentFilter
	catalog      catalog.Client
	schoolCfg    config.SchoolConfig
	submitCfg    config.SubmissionConfig
}

// NewSubmissionService creates the submission orchestrator.
func NewSubmissionService(
	submissions repository.SubmissionRepository,
	verification *VerificationService,
	filter *ContentFilter,
	catalogClient catalog.Client,
	schoolCfg config.SchoolConfig,
	submitCfg config.SubmissionConfig,
) *SubmissionService {
	return &SubmissionService{
		submissions:  submissions,
		verification: verification,
		filter:       filter,
		catalog:      catalogClient,
		schoolCfg:    schoolCfg,
		submitCfg:    submitCfg,
	}
}

// Submit decides one submission attempt. Content rejections are written to
// the ledger; failures before the filter gate (bad fields, bad code, quota)
// leave no ledger row. The redeemed code is consumed even when a later
// gate rejects the attempt.
func (s *SubmissionService) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	maxLen := s.maxFieldLength()
	email := SanitizeText(input.Email, maxLen)
	code := SanitizeText(input.Code, maxLen)
	artist := SanitizeText(input.Artist, maxLen)
	title := SanitizeText(input.Title, maxLen)
	if email == "" || code == "" || artist == "" || title == "" {
		return nil, ErrMissingFields
	}

	if !IsSchoolEmail(email, s.schoolCfg.EmailDomain) {
		return nil, ErrInvalidEmail
	}
	email = NormalizeEmail(email)
	emailHash := HashEmail(email)

	if err := s.verification.Redeem(email, code); err != nil {
		return nil, err
	}

	if !s.schoolCfg.IsAdminEmail(email) {
		since := time.Now().Add(-s.windowDuration())
		count, err := s.submissions.CountApprovedSince(emailHash, since)
		if err != nil {
			return nil, err
		}
		if count >= int64(s.maxPerWindow()) {
			return nil, ErrRateLimited
		}
	}

	if err := s.filter.Check(artist, title); err != nil {
		reason := constants.RejectionVulgarTitle
		if err == ErrVulgarArtist {
			reason = constants.RejectionVulgarArtist
		}
		s.recordRejection(email, emailHash, artist, title, reason, nil)
		return nil, err
	}

	if s.catalog == nil {
		return nil, ErrCatalogUnavailable
	}
	track, err := s.catalog.FindTrack(ctx, artist, title)
	if err != nil {
		logger.Errorw("catalog_search_failed", "artist", artist, "title", title, "error", err)
		return nil, ErrCatalogUnavailable
	}
	if track == nil {
		s.recordRejection(email, emailHash, artist, title, constants.RejectionTrackNotFound, nil)
		return nil, ErrTrackNotFound
	}

	if track.Explicit {
		s.recordRejection(email, emailHash, artist, title, constants.RejectionExplicit, track)
		return nil, ErrExplicitContent
	}

	if err := s.catalog.AppendToPlaylist(ctx, track.URI); err != nil {
		logger.Errorw("playlist_append_failed", "track_uri", track.URI, "error", err)
		return nil, ErrPlaylistAppend
	}

	approved := &models.Submission{
		Email:     email,
		EmailHash: emailHash,
		Artist:    canonicalOr(track.Artist, artist),
		Title:     canonicalOr(track.Name, title),
		Status:    constants.SubmissionStatusApproved,
		TrackID:   &track.ID,
		TrackURI:  &track.URI,
		Verified:  true,
	}
	if err := s.submissions.Create(approved); err != nil {
		// The track is already on the playlist; the ledger row is the
		// part that failed. Surface the error and leave a loud trail.
		logger.Errorw("ledger_write_failed_after_append",
			"email_hash", emailHash, "track_id", track.ID, "error", err)
		return nil, err
	}

	logger.Infow("submission_approved",
		"email_hash", emailHash, "track_id", track.ID, "artist", approved.Artist, "title", approved.Title)
	return &SubmitResult{Track: track}, nil
}

// TodayStats returns ledger counts for the current local day.
func (s *SubmissionService) TodayStats() (*repository.SubmissionStats, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.submissions.StatsBetween(dayStart, dayStart.Add(24*time.Hour))
}

// RecentSubmissions lists the newest ledger rows for the review screen.
func (s *SubmissionService) RecentSubmissions() ([]models.Submission, error) {
	limit := s.submitCfg.RecentLimit
	if limit <= 0 {
		limit = 200
	}
	return s.submissions.ListRecent(limit)
}

func (s *SubmissionService) recordRejection(email, emailHash, artist, title, reason string, track *catalog.Track) {
	// Rows only exist past the code gate, so they are always verified.
	row := &models.Submission{
		Email:           email,
		EmailHash:       emailHash,
		Artist:          artist,
		Title:           title,
		Status:          constants.SubmissionStatusRejected,
		RejectionReason: &reason,
		Verified:        true,
	}
	if track != nil {
		row.TrackID = &track.ID
		row.TrackURI = &track.URI
	}
	if err := s.submissions.Create(row); err != nil {
		logger.Warnw("rejection_ledger_write_failed",
			"email_hash", emailHash, "reason", reason, "error", err)
	}
}

func (s *SubmissionService) windowDuration() time.Duration {
	days := s.submitCfg.WindowDays
	if days <= 0 {
		days = 2
	}
	return time.Duration(days) * 24 * time.Hour
}

func (s *SubmissionService) maxPerWindow() int {
	if s.submitCfg.MaxPerWindow > 0 {
		return s.submitCfg.MaxPerWindow
	}
	return 1
}

func (s *SubmissionService) maxFieldLength() int {
	if s.submitCfg.MaxFieldLength > 0 {
		return s.submitCfg.MaxFieldLength
	}
	return 200
}

func canonicalOr(canonical, submitted string) string {
	if canonical != "" {
		return canonical
	}
	return submitted
}
