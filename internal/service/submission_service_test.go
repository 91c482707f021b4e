package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/songgate/internal/catalog"
	"github.com/songgate/internal/config"
	"github.com/songgate/internal/constants"
	"github.com/songgate/internal/models"
	"github.com/songgate/internal/queue"
	"github.com/songgate/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type fakeCatalog struct {
	track     *catalog.Track
	findErr   error
	appendErr error
	appended  []string
}

func (f *fakeCatalog) FindTrack(ctx context.Context, artist, title string) (*catalog.Track, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.track, nil
}

func (f *fakeCatalog) AppendToPlaylist(ctx context.Context, trackURI string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, trackURI)
	return nil
}

type fakeEmailSender struct {
	sent []string
	err  error
}

func (f *fakeEmailSender) SendVerifyCode(toEmail, code, locale string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, toEmail+":"+code)
	return nil
}

type submissionTestEnv struct {
	service     *SubmissionService
	submissions repository.SubmissionRepository
	codes       repository.VerificationCodeRepository
	catalog     *fakeCatalog
}

func newSubmissionTestEnv(t *testing.T, fake *fakeCatalog) *submissionTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.VerificationCode{}, &models.Submission{}); err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}

	schoolCfg := config.SchoolConfig{
		EmailDomain: "zspbytow.pl",
		AdminEmails: []string{"admin@zspbytow.pl"},
	}
	submitCfg := config.SubmissionConfig{
		WindowDays:     2,
		MaxPerWindow:   1,
		MaxFieldLength: 200,
		RecentLimit:    200,
	}

	codes := repository.NewVerificationCodeRepository(db)
	submissions := repository.NewSubmissionRepository(db)
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("build queue client failed: %v", err)
	}
	verification := NewVerificationService(codes, &fakeEmailSender{}, queueClient,
		schoolCfg, config.VerifyCodeConfig{ExpireMinutes: 10, Length: 6})

	svc := NewSubmissionService(submissions, verification, NewContentFilter(),
		fake, schoolCfg, submitCfg)
	return &submissionTestEnv{
		service:     svc,
		submissions: submissions,
		codes:       codes,
		catalog:     fake,
	}
}

func (env *submissionTestEnv) issueCode(t *testing.T, email, code string) {
	t.Helper()
	err := env.codes.Create(&models.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(10 * time.Minute),
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("issue code failed: %v", err)
	}
}

func cleanTrack() *catalog.Track {
	return &catalog.Track{
		ID:       "track123",
		URI:      "spotify:track:track123",
		Name:     "Małomiasteczkowy",
		Artist:   "Dawid Podsiadło",
		Explicit: false,
	}
}

func TestSubmitApprovedWritesCanonicalLedgerRow(t *testing.T) {
	env := newSubmissionTestEnv(t, &fakeCatalog{track: cleanTrack()})
	env.issueCode(t, "uczen@zspbytow.pl", "482913")

	result, err := env.service.Submit(context.Background(), SubmitInput{
		Email:  "UCZEN@zspbytow.pl",
		Code:   "482913",
		Artist: "dawid podsiadlo",
		Title:  "malomiasteczkowy",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Track == nil || result.Track.ID != "track123" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(env.catalog.appended) != 1 || env.catalog.appended[0] != "spotify:track:track123" {
		t.Fatalf("playlist append not recorded: %v", env.catalog.appended)
	}

	rows, err := env.submissions.ListRecent(10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(rows))
	}
	row := rows[0]
	if row.Status != constants.SubmissionStatusApproved {
		t.Fatalf("expected approved, got %s", row.Status)
	}
	if row.Artist != "Dawid Podsiadło" || row.Title != "Małomiasteczkowy" {
		t.Fatalf("expected canonical track fields, got %s / %s", row.Artist, row.Title)
	}
	if row.RejectionReason != nil {
		t.Fatalf("approved row must have nil rejection reason")
	}
	if row.TrackID == nil || *row.TrackID != "track123" {
		t.Fatalf("missing track id on approved row")
	}
	if row.EmailHash != HashEmail("uczen@zspbytow.pl") {
		t.Fatalf("unexpected email hash: %s", row.EmailHash)
	}
	if row.Email != "uczen@zspbytow.pl" || !row.Verified {
		t.Fatalf("ledger row must keep the normalized address and verified flag: %+v", row)
	}
}

func TestSubmitConsumesCodeExactlyOnce(t *testing.T) {
	env := newSubmissionTestEnv(t, &fakeCatalog{track: cleanTrack()})
	env.issueCode(t, "uczen@zspbytow.pl", "482913")

	input := SubmitInput{
		Email:  "uczen@zspbytow.pl",
		Code:   "482913",
		Artist: "Dawid Podsiadło",
		Title:  "Małomiasteczkowy",
	}
	if _, err := env.service.Submit(context.Background(), input); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := env.service.Submit(context.Background(), input); !errors.Is(err, ErrCodeInvalid) {
		t.Fatalf("expected ErrCodeInvalid on reused code, got %v", err)
	}
}

func TestSubmitValidatesFieldsAndDomain(t *testing.T) {
	env := newSubmissionTestEnv(t, &fakeCatalog{track: cleanTrack()})

	_, err := env.service.Submit(context.Background(), SubmitInput{
		Email: "uczen@zspbytow.pl", Code: "123456", Artist: "", Title: "x",
	})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}

	_, err = env.service.Submit(context.Background(), SubmitInput{
		Email: "uczen@gmail.com", Code: "123456", Artist: "a", Title: "t",
	})
	if !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	_, err = env.service.Submit(context.Background(), SubmitInput{
		Email: "uczen@zspbytow.pl", Code: "000000", Artist: "a", Title: "t",
	})
	if !errors.Is(err, ErrCodeInvalid) {
		t.Fatalf("expected ErrCodeInvalid, got %v", err)
	}

	rows, _ := env.submissions.ListRecent(10)
	if len(rows) != 0 {
		t.Fatalf("early gate failures must not write ledger rows, got %d", len(rows))
	}
}

func TestSubmitVulgarArtistRejectsBeforeTitle(t *testing.T) {
	env := newSubmissionTestEnv(t, &fakeCatalog{track: cleanTrack()})
	env.issueCode(t, "uczen@zspbytow.pl", "111111")

	_, err := env.service.Submit(context.Background(), SubmitInput{
		Email:  "uczen@zspbytow.pl",
		Code:   "111111",
		Artist: "fucking artist",
		Title:  "shit title",
	})
	if !errors.Is(err, ErrVulgarArtist) {
		t.Fatalf("expected ErrVulgarArtist, got %v", err)
	}

	rows, _ := env.submissions.ListRecent(10)
	if len(rows) != 1 {
		t.Fatalf("expected rejection ledger row, got %d", len(rows))
	}
	row := rows[0]
	if row.Status != constants.SubmissionStatusRejected {
		t.Fatalf("expected rejected, got %s", row.Status)
	}
	if row.RejectionReason == nil || *row.RejectionReason != constants.RejectionVulgarArtist {
		t.Fatalf("unexpected reason: %v", row.RejectionReason)
	}
	if row.Artist != "fucking artist" {
		t.Fatalf("rejected row must keep submitted text, got %s", row.Artist)
	}
}

func TestSubmitTrackNotFoundWritesLedgerRow(t *testing.T) {
	env := newSubmissionTestEnv(t, &fakeCatalog{track: nil})
	env.issueCode(t, "uczen@zspbytow.pl", "111111")

	_, err := env.service.Submit(context.Background(), SubmitInput{
		Email:  "uczen@zspbytow.pl",
		Code:   "111111",
		Artist: "Nieznany",
		Title:  "Nie istnieje",
	})
	if !errors.Is(err, ErrTrackNotFound) {
		t.Fatalf("expected ErrTrackNotFound, got %v", err)
	}

	rows, _ := env.submissions.ListRecent(10)
	if len(rows) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(rows))
	}
	if rows[0].RejectionReason == nil || *rows[0].RejectionReason != constants.RejectionTrackNotFound {
		t.Fatalf("unexpected reason: %v", rows[0].RejectionReason)
	}
	if rows[0].TrackID != nil {
		t.Fatalf("not-found row must not carry track ids")
	}
}

func TestSubmitExplicitTrackRejectedWithTrackIDs(t *testing.T) {
	explicit := cleanTrack()
	explicit.Explicit = true
	env := newSubmissionTestEnv(t, &fakeCatalog{track: explicit})
	env.issueCode(t, "uczen@zspbytow.pl", "111111")

	_, err := env.service.Submit(context.Background(), SubmitInput{
		Email:  "uczen@zspbytow.pl",
		Code:   "111111",
		Artist: "Dawid Podsiadło",
		Title:  "Małomiasteczkowy",
	})
	if !errors.Is(err, ErrExplicitContent) {
		t.Fatalf("expected ErrExplicitContent, got %v", err)
	}
	if len(env.catalog.appended) != 0 {
		t.Fatalf("explicit track must not reach the playlist")
	}

	rows, _ := env.submissions.ListRecent(10)
	if len(rows) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(rows))
	}
	row := rows[0]
	if row.RejectionReason == nil || *row.RejectionReason != constants.RejectionExplicit {
		t.Fatalf("unexpected reason: %v", row.RejectionReason)
	}
	if row.TrackID == nil || *row.TrackID != "track123" {
		t.Fatalf("explicit rejection should record the matched track id")
	}
}

func TestSubmitPlaylistFailureLeavesNoLedgerRow(t *testing.T) {
	env := newSubmissionTestEnv(t, &fakeCatalog{
		track:     cleanTrack(),
		appendErr: errors.New("spotify 502"),
	})
	env.issueCode(t, "uczen@zspbytow.pl", "111111")

	_, err := env.service.Submit(context.Background(), SubmitInput{
		Email:  "uczen@zspbytow.pl",
		Code:   "111111",
		Artist: "Dawid Podsiadło",
		Title:  "Małomiasteczkowy",
	})
	if !errors.Is(err, ErrPlaylistAppend) {
		t.Fatalf("expected ErrPlaylistAppend, got %v", err)
	}

	rows, _ := env.submissions.ListRecent(10)
	if len(rows) != 0 {
		t.Fatalf("append failure must not write ledger rows, got %d", len(rows))
	}
}

func TestSubmitCatalogUnavailable(t *testing.T) {
	env := newSubmissionTestEnv(t, &fakeCatalog{findErr: errors.New("timeout")})
	env.issueCode(t, "uczen@zspbytow.pl", "111111")

	_, err := env.service.Submit(context.Background(), SubmitInput{
		Email:  "uczen@zspbytow.pl",
		Code:   "111111",
		Artist: "a",
		Title:  "t",
	})
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
	rows, _ := env.submissions.ListRecent(10)
	if len(rows) != 0 {
		t.Fatalf("catalog outage must not write ledger rows")
	}
}

func TestSubmitQuotaCountsOnlyApprovedRows(t *testing.T) {
	env := newSubmissionTestEnv(t, &fakeCatalog{track: cleanTrack()})
	emailHash := HashEmail("uczen@zspbytow.pl")

	reason := constants.RejectionTrackNotFound
	rejected := &models.Submission{
		EmailHash:       emailHash,
		Artist:          "x",
		Title:           "y",
		Status:          constants.SubmissionStatusRejected,
		RejectionReason: &reason,
		CreatedAt:       time.Now().Add(-time.Hour),
	}
	if err := env.submissions.Create(rejected); err != nil {
		t.Fatalf("seed rejected row failed: %v", err)
	}

	env.issueCode(t, "uczen@zspbytow.pl", "111111")
	if _, err := env.service.Submit(context.Background(), SubmitInput{
		Email: "uczen@zspbytow.pl", Code: "111111", Artist: "a", Title: "t",
	}); err != nil {
		t.Fatalf("rejected rows must not count against the quota: %v", err)
	}

	env.issueCode(t, "uczen@zspbytow.pl", "222222")
	_, err := env.service.Submit(context.Background(), SubmitInput{
		Email: "uczen@zspbytow.pl", Code: "222222", Artist: "a", Title: "t",
	})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited after an approved row, got %v", err)
	}
}

func TestSubmitAdminEmailBypassesQuota(t *testing.T) {
	env := newSubmissionTestEnv(t, &fakeCatalog{track: cleanTrack()})

	for _, code := range []string{"111111", "222222", "333333"} {
		env.issueCode(t, "admin@zspbytow.pl", code)
		if _, err := env.service.Submit(context.Background(), SubmitInput{
			Email: "admin@zspbytow.pl", Code: code, Artist: "a", Title: "t",
		}); err != nil {
			t.Fatalf("admin submit failed: %v", err)
		}
	}

	rows, _ := env.submissions.ListRecent(10)
	if len(rows) != 3 {
		t.Fatalf("expected 3 approved rows for admin, got %d", len(rows))
	}
}

func TestTodayStatsCountsCurrentDayOnly(t *testing.T) {
	env := newSubmissionTestEnv(t, &fakeCatalog{track: cleanTrack()})
	reason := constants.RejectionExplicit

	rows := []models.Submission{
		{EmailHash: "h1", Artist: "a", Title: "t",
			Status: constants.SubmissionStatusApproved, CreatedAt: time.Now()},
		{EmailHash: "h2", Artist: "a", Title: "t",
			Status: constants.SubmissionStatusRejected, RejectionReason: &reason, CreatedAt: time.Now()},
		{EmailHash: "h3", Artist: "a", Title: "t",
			Status: constants.SubmissionStatusApproved, CreatedAt: time.Now().Add(-48 * time.Hour)},
	}
	for i := range rows {
		if err := env.submissions.Create(&rows[i]); err != nil {
			t.Fatalf("seed row failed: %v", err)
		}
	}

	stats, err := env.service.TodayStats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 2 || stats.Approved != 1 || stats.Rejected != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
