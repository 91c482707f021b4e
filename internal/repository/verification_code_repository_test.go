package repository

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/songgate/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.VerificationCode{}, &models.Submission{}); err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}
	return db
}

func TestRedeemConsumesCodeOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVerificationCodeRepository(db)
	now := time.Now()

	code := &models.VerificationCode{
		Email:     "uczen@zspbytow.pl",
		Code:      "482913",
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: now,
	}
	if err := repo.Create(code); err != nil {
		t.Fatalf("create code failed: %v", err)
	}

	ok, err := repo.Redeem("uczen@zspbytow.pl", "482913", now)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected first redeem to succeed")
	}

	ok, err = repo.Redeem("uczen@zspbytow.pl", "482913", now)
	if err != nil {
		t.Fatalf("second redeem failed: %v", err)
	}
	if ok {
		t.Fatalf("expected second redeem to fail")
	}
}

func TestRedeemConcurrentCallsConsumeCodeOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVerificationCodeRepository(db)
	now := time.Now()

	if err := repo.Create(&models.VerificationCode{
		Email:     "uczen@zspbytow.pl",
		Code:      "482913",
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: now,
	}); err != nil {
		t.Fatalf("create code failed: %v", err)
	}

	const workers = 16
	var wg sync.WaitGroup
	var successes int32
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Redeem("uczen@zspbytow.pl", "482913", now)
			if err != nil {
				t.Errorf("redeem failed: %v", err)
				return
			}
			if ok {
				atomic.AddInt32(&successes, 1)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&successes); got != 1 {
		t.Fatalf("expected exactly one successful redeem, got %d", got)
	}
}

func TestRedeemRejectsWrongAndExpiredCodes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVerificationCodeRepository(db)
	now := time.Now()

	if err := repo.Create(&models.VerificationCode{
		Email:     "uczen@zspbytow.pl",
		Code:      "111111",
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: now,
	}); err != nil {
		t.Fatalf("create code failed: %v", err)
	}

	ok, err := repo.Redeem("uczen@zspbytow.pl", "222222", now)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if ok {
		t.Fatalf("wrong code must not redeem")
	}

	ok, err = repo.Redeem("uczen@zspbytow.pl", "111111", now.Add(11*time.Minute))
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if ok {
		t.Fatalf("expired code must not redeem")
	}

	ok, err = repo.Redeem("nieznany@zspbytow.pl", "111111", now)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if ok {
		t.Fatalf("unknown email must not redeem")
	}
}

func TestRedeemOutstandingCodesIndependently(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVerificationCodeRepository(db)
	now := time.Now()

	if err := repo.Create(&models.VerificationCode{
		Email:     "uczen@zspbytow.pl",
		Code:      "111111",
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: now.Add(-time.Minute),
	}); err != nil {
		t.Fatalf("create old code failed: %v", err)
	}
	if err := repo.Create(&models.VerificationCode{
		Email:     "uczen@zspbytow.pl",
		Code:      "222222",
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: now,
	}); err != nil {
		t.Fatalf("create new code failed: %v", err)
	}

	ok, err := repo.Redeem("uczen@zspbytow.pl", "111111", now)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if !ok {
		t.Fatalf("older outstanding code should still redeem")
	}

	ok, err = repo.Redeem("uczen@zspbytow.pl", "222222", now)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if !ok {
		t.Fatalf("newest code should redeem")
	}
}

func TestRedeemDuplicateCodeConsumesOneRecordPerCall(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVerificationCodeRepository(db)
	now := time.Now()

	for i := 0; i < 2; i++ {
		if err := repo.Create(&models.VerificationCode{
			Email:     "uczen@zspbytow.pl",
			Code:      "333333",
			ExpiresAt: now.Add(10 * time.Minute),
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("create code failed: %v", err)
		}
	}

	for i := 0; i < 2; i++ {
		ok, err := repo.Redeem("uczen@zspbytow.pl", "333333", now)
		if err != nil {
			t.Fatalf("redeem %d failed: %v", i, err)
		}
		if !ok {
			t.Fatalf("redeem %d should consume one record", i)
		}
	}

	ok, err := repo.Redeem("uczen@zspbytow.pl", "333333", now)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if ok {
		t.Fatalf("all records consumed, redeem must fail")
	}
}

func TestGetLatestReturnsNewestRecord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVerificationCodeRepository(db)
	now := time.Now()

	latest, err := repo.GetLatest("uczen@zspbytow.pl")
	if err != nil {
		t.Fatalf("get latest failed: %v", err)
	}
	if latest != nil {
		t.Fatalf("expected nil for unknown email")
	}

	for i, code := range []string{"111111", "222222"} {
		if err := repo.Create(&models.VerificationCode{
			Email:     "uczen@zspbytow.pl",
			Code:      code,
			ExpiresAt: now.Add(10 * time.Minute),
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("create code failed: %v", err)
		}
	}

	latest, err = repo.GetLatest("uczen@zspbytow.pl")
	if err != nil {
		t.Fatalf("get latest failed: %v", err)
	}
	if latest == nil || latest.Code != "222222" {
		t.Fatalf("expected newest code, got=%+v", latest)
	}
}
