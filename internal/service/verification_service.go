package service

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/songgate/internal/config"
	"github.com/songgate/internal/i18n"
	"github.com/songgate/internal/logger"
	"github.com/songgate/internal/models"
	"github.com/songgate/internal/queue"
	"github.com/songgate/internal/repository"
)

const (
	defaultCodeLength          = 6
	defaultCodeExpireMinutes   = 10
	defaultSendIntervalSeconds = 60
)

// VerificationService issues and redeems email ownership codes.
type VerificationService struct {
	codes       repository.VerificationCodeRepository
	emailSender EmailSender
	queueClient *queue.Client
	schoolCfg   config.SchoolConfig
	codeCfg     config.VerifyCodeConfig
}

// NewVerificationService creates a verification service. queueClient may be
// disabled; delivery then happens synchronously.
func NewVerificationService(
	codes repository.VerificationCodeRepository,
	emailSender EmailSender,
	queueClient *queue.Client,
	schoolCfg config.SchoolConfig,
	codeCfg config.VerifyCodeConfig,
) *VerificationService {
	return &VerificationService{
		codes:       codes,
		emailSender: emailSender,
		queueClient: queueClient,
		schoolCfg:   schoolCfg,
		codeCfg:     codeCfg,
	}
}

// RequestCode issues a fresh code for email and hands it to delivery.
// The code is persisted before delivery is attempted, so a slow mail
// server never loses an issued code.
func (s *VerificationService) RequestCode(email, locale string) error {
	email = NormalizeEmail(email)
	if !IsSchoolEmail(email, s.schoolCfg.EmailDomain) {
		return ErrInvalidEmail
	}

	now := time.Now()
	latest, err := s.codes.GetLatest(email)
	if err != nil {
		return err
	}
	if latest != nil && now.Sub(latest.CreatedAt) < s.sendInterval() {
		return ErrCodeTooFrequent
	}

	code, err := randomNumericCode(s.codeLength())
	if err != nil {
		return err
	}
	record := &models.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(s.expireDuration()),
		CreatedAt: now,
	}
	if err := s.codes.Create(record); err != nil {
		return err
	}

	locale = i18n.Normalize(locale)
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueVerifyCodeEmail(queue.VerifyCodeEmailPayload{
			Email:  email,
			Code:   code,
			Locale: locale,
		})
		if err == nil {
			logger.Infow("verify_code_email_enqueued", "email", email)
			return nil
		}
		logger.Warnw("verify_code_enqueue_failed_fallback_sync", "email", email, "error", err)
	}

	if err := s.DeliverCode(email, code, locale); err != nil {
		logger.Errorw("verify_code_email_send_failed", "email", email, "error", err)
		return err
	}
	logger.Infow("verify_code_email_sent", "email", email)
	return nil
}

// Redeem consumes one matching outstanding code for email exactly once.
func (s *VerificationService) Redeem(email, code string) error {
	email = NormalizeEmail(email)
	ok, err := s.codes.Redeem(email, code, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrCodeInvalid
	}
	return nil
}

// DeliverCode sends the code email. Also called by the queue worker.
func (s *VerificationService) DeliverCode(email, code, locale string) error {
	if s.emailSender == nil {
		return ErrEmailNotConfigured
	}
	return s.emailSender.SendVerifyCode(email, code, locale)
}

// ExpireMinutes exposes the configured code lifetime.
func (s *VerificationService) ExpireMinutes() int {
	if s.codeCfg.ExpireMinutes > 0 {
		return s.codeCfg.ExpireMinutes
	}
	return defaultCodeExpireMinutes
}

func (s *VerificationService) expireDuration() time.Duration {
	return time.Duration(s.ExpireMinutes()) * time.Minute
}

func (s *VerificationService) sendInterval() time.Duration {
	seconds := s.codeCfg.SendIntervalSeconds
	if seconds <= 0 {
		seconds = defaultSendIntervalSeconds
	}
	return time.Duration(seconds) * time.Second
}

func (s *VerificationService) codeLength() int {
	if s.codeCfg.Length > 0 {
		return s.codeCfg.Length
	}
	return defaultCodeLength
}

func randomNumericCode(length int) (string, error) {
	if length <= 0 {
		length = defaultCodeLength
	}
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
