package service

import (
	"strings"
	"time"

	"github.com/songgate/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaChallenge is an image captcha handed to the frontend.
type CaptchaChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService issues and verifies digit image captchas for the
// code-request endpoint.
type CaptchaService struct {
	cfg   config.CaptchaConfig
	store base64Captcha.Store
}

// NewCaptchaService creates a captcha service.
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	maxStore := cfg.MaxStore
	if maxStore <= 0 {
		maxStore = 10240
	}
	expireSeconds := cfg.ExpireSeconds
	if expireSeconds <= 0 {
		expireSeconds = 300
	}
	return &CaptchaService{
		cfg:   cfg,
		store: base64Captcha.NewMemoryStore(maxStore, time.Duration(expireSeconds)*time.Second),
	}
}

// Required reports whether the code-request endpoint demands a captcha.
func (s *CaptchaService) Required() bool {
	return s != nil && s.cfg.Enabled
}

// GenerateChallenge creates a new digit captcha.
func (s *CaptchaService) GenerateChallenge() (*CaptchaChallenge, error) {
	length := s.cfg.Length
	if length <= 0 {
		length = 4
	}
	width := s.cfg.Width
	if width <= 0 {
		width = 240
	}
	height := s.cfg.Height
	if height <= 0 {
		height = 80
	}
	driver := base64Captcha.NewDriverDigit(height, width, length, 0.7, 80)
	captcha := base64Captcha.NewCaptcha(driver, s.store)
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify checks and consumes a captcha answer. A no-op when disabled.
func (s *CaptchaService) Verify(captchaID, captchaCode string) error {
	if !s.Required() {
		return nil
	}
	captchaID = strings.TrimSpace(captchaID)
	captchaCode = strings.TrimSpace(captchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}
	if !s.store.Verify(captchaID, captchaCode, true) {
		return ErrCaptchaInvalid
	}
	return nil
}
