package public

import (
	"github.com/songgate/internal/config"
	"github.com/songgate/internal/service"
)

// Handler serves the student-facing endpoints.
type Handler struct {
	cfg          *config.Config
	verification *service.VerificationService
	submissions  *service.SubmissionService
	captcha      *service.CaptchaService
}

// NewHandler creates the public handler.
func NewHandler(
	cfg *config.Config,
	verification *service.VerificationService,
	submissions *service.SubmissionService,
	captcha *service.CaptchaService,
) *Handler {
	return &Handler{
		cfg:          cfg,
		verification: verification,
		submissions:  submissions,
		captcha:      captcha,
	}
}
