package public

import (
	"errors"

	"github.com/songgate/internal/http/handlers/shared"
	"github.com/songgate/internal/http/response"
	"github.com/songgate/internal/i18n"
	"github.com/songgate/internal/service"

	"github.com/gin-gonic/gin"
)

type requestCodePayload struct {
	Email       string `json:"email" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// RequestVerifyCode handles POST /api/verify-code.
func (h *Handler) RequestVerifyCode(c *gin.Context) {
	var payload requestCodePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.captcha.Verify(payload.CaptchaID, payload.CaptchaCode); err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaRequired):
			shared.RespondError(c, response.CodeBadRequest, "error.captcha_required", nil)
		default:
			shared.RespondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
		}
		return
	}

	locale := i18n.ResolveLocale(c)
	if err := h.verification.RequestCode(payload.Email, locale); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			msg := i18n.Sprintf(locale, "error.email_invalid", h.cfg.School.EmailDomain)
			shared.RespondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		case errors.Is(err, service.ErrCodeTooFrequent):
			shared.RespondError(c, response.CodeTooManyRequests, "error.verify_code_too_frequent", nil)
		case errors.Is(err, service.ErrEmailNotConfigured):
			shared.RespondError(c, response.CodeInternal, "error.email_service_not_configured", err)
		default:
			shared.RespondError(c, response.CodeInternal, "error.email_send_failed", err)
		}
		return
	}

	msg := i18n.Sprintf(locale, "verify_code.sent", service.NormalizeEmail(payload.Email))
	response.SuccessWithMsg(c, msg, gin.H{
		"expire_minutes": h.verification.ExpireMinutes(),
	})
}
