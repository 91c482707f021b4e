package public

import (
	"github.com/songgate/internal/http/handlers/shared"
	"github.com/songgate/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptcha handles GET /api/captcha. Returns enabled=false when the
// code-request endpoint does not demand a captcha.
func (h *Handler) GetCaptcha(c *gin.Context) {
	if !h.captcha.Required() {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	challenge, err := h.captcha.GenerateChallenge()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":      true,
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}
