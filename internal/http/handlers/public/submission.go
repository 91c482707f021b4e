package public

import (
	"errors"

	"github.com/songgate/internal/http/handlers/shared"
	"github.com/songgate/internal/http/response"
	"github.com/songgate/internal/i18n"
	"github.com/songgate/internal/service"

	"github.com/gin-gonic/gin"
)

type submitPayload struct {
	Email  string `json:"email" binding:"required"`
	Code   string `json:"code" binding:"required"`
	Artist string `json:"artist" binding:"required"`
	Title  string `json:"title" binding:"required"`
}

// SubmitSong handles POST /api/submissions.
func (h *Handler) SubmitSong(c *gin.Context) {
	var payload submitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.missing_fields", err)
		return
	}

	locale := i18n.ResolveLocale(c)
	result, err := h.submissions.Submit(c.Request.Context(), service.SubmitInput{
		Email:  payload.Email,
		Code:   payload.Code,
		Artist: payload.Artist,
		Title:  payload.Title,
	})
	if err != nil {
		h.respondSubmitError(c, locale, err)
		return
	}

	response.SuccessWithMsg(c, i18n.T(locale, "submit.success"), gin.H{
		"track": result.Track,
	})
}

func (h *Handler) respondSubmitError(c *gin.Context, locale string, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		shared.RespondError(c, response.CodeBadRequest, "error.missing_fields", nil)
	case errors.Is(err, service.ErrInvalidEmail):
		msg := i18n.Sprintf(locale, "error.email_invalid", h.cfg.School.EmailDomain)
		shared.RespondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
	case errors.Is(err, service.ErrCodeInvalid):
		shared.RespondError(c, response.CodeBadRequest, "error.verify_code_invalid", nil)
	case errors.Is(err, service.ErrRateLimited):
		msg := i18n.Sprintf(locale, "error.rate_limited",
			h.cfg.Submission.MaxPerWindow, h.cfg.Submission.WindowDays)
		shared.RespondErrorWithMsg(c, response.CodeTooManyRequests, msg, nil)
	case errors.Is(err, service.ErrVulgarArtist):
		shared.RespondError(c, response.CodeUnprocessable, "error.vulgar_artist", nil)
	case errors.Is(err, service.ErrVulgarTitle):
		shared.RespondError(c, response.CodeUnprocessable, "error.vulgar_title", nil)
	case errors.Is(err, service.ErrTrackNotFound):
		shared.RespondError(c, response.CodeNotFound, "error.track_not_found", nil)
	case errors.Is(err, service.ErrExplicitContent):
		shared.RespondError(c, response.CodeUnprocessable, "error.explicit_content", nil)
	case errors.Is(err, service.ErrPlaylistAppend):
		shared.RespondError(c, response.CodeInternal, "error.playlist_append_failed", err)
	case errors.Is(err, service.ErrCatalogUnavailable):
		shared.RespondError(c, response.CodeInternal, "error.catalog_unavailable", err)
	default:
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
	}
}
