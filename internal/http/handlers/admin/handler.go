package admin

import (
	"github.com/songgate/internal/service"
)

// Handler serves the moderation endpoints behind JWT auth.
type Handler struct {
	auth        *service.AuthService
	submissions *service.SubmissionService
}

// NewHandler creates the admin handler.
func NewHandler(auth *service.AuthService, submissions *service.SubmissionService) *Handler {
	return &Handler{
		auth:        auth,
		submissions: submissions,
	}
}
