package admin

import (
	"errors"

	"github.com/songgate/internal/http/handlers/shared"
	"github.com/songgate/internal/http/response"
	"github.com/songgate/internal/service"

	"github.com/gin-gonic/gin"
)

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/admin/login.
func (h *Handler) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	admin, token, expiresAt, err := h.auth.Login(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			shared.RespondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
			return
		}
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	shared.RequestLog(c).Infow("admin_login", "admin_id", admin.ID, "username", admin.Username)
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
		},
	})
}

// Me handles GET /api/admin/me.
func (h *Handler) Me(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	admin, err := h.auth.GetAdmin(claims.AdminID)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if admin == nil {
		shared.RespondError(c, response.CodeUnauthorized, "error.token_invalid", nil)
		return
	}
	response.Success(c, gin.H{
		"id":            admin.ID,
		"username":      admin.Username,
		"last_login_at": admin.LastLoginAt,
	})
}

func currentClaims(c *gin.Context) (*service.JWTClaims, bool) {
	value, ok := c.Get("admin_claims")
	if !ok {
		return nil, false
	}
	claims, ok := value.(*service.JWTClaims)
	return claims, ok
}
