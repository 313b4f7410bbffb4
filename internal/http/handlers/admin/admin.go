package admin

import (
	"errors"
	"time"

	"github.com/egzit/egzit/internal/constants"
	"github.com/egzit/egzit/internal/http/handlers/shared"
	"github.com/egzit/egzit/internal/http/response"
	"github.com/egzit/egzit/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest admin login payload
type LoginRequest struct {
	Username       string                       `json:"username" binding:"required"`
	Password       string                       `json:"password" binding:"required"`
	CaptchaPayload shared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// LoginResponse admin login result
type LoginResponse struct {
	Token     string                 `json:"token"`
	User      map[string]interface{} `json:"user"`
	ExpiresAt string                 `json:"expires_at"`
}

// AdminLogin authenticates a backoffice operator.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if h.CaptchaService != nil {
		if captchaErr := h.CaptchaService.Verify(constants.CaptchaSceneAdminLogin, req.CaptchaPayload.ToServicePayload()); captchaErr != nil {
			switch {
			case errors.Is(captchaErr, service.ErrCaptchaRequired):
				respondError(c, response.CodeBadRequest, "captcha is required", nil)
			case errors.Is(captchaErr, service.ErrCaptchaInvalid):
				respondError(c, response.CodeBadRequest, "captcha verification failed", nil)
			default:
				respondError(c, response.CodeInternal, "captcha verification failed", captchaErr)
			}
			return
		}
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "invalid username or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}

	response.Success(c, LoginResponse{
		Token: token,
		User: map[string]interface{}{
			"id":       admin.ID,
			"username": admin.Username,
			"is_super": admin.IsSuper,
		},
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// GetCurrentAdmin returns the signed-in operator's profile.
func (h *Handler) GetCurrentAdmin(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}

	admin, err := h.AdminRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load profile", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "admin not found", nil)
		return
	}

	response.Success(c, gin.H{
		"id":            admin.ID,
		"username":      admin.Username,
		"is_super":      admin.IsSuper,
		"last_login_at": admin.LastLoginAt,
		"created_at":    admin.CreatedAt,
	})
}

// UpdatePasswordRequest password change payload
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword rotates the operator's password and revokes old
// tokens.
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.AuthService.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "current password is incorrect", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "admin not found", nil)
		default:
			respondError(c, response.CodeInternal, "failed to change password", err)
		}
		return
	}

	response.Success(c, nil)
}
