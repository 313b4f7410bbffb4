package admin

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/egzit/egzit/internal/cache"
	"github.com/egzit/egzit/internal/http/response"
	"github.com/egzit/egzit/internal/logger"
	"github.com/egzit/egzit/internal/models"
	"github.com/egzit/egzit/internal/service"

	"github.com/gin-gonic/gin"
)

const protectedSuperAdminUsername = "admin"

type authzCreateAdminPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	IsSuper  *bool  `json:"is_super"`
}

type authzUpdateAdminPayload struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	IsSuper  *bool   `json:"is_super"`
}

// CreateAuthzAdmin creates an operator account.
func (h *Handler) CreateAuthzAdmin(c *gin.Context) {
	var req authzCreateAdminPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	username, err := normalizeAdminUsername(req.Username)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid username", err)
		return
	}
	password := strings.TrimSpace(req.Password)
	if password == "" {
		respondError(c, response.CodeBadRequest, "password is required", nil)
		return
	}

	existing, err := h.AdminRepo.GetByUsername(username)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to create admin", err)
		return
	}
	if existing != nil {
		respondError(c, response.CodeBadRequest, "username is taken", nil)
		return
	}

	if err := h.AuthService.ValidatePassword(password); err != nil {
		if errors.Is(err, service.ErrWeakPassword) {
			respondError(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondError(c, response.CodeBadRequest, "password does not meet the policy", err)
		return
	}

	hash, err := h.AuthService.HashPassword(password)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to create admin", err)
		return
	}

	isSuper := req.IsSuper != nil && *req.IsSuper
	if strings.EqualFold(username, protectedSuperAdminUsername) {
		isSuper = true
	}

	adminRow := &models.Admin{
		Username:     username,
		PasswordHash: hash,
		IsSuper:      isSuper,
	}
	if err := h.AdminRepo.Create(adminRow); err != nil {
		respondError(c, response.CodeInternal, "failed to create admin", err)
		return
	}

	_ = cache.SetAdminAuthState(c.Request.Context(), cache.BuildAdminAuthState(adminRow))

	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{
		OperatorAdminID:  currentAdminID(c),
		OperatorUsername: currentUsername(c),
		TargetAdminID:    &adminRow.ID,
		TargetUsername:   adminRow.Username,
		Action:           "admin_create",
		RequestID:        currentRequestID(c),
		Detail: models.JSON{
			"target_admin_id": adminRow.ID,
			"target_username": adminRow.Username,
			"is_super":        adminRow.IsSuper,
		},
	})

	logger.Infow("admin_authz_admin_created",
		"operator_admin_id", currentAdminID(c),
		"target_admin_id", adminRow.ID,
		"target_username", adminRow.Username,
		"is_super", adminRow.IsSuper,
	)

	response.Success(c, adminRow)
}

// UpdateAuthzAdmin updates an operator account. Password changes
// revoke outstanding tokens.
func (h *Handler) UpdateAuthzAdmin(c *gin.Context) {
	adminID, ok := parseIDParam(c)
	if !ok {
		return
	}

	adminRow, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to update admin", err)
		return
	}
	if adminRow == nil {
		respondError(c, response.CodeBadRequest, "admin not found", nil)
		return
	}

	var req authzUpdateAdminPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	updatedFields := make([]string, 0, 3)

	if req.Username != nil {
		normalizedUsername, err := normalizeAdminUsername(*req.Username)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid username", err)
			return
		}
		if normalizedUsername != adminRow.Username {
			existing, err := h.AdminRepo.GetByUsername(normalizedUsername)
			if err != nil {
				respondError(c, response.CodeInternal, "failed to update admin", err)
				return
			}
			if existing != nil && existing.ID != adminRow.ID {
				respondError(c, response.CodeBadRequest, "username is taken", nil)
				return
			}
			adminRow.Username = normalizedUsername
			updatedFields = append(updatedFields, "username")
		}
	}

	if req.IsSuper != nil {
		nextIsSuper := *req.IsSuper
		if strings.EqualFold(strings.TrimSpace(adminRow.Username), protectedSuperAdminUsername) {
			nextIsSuper = true
		}
		if adminRow.IsSuper != nextIsSuper {
			adminRow.IsSuper = nextIsSuper
			updatedFields = append(updatedFields, "is_super")
		}
	}

	if req.Password != nil {
		password := strings.TrimSpace(*req.Password)
		if password == "" {
			respondError(c, response.CodeBadRequest, "password is required", nil)
			return
		}
		if err := h.AuthService.ValidatePassword(password); err != nil {
			if errors.Is(err, service.ErrWeakPassword) {
				respondError(c, response.CodeBadRequest, err.Error(), nil)
				return
			}
			respondError(c, response.CodeBadRequest, "password does not meet the policy", err)
			return
		}
		hash, err := h.AuthService.HashPassword(password)
		if err != nil {
			respondError(c, response.CodeInternal, "failed to update admin", err)
			return
		}
		adminRow.PasswordHash = hash
		now := time.Now()
		adminRow.TokenVersion++
		adminRow.TokenInvalidBefore = &now
		updatedFields = append(updatedFields, "password")
	}

	if len(updatedFields) == 0 {
		respondError(c, response.CodeBadRequest, "nothing to update", nil)
		return
	}

	if err := h.AdminRepo.Update(adminRow); err != nil {
		respondError(c, response.CodeInternal, "failed to update admin", err)
		return
	}
	_ = cache.SetAdminAuthState(c.Request.Context(), cache.BuildAdminAuthState(adminRow))

	sort.Strings(updatedFields)
	if currentAdminID(c) == adminRow.ID {
		c.Set("admin_is_super", adminRow.IsSuper)
	}

	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{
		OperatorAdminID:  currentAdminID(c),
		OperatorUsername: currentUsername(c),
		TargetAdminID:    &adminRow.ID,
		TargetUsername:   adminRow.Username,
		Action:           "admin_update",
		RequestID:        currentRequestID(c),
		Detail: models.JSON{
			"target_admin_id": adminRow.ID,
			"target_username": adminRow.Username,
			"updated_fields":  updatedFields,
			"is_super":        adminRow.IsSuper,
		},
	})

	logger.Infow("admin_authz_admin_updated",
		"operator_admin_id", currentAdminID(c),
		"target_admin_id", adminRow.ID,
		"target_username", adminRow.Username,
		"updated_fields", updatedFields,
	)

	response.Success(c, adminRow)
}

// DeleteAuthzAdmin removes an operator account. The protected super
// account, the caller's own account and the last remaining account
// cannot be deleted.
func (h *Handler) DeleteAuthzAdmin(c *gin.Context) {
	adminID, ok := parseIDParam(c)
	if !ok {
		return
	}

	adminRow, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to delete admin", err)
		return
	}
	if adminRow == nil {
		respondError(c, response.CodeBadRequest, "admin not found", nil)
		return
	}
	if currentAdminID(c) == adminID {
		respondError(c, response.CodeBadRequest, "cannot delete your own account", nil)
		return
	}
	if strings.EqualFold(strings.TrimSpace(adminRow.Username), protectedSuperAdminUsername) {
		respondError(c, response.CodeBadRequest, "this account is protected", nil)
		return
	}

	count, err := h.AdminRepo.Count()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to delete admin", err)
		return
	}
	if count <= 1 {
		respondError(c, response.CodeBadRequest, "cannot delete the last admin", nil)
		return
	}

	if err := h.AuthzService.SetAdminRoles(adminID, []string{}); err != nil {
		respondError(c, response.CodeInternal, "failed to delete admin", err)
		return
	}
	if err := h.AdminRepo.Delete(adminID); err != nil {
		respondError(c, response.CodeInternal, "failed to delete admin", err)
		return
	}
	_ = cache.DelAdminAuthState(c.Request.Context(), adminID)

	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{
		OperatorAdminID:  currentAdminID(c),
		OperatorUsername: currentUsername(c),
		TargetAdminID:    &adminID,
		TargetUsername:   adminRow.Username,
		Action:           "admin_delete",
		RequestID:        currentRequestID(c),
		Detail: models.JSON{
			"target_admin_id": adminID,
			"target_username": adminRow.Username,
		},
	})

	logger.Infow("admin_authz_admin_deleted",
		"operator_admin_id", currentAdminID(c),
		"target_admin_id", adminID,
		"target_username", adminRow.Username,
	)

	response.Success(c, nil)
}

func normalizeAdminUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return "", fmt.Errorf("username is required")
	}
	if strings.ContainsAny(trimmed, " \t\r\n") {
		return "", fmt.Errorf("username contains whitespace")
	}
	length := len([]rune(trimmed))
	if length < 3 || length > 64 {
		return "", fmt.Errorf("username length out of range")
	}
	return trimmed, nil
}
