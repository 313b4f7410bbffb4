package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/egzit/egzit/internal/cache"
	"github.com/egzit/egzit/internal/constants"
	"github.com/egzit/egzit/internal/http/response"
	"github.com/egzit/egzit/internal/repository"
	"github.com/egzit/egzit/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// GetAdminUsers lists customer accounts.
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid created_from", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid created_to", err)
		return
	}
	lastLoginFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("last_login_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid last_login_from", err)
		return
	}
	lastLoginTo, err := parseTimeNullable(strings.TrimSpace(c.Query("last_login_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid last_login_to", err)
		return
	}

	users, total, err := h.UserRepo.List(repository.UserListFilter{
		Page:          page,
		PageSize:      pageSize,
		Keyword:       strings.TrimSpace(c.Query("keyword")),
		Status:        strings.TrimSpace(c.Query("status")),
		CreatedFrom:   createdFrom,
		CreatedTo:     createdTo,
		LastLoginFrom: lastLoginFrom,
		LastLoginTo:   lastLoginTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list users", err)
		return
	}

	response.SuccessWithPage(c, users, response.BuildPagination(page, pageSize, total))
}

// GetAdminUser returns one customer account.
func (h *Handler) GetAdminUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.UserRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load user", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "user not found", nil)
		return
	}
	response.Success(c, user)
}

// UpdateAdminUserRequest customer account patch
type UpdateAdminUserRequest struct {
	Email       *string `json:"email"`
	DisplayName *string `json:"display_name"`
	Phone       *string `json:"phone"`
	Password    *string `json:"password"`
	Status      *string `json:"status"`
}

// UpdateAdminUser patches a customer account. Disabling the account or
// resetting the password revokes every outstanding token.
func (h *Handler) UpdateAdminUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, err := h.UserRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load user", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "user not found", nil)
		return
	}

	updated := false
	revokeToken := false
	if req.Email != nil {
		normalized, err := service.NormalizeEmail(*req.Email)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid email address", nil)
			return
		}
		existing, err := h.UserRepo.GetByEmail(normalized)
		if err != nil {
			respondError(c, response.CodeInternal, "failed to update user", err)
			return
		}
		if existing != nil && existing.ID != user.ID {
			respondError(c, response.CodeBadRequest, "email is already registered", nil)
			return
		}
		if normalized != user.Email {
			user.Email = normalized
			updated = true
		}
	}
	if req.DisplayName != nil {
		trimmed := strings.TrimSpace(*req.DisplayName)
		if trimmed != "" && trimmed != user.DisplayName {
			user.DisplayName = trimmed
			updated = true
		}
	}
	if req.Phone != nil {
		trimmed := strings.TrimSpace(*req.Phone)
		if trimmed != user.Phone {
			user.Phone = trimmed
			updated = true
		}
	}
	if req.Password != nil {
		trimmed := strings.TrimSpace(*req.Password)
		if trimmed != "" {
			hashed, err := bcrypt.GenerateFromPassword([]byte(trimmed), bcrypt.DefaultCost)
			if err != nil {
				respondError(c, response.CodeInternal, "failed to update user", err)
				return
			}
			user.PasswordHash = string(hashed)
			updated = true
			revokeToken = true
		}
	}
	if req.Status != nil {
		trimmed := strings.ToLower(strings.TrimSpace(*req.Status))
		if trimmed != constants.UserStatusActive && trimmed != constants.UserStatusDisabled {
			respondError(c, response.CodeBadRequest, "status must be active or disabled", nil)
			return
		}
		if user.Status != trimmed {
			user.Status = trimmed
			updated = true
		}
		if trimmed == constants.UserStatusDisabled {
			revokeToken = true
		}
	}

	if !updated {
		respondError(c, response.CodeBadRequest, "nothing to update", nil)
		return
	}

	now := time.Now()
	user.UpdatedAt = now
	if revokeToken {
		user.TokenVersion++
		user.TokenInvalidBefore = &now
	}
	if err := h.UserRepo.Update(user); err != nil {
		respondError(c, response.CodeInternal, "failed to update user", err)
		return
	}
	_ = cache.SetUserAuthState(c.Request.Context(), cache.BuildUserAuthState(user))

	requestLog(c).Infow("admin_user_updated",
		"user_id", user.ID,
		"status", user.Status,
		"token_revoked", revokeToken,
	)
	response.Success(c, user)
}

// UpdateAdminUserStatusRequest status-only patch
type UpdateAdminUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAdminUserStatus enables or disables a customer account.
func (h *Handler) UpdateAdminUserStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateAdminUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		respondError(c, response.CodeBadRequest, "status must be active or disabled", nil)
		return
	}

	user, err := h.UserRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load user", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "user not found", nil)
		return
	}

	now := time.Now()
	user.Status = status
	user.UpdatedAt = now
	if status == constants.UserStatusDisabled {
		user.TokenVersion++
		user.TokenInvalidBefore = &now
	}
	if err := h.UserRepo.Update(user); err != nil {
		respondError(c, response.CodeInternal, "failed to update user", err)
		return
	}
	_ = cache.SetUserAuthState(c.Request.Context(), cache.BuildUserAuthState(user))

	response.Success(c, gin.H{"id": user.ID, "status": user.Status})
}
