package admin

import (
	"strconv"
	"strings"

	"github.com/egzit/egzit/internal/http/response"
	"github.com/egzit/egzit/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminUserLoginLogs lists login attempts across all users.
func (h *Handler) GetAdminUserLoginLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var userID uint
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid user_id", nil)
			return
		}
		userID = uint(parsed)
	}

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

	logs, total, err := h.UserLoginLogService.ListForAdmin(repository.UserLoginLogListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      userID,
		Email:       strings.TrimSpace(c.Query("email")),
		Status:      strings.TrimSpace(c.Query("status")),
		FailReason:  strings.TrimSpace(c.Query("fail_reason")),
		ClientIP:    strings.TrimSpace(c.Query("client_ip")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list login logs", err)
		return
	}

	response.SuccessWithPage(c, logs, response.BuildPagination(page, pageSize, total))
}
