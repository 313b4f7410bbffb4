package admin

import (
	"strconv"
	"strings"

	"github.com/egzit/egzit/internal/http/response"
	"github.com/egzit/egzit/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAuthzAuditLogs lists permission change records.
func (h *Handler) ListAuthzAuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var operatorAdminID uint
	if raw := strings.TrimSpace(c.Query("operator_admin_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid operator_admin_id", nil)
			return
		}
		operatorAdminID = uint(parsed)
	}

	var targetAdminID uint
	if raw := strings.TrimSpace(c.Query("target_admin_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid target_admin_id", nil)
			return
		}
		targetAdminID = uint(parsed)
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

	logs, total, err := h.AuthzAuditService.ListForAdmin(repository.AuthzAuditLogListFilter{
		Page:            page,
		PageSize:        pageSize,
		OperatorAdminID: operatorAdminID,
		TargetAdminID:   targetAdminID,
		Action:          strings.TrimSpace(c.Query("action")),
		Role:            strings.TrimSpace(c.Query("role")),
		Object:          strings.TrimSpace(c.Query("object")),
		Method:          strings.TrimSpace(c.Query("method")),
		CreatedFrom:     createdFrom,
		CreatedTo:       createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list audit logs", err)
		return
	}

	response.SuccessWithPage(c, logs, response.BuildPagination(page, pageSize, total))
}
