package admin

import (
	"strconv"
	"strings"

	"github.com/egzit/egzit/internal/http/response"
	"github.com/egzit/egzit/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminPerformance lists per-move performance records.
func (h *Handler) GetAdminPerformance(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var moveID uint
	if raw := strings.TrimSpace(c.Query("move_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid move_id", nil)
			return
		}
		moveID = uint(parsed)
	}

	var onTime *bool
	if raw := strings.TrimSpace(c.Query("on_time")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid on_time", nil)
			return
		}
		onTime = &parsed
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

	records, total, err := h.PerformanceRepo.List(repository.PerformanceListFilter{
		Page:        page,
		PageSize:    pageSize,
		MoveID:      moveID,
		OnTime:      onTime,
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list performance records", err)
		return
	}

	response.SuccessWithPage(c, records, response.BuildPagination(page, pageSize, total))
}

// GetAdminPerformanceSummary returns the aggregate on-time rate.
func (h *Handler) GetAdminPerformanceSummary(c *gin.Context) {
	summary, err := h.PerformanceRepo.Summary()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to build performance summary", err)
		return
	}
	response.Success(c, summary)
}
