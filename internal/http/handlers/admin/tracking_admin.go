package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/egzit/egzit/internal/http/response"
	"github.com/egzit/egzit/internal/repository"
	"github.com/egzit/egzit/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminMoveTracking returns the tracking view for any move.
func (h *Handler) GetAdminMoveTracking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.TrackingService.GetAdminView(id)
	if err != nil {
		if errors.Is(err, service.ErrMoveNotFound) {
			respondError(c, response.CodeNotFound, "move not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load tracking", err)
		return
	}
	response.Success(c, view)
}

// ReportPositionRequest crew position payload
type ReportPositionRequest struct {
	Lat float64 `json:"lat" binding:"required"`
	Lng float64 `json:"lng" binding:"required"`
}

// ReportMovePosition records a crew GPS ping for an in-transit move.
// The ping updates the live position and appends a journal entry but
// never bumps the move version.
func (h *Handler) ReportMovePosition(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ReportPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.TrackingService.ReportPosition(id, req.Lat, req.Lng, currentActor(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrMoveNotFound):
			respondError(c, response.CodeNotFound, "move not found", nil)
		case errors.Is(err, service.ErrTrackingPositionInvalid):
			respondError(c, response.CodeBadRequest, "invalid GPS coordinates", nil)
		case errors.Is(err, service.ErrTrackingNotInTransit):
			respondError(c, response.CodeBadRequest, "the move is not in transit", nil)
		default:
			respondError(c, response.CodeInternal, "failed to record position", err)
		}
		return
	}

	response.Success(c, gin.H{"recorded": true})
}

// GetAdminTrackingEvents lists journal entries across moves.
func (h *Handler) GetAdminTrackingEvents(c *gin.Context) {
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

	events, total, err := h.TrackingService.ListEvents(repository.TrackingEventListFilter{
		Page:      page,
		PageSize:  pageSize,
		MoveID:    moveID,
		EventType: strings.TrimSpace(c.Query("event_type")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list tracking events", err)
		return
	}

	response.SuccessWithPage(c, events, response.BuildPagination(page, pageSize, total))
}
