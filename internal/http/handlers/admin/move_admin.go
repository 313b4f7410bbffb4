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

// GetAdminMoves lists moves across all customers.
func (h *Handler) GetAdminMoves(c *gin.Context) {
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
	var moverID uint
	if raw := strings.TrimSpace(c.Query("mover_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid mover_id", nil)
			return
		}
		moverID = uint(parsed)
	}

	moveDateFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("move_date_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid move_date_from", err)
		return
	}
	moveDateTo, err := parseTimeNullable(strings.TrimSpace(c.Query("move_date_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid move_date_to", err)
		return
	}

	moves, total, err := h.MoveService.ListAdmin(repository.MoveListFilter{
		Page:            page,
		PageSize:        pageSize,
		UserID:          userID,
		Status:          strings.TrimSpace(c.Query("status")),
		MoveNo:          strings.TrimSpace(c.Query("move_no")),
		AssignedMoverID: moverID,
		MoveDateFrom:    moveDateFrom,
		MoveDateTo:      moveDateTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list moves", err)
		return
	}

	response.SuccessWithPage(c, moves, response.BuildPagination(page, pageSize, total))
}

// GetAdminMoveStatusCounts returns how many moves sit in each status.
func (h *Handler) GetAdminMoveStatusCounts(c *gin.Context) {
	counts, err := h.MoveService.StatusCounts()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to count moves", err)
		return
	}
	response.Success(c, counts)
}

// GetAdminMove returns one move with derived progress and ETA.
func (h *Handler) GetAdminMove(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	detail, err := h.MoveService.GetDetail(id)
	if err != nil {
		respondMoveError(c, err, "failed to load move")
		return
	}
	response.Success(c, detail)
}

// MoveTransitionRequest version-guarded transition payload
type MoveTransitionRequest struct {
	Version uint64 `json:"version"`
}

// ApproveMove moves a quoted move from pending to approved.
func (h *Handler) ApproveMove(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req MoveTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	move, err := h.MoveService.Approve(id, req.Version, currentActor(c))
	if err != nil {
		respondMoveError(c, err, "failed to approve move")
		return
	}

	requestLog(c).Infow("admin_move_approved", "move_id", id, "move_no", move.MoveNo)
	response.Success(c, move)
}

// ScheduleMoveRequest scheduling payload
type ScheduleMoveRequest struct {
	TimeOfDay string `json:"time_of_day" binding:"required"` // HH:MM
	MoverID   uint   `json:"mover_id" binding:"required"`
	Version   uint64 `json:"version"`
}

// ScheduleMove assigns a mover and a departure time. The route service
// is queried for the travel estimate; when it is down the configured
// default duration is used and the journal records the degradation.
func (h *Handler) ScheduleMove(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ScheduleMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	move, err := h.MoveService.Schedule(id, service.ScheduleMoveInput{
		TimeOfDay: req.TimeOfDay,
		MoverID:   req.MoverID,
		Version:   req.Version,
	}, currentActor(c))
	if err != nil {
		respondMoveError(c, err, "failed to schedule move")
		return
	}

	requestLog(c).Infow("admin_move_scheduled",
		"move_id", id,
		"mover_id", req.MoverID,
		"time_of_day", req.TimeOfDay,
	)
	response.Success(c, move)
}

// StartMove marks a scheduled move as in progress.
func (h *Handler) StartMove(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req MoveTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	move, err := h.MoveService.Start(id, req.Version, currentActor(c))
	if err != nil {
		respondMoveError(c, err, "failed to start move")
		return
	}
	response.Success(c, move)
}

// CompleteMove finishes an in-progress move and queues the performance
// record.
func (h *Handler) CompleteMove(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req MoveTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	move, err := h.MoveService.Complete(id, req.Version, currentActor(c))
	if err != nil {
		respondMoveError(c, err, "failed to complete move")
		return
	}
	response.Success(c, move)
}

// CancelMoveRequest cancellation payload
type CancelMoveRequest struct {
	Version uint64 `json:"version"`
	Reason  string `json:"reason"`
}

// CancelMove cancels a move that has not yet started.
func (h *Handler) CancelMove(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CancelMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	move, err := h.MoveService.Cancel(id, req.Version, req.Reason, currentActor(c))
	if err != nil {
		respondMoveError(c, err, "failed to cancel move")
		return
	}
	response.Success(c, move)
}

func respondMoveError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrMoveNotFound):
		respondError(c, response.CodeNotFound, "move not found", nil)
	case errors.Is(err, service.ErrMoveInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid move request", nil)
	case errors.Is(err, service.ErrMoveStatusInvalid):
		respondError(c, response.CodeBadRequest, "the move cannot change to that status", nil)
	case errors.Is(err, service.ErrMoveQuoteRequired):
		respondError(c, response.CodeBadRequest, "the move has no quote", nil)
	case errors.Is(err, service.ErrQuoteNotFound):
		respondError(c, response.CodeBadRequest, "the quote is no longer available", nil)
	case errors.Is(err, service.ErrQuoteExpired):
		respondError(c, response.CodeConflict, "the quote has expired, issue a new one first", nil)
	case errors.Is(err, service.ErrMoveScheduleInput):
		respondError(c, response.CodeBadRequest, "scheduling needs a HH:MM time and an active mover", nil)
	case errors.Is(err, service.ErrMoverNotFound):
		respondError(c, response.CodeBadRequest, "mover not found", nil)
	case errors.Is(err, service.ErrMoverInactive):
		respondError(c, response.CodeBadRequest, "mover is not active", nil)
	case errors.Is(err, service.ErrMoveVersionConflict):
		respondError(c, response.CodeConflict, "the move changed underneath you, reload and retry", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}
