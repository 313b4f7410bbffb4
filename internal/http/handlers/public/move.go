package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/egzit/egzit/internal/http/handlers/shared"
	"github.com/egzit/egzit/internal/http/response"
	"github.com/egzit/egzit/internal/repository"
	"github.com/egzit/egzit/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitMoveRequest move request payload
type SubmitMoveRequest struct {
	Name            string `json:"name" binding:"required"`
	PickupAddress   string `json:"pickup_address" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	MoveDate        string `json:"move_date" binding:"required"` // YYYY-MM-DD
}

// SubmitMove files a new move request for the signed-in user.
func (h *Handler) SubmitMove(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req SubmitMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	moveDate, err := time.Parse("2006-01-02", strings.TrimSpace(req.MoveDate))
	if err != nil {
		respondError(c, response.CodeBadRequest, "move_date must be YYYY-MM-DD", nil)
		return
	}

	move, err := h.MoveService.Submit(service.SubmitMoveInput{
		UserID:          uid,
		Name:            req.Name,
		PickupAddress:   req.PickupAddress,
		DeliveryAddress: req.DeliveryAddress,
		MoveDate:        moveDate,
	})
	if err != nil {
		respondWithMappedError(c, err, moveCommonErrorRules, response.CodeInternal, "failed to submit move")
		return
	}

	response.Success(c, move)
}

// ListMyMoves lists the signed-in user's moves, optionally filtered by
// status.
func (h *Handler) ListMyMoves(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	moves, total, err := h.MoveService.ListByUser(repository.MoveListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
		MoveNo:   strings.TrimSpace(c.Query("move_no")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list moves", err)
		return
	}

	response.SuccessWithPage(c, moves, response.BuildPagination(page, pageSize, total))
}

// GetMyMove returns one of the user's moves with derived progress and
// ETA.
func (h *Handler) GetMyMove(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	moveID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || moveID == 0 {
		respondError(c, response.CodeBadRequest, "invalid move id", nil)
		return
	}

	detail, err := h.MoveService.GetDetailForUser(uint(moveID), uid)
	if err != nil {
		respondWithMappedError(c, err, moveCommonErrorRules, response.CodeInternal, "failed to load move")
		return
	}

	response.Success(c, detail)
}

// PayMoveRequest payment confirmation payload
type PayMoveRequest struct {
	Version uint64 `json:"version"`
}

// PayMove accepts the current quote and books the move.
func (h *Handler) PayMove(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	moveID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || moveID == 0 {
		respondError(c, response.CodeBadRequest, "invalid move id", nil)
		return
	}

	var req PayMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	move, err := h.MoveService.Pay(uint(moveID), uid, req.Version)
	if err != nil {
		rules := concatMappedHandlerErrors(moveCommonErrorRules, []mappedHandlerError{
			{target: service.ErrMoveQuoteRequired, code: response.CodeBadRequest, msg: "the move has no quote to accept"},
			{target: service.ErrQuoteNotFound, code: response.CodeBadRequest, msg: "the quote is no longer available"},
			{target: service.ErrQuoteExpired, code: response.CodeConflict, msg: "the quote has expired, request a new one"},
		})
		respondWithMappedError(c, err, rules, response.CodeInternal, "payment failed")
		return
	}

	response.Success(c, move)
}

// CancelMoveRequest cancellation payload
type CancelMoveRequest struct {
	Version uint64 `json:"version"`
	Reason  string `json:"reason"`
}

// CancelMyMove cancels one of the user's own moves. Only pending,
// approved and scheduled moves can be cancelled.
func (h *Handler) CancelMyMove(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	moveID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || moveID == 0 {
		respondError(c, response.CodeBadRequest, "invalid move id", nil)
		return
	}

	var req CancelMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	move, err := h.MoveService.CancelByUser(uint(moveID), uid, req.Version, req.Reason)
	if err != nil {
		respondWithMappedError(c, err, moveCommonErrorRules, response.CodeInternal, "failed to cancel move")
		return
	}

	response.Success(c, move)
}
