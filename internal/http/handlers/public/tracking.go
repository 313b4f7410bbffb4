package public

import (
	"strconv"

	"github.com/egzit/egzit/internal/http/handlers/shared"
	"github.com/egzit/egzit/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetMoveTracking returns the tracking screen for one of the user's
// moves: the event journal, live crew position when fresh, and the
// derived progress, ETA and remaining distance.
func (h *Handler) GetMoveTracking(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	moveID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || moveID == 0 {
		respondError(c, response.CodeBadRequest, "invalid move id", nil)
		return
	}

	view, err := h.TrackingService.GetView(uint(moveID), uid)
	if err != nil {
		respondWithMappedError(c, err, moveCommonErrorRules, response.CodeInternal, "failed to load tracking")
		return
	}

	response.Success(c, view)
}

// ListMyMoveEvents pages through the full journal of one of the
// user's moves.
func (h *Handler) ListMyMoveEvents(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	moveID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || moveID == 0 {
		respondError(c, response.CodeBadRequest, "invalid move id", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	events, total, err := h.TrackingService.ListEventsForUser(uint(moveID), uid, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, moveCommonErrorRules, response.CodeInternal, "failed to load events")
		return
	}

	response.SuccessWithPage(c, events, response.BuildPagination(page, pageSize, total))
}
