package public

import (
	"strconv"

	"github.com/egzit/egzit/internal/http/handlers/shared"
	"github.com/egzit/egzit/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListMyLoginLogs returns the signed-in user's recent login attempts.
func (h *Handler) ListMyLoginLogs(c *gin.Context) {
	id, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)
	logs, total, err := h.UserLoginLogService.ListByUser(id, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load login history", err)
		return
	}

	response.SuccessWithPage(c, logs, response.BuildPagination(page, pageSize, total))
}
