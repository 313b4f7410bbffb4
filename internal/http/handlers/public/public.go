package public

import (
	"strconv"
	"strings"

	"github.com/egzit/egzit/internal/http/handlers/shared"
	"github.com/egzit/egzit/internal/http/response"
	"github.com/egzit/egzit/internal/repository"

	"github.com/gin-gonic/gin"
)

// Health liveness probe
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

// ListActiveMovers lists the active mover directory so customers can
// see which crews operate before filing a move.
func (h *Handler) ListActiveMovers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	movers, total, err := h.MoverService.List(repository.MoverListFilter{
		Page:         page,
		PageSize:     pageSize,
		Keyword:      strings.TrimSpace(c.Query("keyword")),
		VehicleClass: strings.ToLower(strings.TrimSpace(c.Query("vehicle_class"))),
		ActiveOnly:   true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list movers", err)
		return
	}

	response.SuccessWithPage(c, movers, response.BuildPagination(page, pageSize, total))
}
