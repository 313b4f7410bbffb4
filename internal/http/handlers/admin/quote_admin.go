package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/egzit/egzit/internal/http/response"
	"github.com/egzit/egzit/internal/repository"
	"github.com/egzit/egzit/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateQuoteRequest quote payload, six fee components
type CreateQuoteRequest struct {
	MoveID       uint            `json:"move_id" binding:"required"`
	BaseFee      decimal.Decimal `json:"base_fee"`
	DistanceFee  decimal.Decimal `json:"distance_fee"`
	WeightFee    decimal.Decimal `json:"weight_fee"`
	SpecialItems decimal.Decimal `json:"special_items"`
	Insurance    decimal.Decimal `json:"insurance"`
	Tax          decimal.Decimal `json:"tax"`
	Notes        string          `json:"notes"`
}

// CreateQuote issues a quote for a pending move. Re-quoting supersedes
// the previous quote; the old figures stay on record.
func (h *Handler) CreateQuote(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	quote, err := h.QuoteService.Create(service.CreateQuoteInput{
		MoveID:       req.MoveID,
		BaseFee:      req.BaseFee,
		DistanceFee:  req.DistanceFee,
		WeightFee:    req.WeightFee,
		SpecialItems: req.SpecialItems,
		Insurance:    req.Insurance,
		Tax:          req.Tax,
		Notes:        req.Notes,
	}, currentActor(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMoveNotFound):
			respondError(c, response.CodeNotFound, "move not found", nil)
		case errors.Is(err, service.ErrMoveStatusInvalid):
			respondError(c, response.CodeBadRequest, "quotes can only be issued while a move is pending", nil)
		case errors.Is(err, service.ErrQuoteInvalidInput):
			respondError(c, response.CodeBadRequest, "quote components must be non-negative", nil)
		default:
			respondError(c, response.CodeInternal, "failed to create quote", err)
		}
		return
	}

	requestLog(c).Infow("admin_quote_created",
		"quote_id", quote.ID,
		"move_id", req.MoveID,
		"total", quote.Total.String(),
	)
	response.Success(c, quote)
}

// GetAdminQuote returns one quote.
func (h *Handler) GetAdminQuote(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	quote, err := h.QuoteService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			respondError(c, response.CodeNotFound, "quote not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load quote", err)
		return
	}
	response.Success(c, quote)
}

// GetAdminQuotes lists quotes, optionally for one move or status.
func (h *Handler) GetAdminQuotes(c *gin.Context) {
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

	quotes, total, err := h.QuoteService.List(repository.QuoteListFilter{
		Page:     page,
		PageSize: pageSize,
		MoveID:   moveID,
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list quotes", err)
		return
	}

	response.SuccessWithPage(c, quotes, response.BuildPagination(page, pageSize, total))
}
