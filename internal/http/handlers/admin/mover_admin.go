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

// MoverRequest mover create/update payload
type MoverRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	VehicleClass string `json:"vehicle_class"`
	IsActive     *bool  `json:"is_active"`
}

// CreateMover registers a mover crew.
func (h *Handler) CreateMover(c *gin.Context) {
	var req MoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	mover, err := h.MoverService.Create(service.MoverInput{
		Name:         req.Name,
		Phone:        req.Phone,
		VehicleClass: req.VehicleClass,
		IsActive:     req.IsActive,
	})
	if err != nil {
		respondMoverError(c, err, "failed to create mover")
		return
	}
	response.Success(c, mover)
}

// UpdateMover updates a mover crew record.
func (h *Handler) UpdateMover(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req MoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	mover, err := h.MoverService.Update(id, service.MoverInput{
		Name:         req.Name,
		Phone:        req.Phone,
		VehicleClass: req.VehicleClass,
		IsActive:     req.IsActive,
	})
	if err != nil {
		respondMoverError(c, err, "failed to update mover")
		return
	}
	response.Success(c, mover)
}

// DeleteMover retires a mover crew. Past moves keep referencing it.
func (h *Handler) DeleteMover(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.MoverService.Delete(id); err != nil {
		respondMoverError(c, err, "failed to delete mover")
		return
	}
	response.Success(c, nil)
}

// GetAdminMover returns one mover.
func (h *Handler) GetAdminMover(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	mover, err := h.MoverService.GetByID(id)
	if err != nil {
		respondMoverError(c, err, "failed to load mover")
		return
	}
	response.Success(c, mover)
}

// GetAdminMovers lists mover crews including inactive ones.
func (h *Handler) GetAdminMovers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	activeOnly := strings.EqualFold(strings.TrimSpace(c.Query("active_only")), "true")

	movers, total, err := h.MoverService.List(repository.MoverListFilter{
		Page:         page,
		PageSize:     pageSize,
		Keyword:      strings.TrimSpace(c.Query("keyword")),
		VehicleClass: strings.ToLower(strings.TrimSpace(c.Query("vehicle_class"))),
		ActiveOnly:   activeOnly,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list movers", err)
		return
	}

	response.SuccessWithPage(c, movers, response.BuildPagination(page, pageSize, total))
}

func respondMoverError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrMoverNotFound):
		respondError(c, response.CodeNotFound, "mover not found", nil)
	case errors.Is(err, service.ErrMoverInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid mover data", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}
