package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planwise/staffing-backend/internal/services"
)

// RateHandler exposes billable-rate resolution.
type RateHandler struct {
	rateService *services.RateService
}

// NewRateHandler creates a new RateHandler
func NewRateHandler(rateService *services.RateService) *RateHandler {
	return &RateHandler{rateService: rateService}
}

// Resolve handles GET /api/v1/projects/:id/roles/:role_id/rate
func (h *RateHandler) Resolve(c *gin.Context) {
	resolution, err := h.rateService.ResolveRate(c.Param("id"), c.Param("role_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resolution)
}
