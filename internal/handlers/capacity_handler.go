package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planwise/staffing-backend/internal/models"
	"github.com/planwise/staffing-backend/internal/services"
)

// CapacityHandler exposes capacity planning for planning exercises.
type CapacityHandler struct {
	capacityService *services.CapacityService
}

// NewCapacityHandler creates a new CapacityHandler
func NewCapacityHandler(capacityService *services.CapacityService) *CapacityHandler {
	return &CapacityHandler{capacityService: capacityService}
}

// Plan handles GET /api/v1/planning-exercises/:id/plan?mode=efficient|conservative
func (h *CapacityHandler) Plan(c *gin.Context) {
	mode, err := models.ParseOverlapMode(c.DefaultQuery("mode", string(models.OverlapModeEfficient)))
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.capacityService.Plan(c.Param("id"), mode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
