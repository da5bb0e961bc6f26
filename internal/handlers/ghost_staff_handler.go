package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planwise/staffing-backend/internal/database"
	"github.com/planwise/staffing-backend/internal/models"
	"github.com/planwise/staffing-backend/internal/services"
)

// GhostStaffHandler exposes the placeholder lifecycle.
type GhostStaffHandler struct {
	ghostService *services.GhostStaffService
	ghostRepo    *database.GhostStaffRepository
}

// NewGhostStaffHandler creates a new GhostStaffHandler
func NewGhostStaffHandler(ghostService *services.GhostStaffService, ghostRepo *database.GhostStaffRepository) *GhostStaffHandler {
	return &GhostStaffHandler{ghostService: ghostService, ghostRepo: ghostRepo}
}

// ApplyTemplate handles POST /api/v1/projects/:id/apply-template
func (h *GhostStaffHandler) ApplyTemplate(c *gin.Context) {
	var req models.ApplyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": "template_id is required",
		})
		return
	}

	ghosts, err := h.ghostService.ApplyTemplate(c.Param("id"), req.TemplateID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"project_id":  c.Param("id"),
		"ghost_staff": ghosts,
	})
}

// ListByProject handles GET /api/v1/projects/:id/ghost-staff
func (h *GhostStaffHandler) ListByProject(c *gin.Context) {
	ghosts, err := h.ghostRepo.GetByProjectID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"project_id":  c.Param("id"),
		"ghost_staff": ghosts,
	})
}

// Replace handles POST /api/v1/ghost-staff/:id/replace
func (h *GhostStaffHandler) Replace(c *gin.Context) {
	var req models.ReplaceGhostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": "staff_id is required",
		})
		return
	}

	assignment, err := h.ghostService.Replace(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"assignment": assignment})
}

// Delete handles DELETE /api/v1/ghost-staff/:id
func (h *GhostStaffHandler) Delete(c *gin.Context) {
	if err := h.ghostService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
