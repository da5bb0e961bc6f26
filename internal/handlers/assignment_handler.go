package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/planwise/staffing-backend/internal/models"
	"github.com/planwise/staffing-backend/internal/services"
)

// AssignmentHandler exposes assignment writes, dry-run validation and cost
// reporting.
type AssignmentHandler struct {
	assignmentService *services.AssignmentService
	rateService       *services.RateService
}

// NewAssignmentHandler creates a new AssignmentHandler
func NewAssignmentHandler(assignmentService *services.AssignmentService, rateService *services.RateService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService, rateService: rateService}
}

// Create handles POST /api/v1/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req models.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}

	assignment, report, err := h.assignmentService.Create(&req)
	if err != nil {
		if errors.Is(err, services.ErrOverAllocationBlocked) {
			c.JSON(http.StatusConflict, gin.H{
				"error":    "over_allocation",
				"message":  err.Error(),
				"conflict": report,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"assignment": assignment,
		"conflict":   report,
	})
}

// Update handles PUT /api/v1/assignments/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	var req models.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}

	assignment, report, err := h.assignmentService.Update(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, services.ErrOverAllocationBlocked) {
			c.JSON(http.StatusConflict, gin.H{
				"error":    "over_allocation",
				"message":  err.Error(),
				"conflict": report,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignment": assignment,
		"conflict":   report,
	})
}

// Get handles GET /api/v1/assignments/:id
func (h *AssignmentHandler) Get(c *gin.Context) {
	assignment, err := h.assignmentService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// Delete handles DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.assignmentService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type validateRequest struct {
	models.AssignmentRequest
	// AssignmentID marks the request as an edit of an existing record,
	// excluded from the detection batch.
	AssignmentID string `json:"assignment_id,omitempty"`
}

// Validate handles POST /api/v1/assignments/validate. It reports the
// conflicts a candidate assignment would cause without persisting anything.
func (h *AssignmentHandler) Validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}

	report, err := h.assignmentService.Validate(&req.AssignmentRequest, req.AssignmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Cost handles GET /api/v1/assignments/:id/cost. Optional from/to query
// parameters narrow the reporting window; they default to the assignment's
// own range.
func (h *AssignmentHandler) Cost(c *gin.Context) {
	var windowStart, windowEnd time.Time
	var err error
	if raw := c.Query("from"); raw != "" {
		windowStart, err = time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation_error",
				"message": "invalid from date: use YYYY-MM-DD",
			})
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		windowEnd, err = time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation_error",
				"message": "invalid to date: use YYYY-MM-DD",
			})
			return
		}
	}

	report, err := h.rateService.AssignmentCost(c.Param("id"), windowStart, windowEnd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
