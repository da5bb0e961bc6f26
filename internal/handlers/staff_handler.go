package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/planwise/staffing-backend/internal/services"
)

// StaffHandler exposes read-only allocation views for one staff member.
type StaffHandler struct {
	allocationService *services.AllocationService
	conflictService   *services.ConflictService
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(allocationService *services.AllocationService, conflictService *services.ConflictService) *StaffHandler {
	return &StaffHandler{allocationService: allocationService, conflictService: conflictService}
}

// parseRange reads required from/to query parameters as YYYY-MM-DD dates.
func parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": "from is required: use YYYY-MM-DD",
		})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": "to is required: use YYYY-MM-DD",
		})
		return time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": "from must not be after to",
		})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// Conflicts handles GET /api/v1/staff/:id/conflicts
func (h *StaffHandler) Conflicts(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	report, err := h.conflictService.DetectConflicts(
		c.Param("id"), from, to, c.Query("exclude_assignment_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Allocations handles GET /api/v1/staff/:id/allocations. It returns each
// overlapping assignment's normalized month series keyed by assignment id.
func (h *StaffHandler) Allocations(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	series, err := h.allocationService.StaffAllocations(c.Param("id"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"staff_id":    c.Param("id"),
		"allocations": series,
	})
}
