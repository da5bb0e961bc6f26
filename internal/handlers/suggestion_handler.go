package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/planwise/staffing-backend/internal/services"
)

// SuggestionHandler exposes ranked staffing suggestions for a role.
type SuggestionHandler struct {
	suggestionService *services.SuggestionService
}

// NewSuggestionHandler creates a new SuggestionHandler
func NewSuggestionHandler(suggestionService *services.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

// Suggest handles GET /api/v1/roles/:id/suggestions
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	desired, err := strconv.ParseFloat(c.DefaultQuery("allocation", "100"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": "allocation must be a number",
		})
		return
	}

	var skills []string
	if raw := c.Query("skills"); raw != "" {
		for _, skill := range strings.Split(raw, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				skills = append(skills, skill)
			}
		}
	}

	suggestions, err := h.suggestionService.Suggest(c.Param("id"), from, to, desired, skills)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"role_id":     c.Param("id"),
		"suggestions": suggestions,
	})
}
