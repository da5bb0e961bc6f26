package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planwise/staffing-backend/internal/models"
)

// respondError maps the domain error taxonomy to HTTP status codes.
// ValidationError is a bad request, NotFoundError a missing resource,
// InvalidStateError a lifecycle conflict, ConfigurationFault corrupted
// reference data. Anything else is an internal error.
func respondError(c *gin.Context, err error) {
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": validation.Message,
		})
		return
	}

	var notFound *models.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": notFound.Error(),
		})
		return
	}

	var invalidState *models.InvalidStateError
	if errors.As(err, &invalidState) {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "invalid_state",
			"message": invalidState.Error(),
		})
		return
	}

	var fault *models.ConfigurationFault
	if errors.As(err, &fault) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "configuration_fault",
			"message": fault.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "internal_error",
		"message": "An unexpected error occurred",
	})
}
