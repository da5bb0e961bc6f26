package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/planwise/staffing-backend/internal/config"
	"github.com/planwise/staffing-backend/pkg/jwt"
)

// AuthHandler issues service tokens to known clients. Credentials are
// client id plus secret, checked against a bcrypt hash from configuration.
type AuthHandler struct {
	auth       config.AuthConfig
	jwtService *jwt.Service
	logger     *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth config.AuthConfig, jwtService *jwt.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, jwtService: jwtService, logger: logger}
}

type tokenRequest struct {
	ClientID     string `json:"client_id" binding:"required"`
	ClientSecret string `json:"client_secret" binding:"required"`
}

// Token handles POST /api/v1/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": "client_id and client_secret are required",
		})
		return
	}

	if req.ClientID != h.auth.ClientID ||
		bcrypt.CompareHashAndPassword([]byte(h.auth.ClientSecretHash), []byte(req.ClientSecret)) != nil {
		h.logger.WithField("client_id", req.ClientID).Warn("Rejected token request")
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": "Invalid client credentials",
		})
		return
	}

	token, err := h.jwtService.GenerateServiceToken(req.ClientID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to sign service token")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to issue token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(h.jwtService.TokenExpiry().Seconds()),
	})
}
