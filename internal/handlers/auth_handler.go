package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/kvenkat9889/latish-Offboarding-Module/internal/config"
	"github.com/kvenkat9889/latish-Offboarding-Module/pkg/jwt"
)

// AuthHandler issues HR session tokens against the configured admin credential
type AuthHandler struct {
	jwtService *jwt.Service
	cfg        config.AuthConfig
	logger     *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(jwtService *jwt.Service, cfg config.AuthConfig, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		jwtService: jwtService,
		cfg:        cfg,
		logger:     logger,
	}
}

// LoginRequest is the body of the HR login endpoint
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges the HR admin credential for a session token
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	if !strings.EqualFold(req.Email, h.cfg.AdminEmail) ||
		bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPasswordHash), []byte(req.Password)) != nil {
		h.logger.WithField("email", req.Email).Warn("Failed HR login attempt")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(h.cfg.AdminEmail)
	if err != nil {
		h.logger.WithError(err).Error("Failed to issue session token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": expiresAt.Unix(),
	})
}
