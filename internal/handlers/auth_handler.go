package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/database"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/middleware"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/services"
)

// AuthHandler handles HTTP requests for registration and login
type AuthHandler struct {
	authService *services.AuthService
	userRepo    *database.UserRepository
	logger      *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, userRepo *database.UserRepository, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err("Invalid request format"))
		return
	}

	user, tokens, err := h.authService.Register(&req)
	if err != nil {
		switch {
		case models.IsValidationError(err):
			c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		case err == services.ErrEmailTaken:
			c.JSON(http.StatusConflict, models.Err(err.Error()))
		default:
			h.logger.WithError(err).Error("Failed to register user")
			c.JSON(http.StatusInternalServerError, models.Err("Failed to register"))
		}
		return
	}

	c.JSON(http.StatusCreated, models.OKMessage("Account created", gin.H{
		"user":   user,
		"tokens": tokens,
	}))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err("Invalid request format"))
		return
	}

	user, tokens, err := h.authService.Login(&req)
	if err != nil {
		if err == services.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, models.Err(err.Error()))
			return
		}
		h.logger.WithError(err).Error("Failed to log in user")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to log in"))
		return
	}

	c.JSON(http.StatusOK, models.OK(gin.H{
		"user":   user,
		"tokens": tokens,
	}))
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err("refresh_token is required"))
		return
	}

	tokens, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		if err == services.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, models.Err("invalid refresh token"))
			return
		}
		h.logger.WithError(err).Error("Failed to refresh tokens")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to refresh tokens"))
		return
	}

	c.JSON(http.StatusOK, models.OK(tokens))
}

// GetProfile handles GET /api/v1/user/profile (protected)
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	user, err := h.userRepo.GetByID(userCtx.UserID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get profile")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to retrieve profile"))
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, models.Err("user not found"))
		return
	}

	c.JSON(http.StatusOK, models.OK(user))
}

// UpdateProfile handles PUT /api/v1/user/profile (protected)
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req struct {
		DisplayName string `json:"display_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err("display_name is required"))
		return
	}

	if err := h.userRepo.UpdateDisplayName(userCtx.UserID, req.DisplayName); err != nil {
		h.logger.WithError(err).Error("Failed to update profile")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to update profile"))
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Profile updated", nil))
}
