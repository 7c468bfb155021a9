package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hearthloaf/hearthloaf/internal/auth"
	"github.com/hearthloaf/hearthloaf/internal/middleware"
	"github.com/hearthloaf/hearthloaf/internal/models"
	"github.com/hearthloaf/hearthloaf/internal/services"
)

// AuthHandler handles authentication and account endpoints
type AuthHandler struct {
	container *services.Container
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(container *services.Container) *AuthHandler {
	return &AuthHandler{
		container: container,
	}
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(http.StatusBadRequest,
			"Bad Request", err.Error(), c.Request.URL.Path))
		return
	}

	userRepo := h.container.GetUserRepository()

	user, err := userRepo.GetByUsername(c.Request.Context(), req.Username)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(http.StatusUnauthorized,
			"Unauthorized", models.ErrInvalidCredentials.Error(), c.Request.URL.Path))
		return
	}

	ok, err := h.container.GetPasswordHasher().VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(http.StatusUnauthorized,
			"Unauthorized", models.ErrInvalidCredentials.Error(), c.Request.URL.Path))
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(http.StatusUnauthorized,
			"Unauthorized", "Account is disabled", c.Request.URL.Path))
		return
	}

	tokenString, expiresAt, err := h.container.GetJWTManager().GenerateToken(user)
	if err != nil {
		h.container.GetLogger().Errorf("Failed to generate JWT: %v", err)
		c.JSON(http.StatusInternalServerError, models.NewAPIError(http.StatusInternalServerError,
			"Internal Server Error", "Failed to generate authentication token", c.Request.URL.Path))
		return
	}

	if err := userRepo.UpdateLastLogin(c.Request.Context(), user.ID, time.Now()); err != nil {
		h.container.GetLogger().Warnf("Failed to update last login time: %v", err)
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		AccessToken: tokenString,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(expiresAt).Seconds()),
		User:        user,
	})
}

// RefreshToken exchanges a still-valid token for a fresh one
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(http.StatusBadRequest,
			"Bad Request", err.Error(), c.Request.URL.Path))
		return
	}

	tokenString, expiresAt, err := h.container.GetJWTManager().RefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(http.StatusUnauthorized,
			"Unauthorized", "Invalid or expired token", c.Request.URL.Path))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": tokenString,
		"token_type":   "Bearer",
		"expires_in":   int(time.Until(expiresAt).Seconds()),
	})
}

// Me returns the authenticated caller's account record
func (h *AuthHandler) Me(c *gin.Context) {
	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(http.StatusUnauthorized,
			"Unauthorized", models.ErrUserNotFound.Error(), c.Request.URL.Path))
		return
	}

	user, err := h.container.GetUserRepository().GetByID(c.Request.Context(), current.ID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, models.NewAPIError(http.StatusNotFound,
			"Not Found", models.ErrUserNotFound.Error(), c.Request.URL.Path))
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser provisions a new account. Admin only; the route carries
// AdminRequired.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req models.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(http.StatusBadRequest,
			"Bad Request", err.Error(), c.Request.URL.Path))
		return
	}

	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		apiErr := models.NewAPIError(http.StatusBadRequest,
			"Bad Request", "Password does not meet requirements", c.Request.URL.Path)
		apiErr.AddValidationError("password", "weak_password", err.Error())
		c.JSON(http.StatusBadRequest, apiErr)
		return
	}

	userRepo := h.container.GetUserRepository()

	existing, err := userRepo.GetByUsername(c.Request.Context(), req.Username)
	if err == nil && existing != nil {
		c.JSON(http.StatusConflict, models.NewAPIError(http.StatusConflict,
			"Conflict", models.ErrUserAlreadyExists.Error(), c.Request.URL.Path))
		return
	}

	hash, err := h.container.GetPasswordHasher().HashPassword(req.Password)
	if err != nil {
		h.container.GetLogger().Errorf("Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, models.NewAPIError(http.StatusInternalServerError,
			"Internal Server Error", "Failed to create user", c.Request.URL.Path))
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      req.IsAdmin,
	}
	if err := userRepo.Create(c.Request.Context(), user); err != nil {
		h.container.GetLogger().Errorf("Failed to create user: %v", err)
		c.JSON(http.StatusInternalServerError, models.NewAPIError(http.StatusInternalServerError,
			"Internal Server Error", "Failed to create user", c.Request.URL.Path))
		return
	}

	c.JSON(http.StatusCreated, user)
}
