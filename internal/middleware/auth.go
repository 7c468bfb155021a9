package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hearthloaf/hearthloaf/internal/auth"
	"github.com/hearthloaf/hearthloaf/internal/models"
)

// AuthRequired creates a middleware that requires a valid bearer token
func AuthRequired(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromRequest(c, jwtManager)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.NewAPIError(http.StatusUnauthorized,
				"Unauthorized", "A valid bearer token is required", c.Request.URL.Path))
			c.Abort()
			return
		}

		setUserContext(c, claims)
		c.Next()
	}
}

// OptionalAuth creates a middleware that authenticates users when a valid
// token is present and passes anonymous requests through unchanged
func OptionalAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := claimsFromRequest(c, jwtManager); ok {
			setUserContext(c, claims)
		}
		c.Next()
	}
}

// AdminRequired creates a middleware that requires admin privileges. It must
// run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists || !isAdmin.(bool) {
			c.JSON(http.StatusForbidden, models.NewAPIError(http.StatusForbidden,
				"Forbidden", "Admin privileges required", c.Request.URL.Path))
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCurrentUserID retrieves the authenticated user ID from the Gin
// context. Anonymous requests yield zero.
func GetCurrentUserID(c *gin.Context) int64 {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	return userID.(int64)
}

// GetCurrentUser retrieves the current user from the Gin context
func GetCurrentUser(c *gin.Context) (*models.User, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return nil, models.ErrUserNotFound
	}

	username, _ := c.Get("username")
	isAdmin, _ := c.Get("is_admin")

	return &models.User{
		ID:       userID.(int64),
		Username: username.(string),
		IsAdmin:  isAdmin.(bool),
	}, nil
}

func claimsFromRequest(c *gin.Context, jwtManager *auth.JWTManager) (*auth.JWTClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	tokenParts := strings.SplitN(authHeader, " ", 2)
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, false
	}

	claims, err := jwtManager.ValidateToken(tokenParts[1])
	if err != nil {
		return nil, false
	}

	return claims, true
}

func setUserContext(c *gin.Context, claims *auth.JWTClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("is_admin", claims.IsAdmin)
}
