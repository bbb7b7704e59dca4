package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"terptickets/internal/domain"
	"terptickets/internal/port"
)

const (
	ContextKeyUser  = "user"
	ContextKeyToken = "token"
)

// AuthMiddleware returns Gin middleware that validates the bearer token and
// injects the authenticated user into the request context.
func AuthMiddleware(identity port.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := identity.CurrentUser(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyToken, token)
		c.Next()
	}
}

// GetUser extracts the authenticated user from the Gin context.
func GetUser(c *gin.Context) (*domain.UserRecord, error) {
	val, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil, domain.ErrUnauthorized
	}
	return val.(*domain.UserRecord), nil
}

// GetToken extracts the bearer token from the Gin context.
func GetToken(c *gin.Context) (string, error) {
	val, exists := c.Get(ContextKeyToken)
	if !exists {
		return "", domain.ErrUnauthorized
	}
	return val.(string), nil
}
