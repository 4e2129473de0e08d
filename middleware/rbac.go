package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/krishiconnect/krishi-backend/internal/auth"
)

// RBACMiddleware checks if the caller has one of the allowed roles.
// Must run after AuthMiddleware.
func RBACMiddleware(allowedRoles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := auth.ActorFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		for _, role := range allowedRoles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	}
}
