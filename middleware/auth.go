package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"github.com/krishiconnect/krishi-backend/internal/auth"
)

// UserLookup resolves the user behind a verified token.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uint) (*auth.User, error)
}

// AuthMiddleware verifies the bearer access token, reloads the user and
// stores the caller as an auth.Actor on the context. The role stored on
// the user row wins over the role claim in the token.
func AuthMiddleware(tokens *auth.TokenService, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := tokens.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		auth.SetActor(c, auth.Actor{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
			IP:     GetIPFromContext(c),
		})
		c.Next()
	}
}
