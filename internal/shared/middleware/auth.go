package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"citylocal-backend/internal/shared"
	"citylocal-backend/pkg/jwt"
)

const actorKey = "actor"

// Auth resolves the bearer credential (Authorization header or the auth
// cookie) into a shared.Actor and stores it on the context. Requests
// without a valid credential are rejected.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c, "missing credentials")
			return
		}

		claims, err := manager.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortUnauthorized(c, "invalid user id in token")
			return
		}

		c.Set(actorKey, shared.Actor{
			ID:    userID,
			Email: claims.Email,
			Role:  claims.Role,
		})

		c.Next()
	}
}

// OptionalAuth resolves the actor when a credential is present but lets
// anonymous requests through. Public GET handlers use it.
func OptionalAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := manager.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		if userID, err := uuid.Parse(claims.UserID); err == nil {
			c.Set(actorKey, shared.Actor{
				ID:    userID,
				Email: claims.Email,
				Role:  claims.Role,
			})
		}

		c.Next()
	}
}

// ActorFrom returns the resolved actor, if any.
func ActorFrom(c *gin.Context) (shared.Actor, bool) {
	val, exists := c.Get(actorKey)
	if !exists {
		return shared.Actor{}, false
	}
	actor, ok := val.(shared.Actor)
	return actor, ok
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	// Fall back to the auth cookie set by the web client.
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": "UNAUTHORIZED", "message": message},
	})
	c.Abort()
}
