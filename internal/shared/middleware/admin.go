package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"citylocal-backend/internal/shared"
)

// AdminOnly gates a route group to actors holding the admin role.
// Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok || actor.Role != shared.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "admin role required"},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
