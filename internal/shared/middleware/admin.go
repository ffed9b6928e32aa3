package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/aHaldin/pickmyartist/internal/shared/response"
)

// AdminMiddleware gates the admin surface on the role claim set by
// AuthMiddleware. Runs after it, so a missing role means a non-admin
// account, not a missing token.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "admin" {
			response.Forbidden(c, "admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
