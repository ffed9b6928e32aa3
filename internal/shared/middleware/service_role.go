package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceRole guards internal endpoints (worker <-> API calls).
// The caller must present the shared service-role key. When no key is
// configured the endpoints are disabled entirely.
func ServiceRole(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.String(http.StatusNotFound, "Not found")
			c.Abort()
			return
		}

		presented := c.GetHeader("X-Service-Role-Key")
		if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
			c.String(http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		c.Next()
	}
}
