package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS opens every endpoint to any origin. The gallery is consumed by a
// statically exported site that may be served from several hosts (preview
// deployments included), so the wildcard is deliberate.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
