package middleware

import "github.com/gin-gonic/gin"

// NoCache disables client and proxy caching so every navigation reflects the
// latest catalog and admin state.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
