package middleware

import "github.com/gin-gonic/gin"

// NoStoreMiddleware keeps browsers from caching note and reminder listings,
// which change with every lifecycle transition.
func NoStoreMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
