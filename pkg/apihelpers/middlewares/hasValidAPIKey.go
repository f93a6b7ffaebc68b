package middlewares

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

// HasValidAPIKey guards data reader routes: the request must carry one of
// the configured keys in its Api-Key header.
func HasValidAPIKey(validKeys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		keysInHeader := c.Request.Header["Api-Key"]
		if len(keysInHeader) < 1 {
			slog.Warn("request without API key", slog.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "valid API key missing"})
			return
		}

		for _, k := range keysInHeader {
			if slices.Contains(validKeys, k) {
				c.Next()
				return
			}
		}

		slog.Warn("request with unknown API key", slog.String("path", c.FullPath()))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "valid API key missing"})
	}
}
