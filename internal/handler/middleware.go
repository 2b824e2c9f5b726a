package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const apiKeyHeader = "X-API-Key"

// APIKeyAuth guards the /api routes. An empty key disables the check.
func APIKeyAuth(key string) gin.HandlerFunc {
	if key == "" {
		log.Warn().Msg("API_KEY not set, /api routes are unauthenticated")
		return func(c *gin.Context) { c.Next() }
	}
	want := []byte(key)
	return func(c *gin.Context) {
		provided := strings.TrimSpace(c.GetHeader(apiKeyHeader))
		if provided == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + apiKeyHeader + " header"})
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), want) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid API key"})
			return
		}
		c.Next()
	}
}
