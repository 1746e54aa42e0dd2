package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/logging"
)

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	logger := logging.Component("CORS")
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		// If no origin header (like from curl or same-origin), allow the request
		if origin != "" {
			if !allowed[origin] {
				logger.Warn().Str("origin", origin).Strs("allowed", allowedOrigins).Msg("origin not allowed")
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Origin not allowed"})
				return
			}
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight OPTIONS requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
