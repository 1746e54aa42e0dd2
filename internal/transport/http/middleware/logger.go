package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequestLogger replaces gin.Logger with one structured line per request.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	logger = logger.With().Str("component", "HTTP").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := logger.Info()
		if c.Writer.Status() >= 500 {
			event = logger.Error()
		} else if len(c.Errors) > 0 {
			event = logger.Warn()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Str("client", c.ClientIP()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
