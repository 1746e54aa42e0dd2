package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/game"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrColumnFull),
		errors.Is(err, domain.ErrGameOver),
		errors.Is(err, domain.ErrNotYourTurn):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidGameID),
		errors.Is(err, domain.ErrInvalidColumn),
		errors.Is(err, domain.ErrInvalidPiece),
		errors.Is(err, domain.ErrInvalidDepth),
		errors.Is(err, domain.ErrInvalidBoard),
		errors.Is(err, domain.ErrFloatingPiece):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
