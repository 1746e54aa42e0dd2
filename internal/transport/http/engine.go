package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/game"
)

type EngineHandler struct {
	Service           *game.Service
	DefaultDifficulty bot.Difficulty
}

func NewEngineHandler(service *game.Service, defaultDifficulty bot.Difficulty) *EngineHandler {
	return &EngineHandler{Service: service, DefaultDifficulty: defaultDifficulty}
}

type bestMoveRequest struct {
	Board      [][]int `json:"board" binding:"required"`
	Piece      int     `json:"piece" binding:"required"`
	Depth      int     `json:"depth"`
	Difficulty string  `json:"difficulty"`
}

// depth picks the explicit depth first, then the named difficulty.
func (r bestMoveRequest) depth(fallback bot.Difficulty) (int, error) {
	if r.Depth != 0 {
		return r.Depth, nil
	}
	if r.Difficulty == "" {
		return fallback.Depth(), nil
	}
	d, err := bot.ParseDifficulty(r.Difficulty)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidDepth, err)
	}
	return d.Depth(), nil
}

// BestMove answers POST /api/engine/move for a board the caller owns.
func (h *EngineHandler) BestMove(c *gin.Context) {
	var req bestMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := domain.BoardFromGrid(req.Board)
	if err != nil {
		abortWithError(c, err)
		return
	}
	depth, err := req.depth(h.DefaultDifficulty)
	if err != nil {
		abortWithError(c, err)
		return
	}

	decision, err := h.Service.Analyze(c.Request.Context(), board, domain.Piece(req.Piece), depth)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, decision)
}
