package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/game"
)

// Disconnector closes live sockets of a game that no longer exists.
type Disconnector interface {
	CloseGame(gameID string, reason string)
}

type GameHandler struct {
	SessionManager    *game.SessionManager
	DefaultDifficulty bot.Difficulty
	Disconnector      Disconnector // optional
}

func NewGameHandler(sm *game.SessionManager, defaultDifficulty bot.Difficulty) *GameHandler {
	return &GameHandler{SessionManager: sm, DefaultDifficulty: defaultDifficulty}
}

type createGameRequest struct {
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty"`
	AIFirst    bool   `json:"ai_first"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type gameResponse struct {
	game.Snapshot
	Moves []game.AppliedMove `json:"moves,omitempty"`
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	difficulty := h.DefaultDifficulty
	if req.Difficulty != "" {
		if difficulty, err = bot.ParseDifficulty(req.Difficulty); err != nil {
			abortWithError(c, fmt.Errorf("%w: %v", domain.ErrInvalidDepth, err))
			return
		}
	}

	session, opening, err := h.SessionManager.CreateSession(c.Request.Context(), game.SessionOptions{
		Mode:       mode,
		Difficulty: difficulty,
		AIFirst:    req.AIFirst,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gameResponse{Snapshot: session.Snapshot(), Moves: opening})
}

func (h *GameHandler) session(c *gin.Context) (*game.GameSession, bool) {
	session, err := h.SessionManager.Lookup(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}
	return session, true
}

func (h *GameHandler) GetGame(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gameResponse{Snapshot: session.Snapshot()})
}

func (h *GameHandler) MakeMove(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	moves, err := session.HandleMove(c.Request.Context(), *req.Column)
	if err != nil && len(moves) == 0 {
		abortWithError(c, err)
		return
	}
	if err != nil {
		// the human move stands even if the reply failed
		_ = c.Error(err)
	}

	c.JSON(http.StatusOK, gameResponse{Snapshot: session.Snapshot(), Moves: moves})
}

func (h *GameHandler) ResetGame(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	opening, err := session.Reset(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gameResponse{Snapshot: session.Snapshot(), Moves: opening})
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	if err := h.SessionManager.RemoveSession(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	if h.Disconnector != nil {
		h.Disconnector.CloseGame(c.Param("id"), "game deleted")
	}
	c.Status(http.StatusNoContent)
}
