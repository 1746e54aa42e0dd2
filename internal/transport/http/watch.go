package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/service/game"
)

type WatchHandler struct {
	SessionManager *game.SessionManager
}

func NewWatchHandler(sm *game.SessionManager) *WatchHandler {
	return &WatchHandler{SessionManager: sm}
}

type liveGameResponse struct {
	GameID      string `json:"gameId"`
	Mode        string `json:"mode"`
	Opponent    string `json:"opponent"`
	MoveCount   int    `json:"moveCount"`
	CurrentTurn int    `json:"currentTurn"`
	StartedAt   string `json:"startedAt"`
}

// GetLiveGames returns all sessions whose game is still running
func (h *WatchHandler) GetLiveGames(c *gin.Context) {
	activeGames := h.SessionManager.GetActiveGames()

	response := make([]liveGameResponse, 0, len(activeGames))
	for _, g := range activeGames {
		opponent := "local"
		if g.Mode == game.ModeAI {
			opponent = g.BotName
		}
		response = append(response, liveGameResponse{
			GameID:      g.GameID,
			Mode:        string(g.Mode),
			Opponent:    opponent,
			MoveCount:   g.MoveCount,
			CurrentTurn: int(g.CurrentTurn),
			StartedAt:   g.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, response)
}
