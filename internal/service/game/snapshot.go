package game

import (
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// Snapshot is the read-only view of a session handed to transports.
type Snapshot struct {
	GameID      string            `json:"gameId"`
	Mode        Mode              `json:"mode"`
	Difficulty  string            `json:"difficulty,omitempty"`
	BotName     string            `json:"botName,omitempty"`
	AIPiece     domain.Piece      `json:"aiPiece,omitempty"`
	Board       [][]int           `json:"board"`
	CurrentTurn domain.Piece      `json:"currentTurn"`
	Status      domain.GameStatus `json:"status"`
	Winner      domain.Piece      `json:"winner"`
	WinningLine []domain.Cell     `json:"winningLine,omitempty"`
	MoveCount   int               `json:"moveCount"`
	LastMove    *domain.Move      `json:"lastMove,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (gs *GameSession) Snapshot() Snapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.snapshotLocked()
}

func (gs *GameSession) snapshotLocked() Snapshot {
	snap := Snapshot{
		GameID:      gs.GameID,
		Mode:        gs.Mode,
		Board:       gs.Game.Board.Grid(),
		CurrentTurn: gs.nextTurnLocked(),
		Status:      gs.Game.Status,
		Winner:      gs.Game.Winner,
		MoveCount:   gs.Game.MoveCount,
		CreatedAt:   gs.CreatedAt,
		UpdatedAt:   gs.UpdatedAt,
	}
	if gs.IsBot() {
		snap.Difficulty = gs.Difficulty.String()
		snap.BotName = gs.Difficulty.BotName()
		snap.AIPiece = gs.AIPiece
	}
	if gs.Game.WinningLine != nil {
		snap.WinningLine = append([]domain.Cell(nil), gs.Game.WinningLine[:]...)
	}
	if gs.Game.LastMove != nil {
		last := *gs.Game.LastMove
		snap.LastMove = &last
	}
	return snap
}

// StateMessage wraps the current state for a freshly connected client.
func (gs *GameSession) StateMessage() domain.ServerMessage {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	msg := domain.ServerMessage{
		Type:     domain.MessageGameState,
		GameID:   gs.GameID,
		Board:    gs.Game.Board.Grid(),
		NextTurn: gs.nextTurnLocked(),
		Status:   string(gs.Game.Status),
		Winner:   gs.Game.Winner,
	}
	if gs.Game.WinningLine != nil {
		msg.WinningLine = gs.Game.WinningLine[:]
	}
	return msg
}
