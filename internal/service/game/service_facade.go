package game

import (
	"context"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
)

// Service is the entry point for game logic (facade)
type Service struct {
	Engine   *bot.Engine
	Sessions *SessionManager
}

func NewService(engine *bot.Engine, sessions *SessionManager) *Service {
	return &Service{
		Engine:   engine,
		Sessions: sessions,
	}
}

// Analyze answers a one-off question about a board that no session owns.
func (s *Service) Analyze(ctx context.Context, board domain.Board, piece domain.Piece, depth int) (bot.Decision, error) {
	return s.Engine.BestMove(ctx, board, piece, depth)
}
