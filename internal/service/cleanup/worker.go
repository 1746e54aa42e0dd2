package cleanup

import (
	"context"
	"time"

	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/rs/zerolog"
)

// ExpiredReason is sent to clients whose session the worker removed.
const ExpiredReason = "session expired"

// Disconnector closes the live connections of a game.
type Disconnector interface {
	CloseGame(gameID, reason string)
}

type Worker struct {
	SessionManager *game.SessionManager
	Disconnector   Disconnector // may be nil
	Interval       time.Duration
	IdleTimeout    time.Duration
	FinishedTTL    time.Duration
	logger         zerolog.Logger
}

func NewWorker(sm *game.SessionManager, disconnector Disconnector, interval, idleTimeout, finishedTTL time.Duration, logger zerolog.Logger) *Worker {
	return &Worker{
		SessionManager: sm,
		Disconnector:   disconnector,
		Interval:       interval,
		IdleTimeout:    idleTimeout,
		FinishedTTL:    finishedTTL,
		logger:         logger.With().Str("component", "CLEANUP").Logger(),
	}
}

// Start runs the cleanup once and then on every tick until ctx is done.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info().Dur("interval", w.Interval).Msg("background worker started")
	w.RunCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("background worker stopped")
			return nil
		case <-ticker.C:
			w.RunCleanup()
		}
	}
}

// RunCleanup removes stale sessions, closes their sockets and returns how
// many were removed.
func (w *Worker) RunCleanup() int {
	removed := w.SessionManager.CleanupOldSessions(w.IdleTimeout, w.FinishedTTL)
	if w.Disconnector != nil {
		for _, gameID := range removed {
			w.Disconnector.CloseGame(gameID, ExpiredReason)
		}
	}
	w.logger.Debug().Int("removed", len(removed)).Msg("cleanup pass finished")
	return len(removed)
}
