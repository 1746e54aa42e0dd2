package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/pkg/uid"
	"github.com/rs/zerolog"
)

const (
	ErrSessionNotFound domain.Error = "session not found"
	ErrInvalidGameID   domain.Error = "invalid game id"
)

// Mode says who sits on the other side of the board.
type Mode string

const (
	ModeLocal Mode = "local" // two humans sharing one client
	ModeAI    Mode = "ai"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLocal, ModeAI:
		return Mode(s), nil
	case "":
		return ModeAI, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Notifier receives every event of a session, e.g. to push it to a socket.
type Notifier interface {
	Publish(gameID string, message domain.ServerMessage)
}

type MoveEngine interface {
	CalculateBestMove(ctx context.Context, board domain.Board, ai domain.Piece, difficulty bot.Difficulty) (bot.Decision, error)
}

type SessionOptions struct {
	Mode       Mode
	Difficulty bot.Difficulty
	AIFirst    bool
}

// AppliedMove is one move made on a session board.
type AppliedMove struct {
	domain.Move
	ByAI  bool   `json:"byAi"`
	Score *int64 `json:"score,omitempty"`
}

type GameSession struct {
	GameID     string
	Mode       Mode
	Difficulty bot.Difficulty
	AIPiece    domain.Piece // Empty in local games
	Game       *domain.Game
	CreatedAt  time.Time
	UpdatedAt  time.Time
	FinishedAt time.Time
	mu         sync.Mutex
	outbox     []domain.ServerMessage // published by unlock
	flushing   bool
	engine     MoveEngine
	notifier   Notifier
	logger     zerolog.Logger
}

// SessionManager manages active game sessions
type SessionManager struct {
	sessions map[string]*GameSession // gameID → GameSession
	mu       sync.RWMutex
	engine   MoveEngine
	notifier Notifier
	logger   zerolog.Logger
}

func NewSessionManager(engine MoveEngine, notifier Notifier, logger zerolog.Logger) *SessionManager {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &SessionManager{
		sessions: make(map[string]*GameSession),
		engine:   engine,
		notifier: notifier,
		logger:   logger.With().Str("component", "SESSION").Logger(),
	}
}

type nopNotifier struct{}

func (nopNotifier) Publish(string, domain.ServerMessage) {}

func (sm *SessionManager) CreateSession(ctx context.Context, opts SessionOptions) (*GameSession, []AppliedMove, error) {
	if opts.Mode == "" {
		opts.Mode = ModeAI
	}
	if opts.Mode == ModeAI && !opts.Difficulty.Valid() {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrInvalidDepth, opts.Difficulty)
	}

	now := time.Now()
	gs := &GameSession{
		GameID:    uid.GenerateGameID(),
		Mode:      opts.Mode,
		Game:      domain.NewGame(),
		CreatedAt: now,
		UpdatedAt: now,
		engine:    sm.engine,
		notifier:  sm.notifier,
	}
	if opts.Mode == ModeAI {
		gs.Difficulty = opts.Difficulty
		gs.AIPiece = domain.PlayerB
		if opts.AIFirst {
			gs.AIPiece = domain.PlayerA
		}
	}
	gs.logger = sm.logger.With().Str("gameId", gs.GameID).Logger()

	var opening []AppliedMove
	if gs.IsBot() && gs.AIPiece == gs.Game.CurrentPlayer {
		gs.mu.Lock()
		move, err := gs.playBotLocked(ctx)
		gs.unlock()
		if err != nil {
			return nil, nil, err
		}
		opening = append(opening, move)
	}

	sm.mu.Lock()
	sm.sessions[gs.GameID] = gs
	sm.mu.Unlock()

	gs.logger.Info().
		Str("mode", string(gs.Mode)).
		Str("difficulty", gs.Difficulty.String()).
		Int("aiPiece", int(gs.AIPiece)).
		Msg("session created")
	return gs, opening, nil
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[gameID]
	return session, exists
}

// Lookup resolves a game ID taken from a request. Malformed IDs fail with
// ErrInvalidGameID before the table is consulted.
func (sm *SessionManager) Lookup(gameID string) (*GameSession, error) {
	if !uid.IsGameID(gameID) {
		return nil, ErrInvalidGameID
	}
	session, ok := sm.GetSessionByGameID(gameID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	if !uid.IsGameID(gameID) {
		return ErrInvalidGameID
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[gameID]; !exists {
		return ErrSessionNotFound
	}
	delete(sm.sessions, gameID)
	sm.logger.Info().Str("gameId", gameID).Msg("session removed")
	return nil
}

// GetActiveGames lists snapshots of all sessions whose game is still running.
func (sm *SessionManager) GetActiveGames() []Snapshot {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	sm.mu.RUnlock()

	active := make([]Snapshot, 0, len(sessions))
	for _, s := range sessions {
		snap := s.Snapshot()
		if snap.Status == domain.StatusActive {
			active = append(active, snap)
		}
	}
	return active
}

// CleanupOldSessions drops finished sessions older than finishedTTL and
// unfinished ones untouched for idleTimeout. It returns the removed game IDs.
func (sm *SessionManager) CleanupOldSessions(idleTimeout, finishedTTL time.Duration) []string {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	var removed []string
	now := time.Now()

	for gameID, session := range sm.sessions {
		session.mu.Lock()
		stale := false
		if session.Game.IsFinished() {
			stale = now.Sub(session.FinishedAt) > finishedTTL
		} else {
			stale = now.Sub(session.UpdatedAt) > idleTimeout
		}
		session.mu.Unlock()

		if stale {
			delete(sm.sessions, gameID)
			removed = append(removed, gameID)
		}
	}

	if len(removed) > 0 {
		sm.logger.Info().Int("removed", len(removed)).Msg("memory cleanup")
	}
	return removed
}

func (gs *GameSession) IsBot() bool {
	return gs.Mode == ModeAI
}

// HandleMove plays column for the side to move and, in AI games, the
// computer's reply.
func (gs *GameSession) HandleMove(ctx context.Context, column int) ([]AppliedMove, error) {
	gs.mu.Lock()
	defer gs.unlock()

	player := gs.Game.CurrentPlayer
	if gs.IsBot() && player == gs.AIPiece && !gs.Game.IsFinished() {
		return nil, domain.ErrNotYourTurn
	}

	row, err := gs.Game.MakeMove(player, column)
	if err != nil {
		return nil, err
	}
	moves := []AppliedMove{{Move: domain.Move{Row: row, Column: column, Piece: player}}}
	gs.afterMoveLocked(moves[0])

	if gs.IsBot() && !gs.Game.IsFinished() {
		move, err := gs.playBotLocked(ctx)
		if err != nil {
			return moves, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// unlock releases mu and then hands queued events to the notifier in
// order. A single caller drains the queue at a time; the others leave their
// events to it.
func (gs *GameSession) unlock() {
	if gs.flushing {
		gs.mu.Unlock()
		return
	}
	gs.flushing = true
	for len(gs.outbox) > 0 {
		batch := gs.outbox
		gs.outbox = nil
		gs.mu.Unlock()
		for _, msg := range batch {
			gs.notifier.Publish(gs.GameID, msg)
		}
		gs.mu.Lock()
	}
	gs.flushing = false
	gs.mu.Unlock()
}

func (gs *GameSession) playBotLocked(ctx context.Context) (AppliedMove, error) {
	decision, err := gs.engine.CalculateBestMove(ctx, gs.Game.Board, gs.AIPiece, gs.Difficulty)
	if err != nil {
		gs.logger.Error().Err(err).Msg("bot failed to pick a move")
		return AppliedMove{}, fmt.Errorf("bot move: %w", err)
	}

	row, err := gs.Game.MakeMove(gs.AIPiece, decision.Column)
	if err != nil {
		return AppliedMove{}, fmt.Errorf("bot move: %w", err)
	}

	score := decision.Score
	move := AppliedMove{
		Move:  domain.Move{Row: row, Column: decision.Column, Piece: gs.AIPiece},
		ByAI:  true,
		Score: &score,
	}
	gs.afterMoveLocked(move)
	return move, nil
}

// afterMoveLocked stamps the session and queues the resulting events.
func (gs *GameSession) afterMoveLocked(move AppliedMove) {
	gs.UpdatedAt = time.Now()

	column, row := move.Column, move.Row
	gs.outbox = append(gs.outbox, domain.ServerMessage{
		Type:     domain.MessageMoveMade,
		GameID:   gs.GameID,
		Column:   &column,
		Row:      &row,
		Player:   move.Piece,
		Score:    move.Score,
		Board:    gs.Game.Board.Grid(),
		NextTurn: gs.nextTurnLocked(),
		Status:   string(gs.Game.Status),
	})

	if !gs.Game.IsFinished() {
		return
	}

	gs.FinishedAt = gs.UpdatedAt
	msg := domain.ServerMessage{
		Type:   domain.MessageGameOver,
		GameID: gs.GameID,
		Board:  gs.Game.Board.Grid(),
		Status: string(gs.Game.Status),
		Winner: gs.Game.Winner,
	}
	if gs.Game.WinningLine != nil {
		msg.WinningLine = gs.Game.WinningLine[:]
	}
	gs.outbox = append(gs.outbox, msg)

	gs.logger.Info().
		Str("status", string(gs.Game.Status)).
		Int("winner", int(gs.Game.Winner)).
		Int("moves", gs.Game.MoveCount).
		Dur("duration", gs.FinishedAt.Sub(gs.CreatedAt)).
		Msg("game over")
}

func (gs *GameSession) nextTurnLocked() domain.Piece {
	if gs.Game.IsFinished() {
		return domain.Empty
	}
	return gs.Game.CurrentPlayer
}

// Reset starts a new game epoch on the same session. When the computer
// opens, its first move is returned.
func (gs *GameSession) Reset(ctx context.Context) ([]AppliedMove, error) {
	gs.mu.Lock()
	defer gs.unlock()

	gs.Game.Reset()
	gs.UpdatedAt = time.Now()
	gs.FinishedAt = time.Time{}
	gs.outbox = append(gs.outbox, domain.ServerMessage{
		Type:     domain.MessageGameReset,
		GameID:   gs.GameID,
		Board:    gs.Game.Board.Grid(),
		NextTurn: gs.Game.CurrentPlayer,
		Status:   string(gs.Game.Status),
	})
	gs.logger.Info().Msg("game reset")

	if gs.IsBot() && gs.AIPiece == gs.Game.CurrentPlayer {
		move, err := gs.playBotLocked(ctx)
		if err != nil {
			return nil, err
		}
		return []AppliedMove{move}, nil
	}
	return nil, nil
}
