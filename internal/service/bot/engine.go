package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// MaxDepth bounds the depth accepted from remote callers.
const MaxDepth = 8

// Decision is the engine's answer for one position.
type Decision struct {
	Column int   `json:"column"`
	Row    int   `json:"row"`
	Score  int64 `json:"score"`
	Depth  int   `json:"depth"`
	Nodes  int   `json:"nodes"`
}

// Engine picks moves for the computer player. It may be shared between
// goroutines; each call runs its own single-threaded search.
type Engine struct {
	mu     sync.Mutex
	seeds  *rand.Rand
	logger zerolog.Logger
}

func NewEngine(seed uint64, logger zerolog.Logger) *Engine {
	return &Engine{
		seeds:  rand.New(rand.NewSource(seed)),
		logger: logger.With().Str("component", "BOT").Logger(),
	}
}

func (e *Engine) nextSeed() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seeds.Uint64()
}

// BestMove searches depth plies ahead and returns the column ai should play.
// Once started the search runs to completion; ctx is only checked up front.
func (e *Engine) BestMove(ctx context.Context, board domain.Board, ai domain.Piece, depth int) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}
	if !ai.IsPlayer() {
		return Decision{}, fmt.Errorf("%w: %d", domain.ErrInvalidPiece, ai)
	}
	if depth < 1 || depth > MaxDepth {
		return Decision{}, fmt.Errorf("%w: %d (want 1..%d)", domain.ErrInvalidDepth, depth, MaxDepth)
	}
	if err := board.Validate(); err != nil {
		return Decision{}, err
	}
	if board.IsTerminal() {
		return Decision{}, domain.ErrGameOver
	}

	start := time.Now()
	searcher := NewSearcher(ai, e.nextSeed())
	column, score := searcher.Minimax(board, depth, NegInf, PosInf, true)

	row, err := board.NextOpenRow(column)
	if err != nil {
		return Decision{}, fmt.Errorf("search picked column %d: %w", column, err)
	}

	e.logger.Debug().
		Int("column", column).
		Int64("score", score).
		Int("depth", depth).
		Int("nodes", searcher.Nodes()).
		Dur("elapsed", time.Since(start)).
		Msg("move chosen")

	return Decision{
		Column: column,
		Row:    row,
		Score:  score,
		Depth:  depth,
		Nodes:  searcher.Nodes(),
	}, nil
}

// CalculateBestMove selects the best move based on difficulty
func (e *Engine) CalculateBestMove(ctx context.Context, board domain.Board, ai domain.Piece, difficulty Difficulty) (Decision, error) {
	if !difficulty.Valid() {
		return Decision{}, fmt.Errorf("%w: %s", domain.ErrInvalidDepth, difficulty)
	}
	return e.BestMove(ctx, board, ai, difficulty.Depth())
}
