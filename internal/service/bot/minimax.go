package bot

import (
	"math"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"golang.org/x/exp/rand"
)

const (
	MINIMAX_WIN  int64 = 1_000_000_000_000 // AI has four in a row
	MINIMAX_LOSS int64 = -MINIMAX_WIN      // opponent has four in a row
	MINIMAX_DRAW int64 = 0

	// Search bounds handed to the root call
	NegInf int64 = math.MinInt64
	PosInf int64 = math.MaxInt64

	// NoColumn is returned from leaves, where no move is chosen.
	NoColumn = -1
)

// Searcher runs one minimax search for the AI piece. It is not safe for
// concurrent use; every search gets its own Searcher.
type Searcher struct {
	AI       domain.Piece
	Opponent domain.Piece
	rng      *rand.Rand
	nodes    int
}

func NewSearcher(ai domain.Piece, seed uint64) *Searcher {
	return &Searcher{
		AI:       ai,
		Opponent: ai.Opponent(),
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Nodes is the number of positions visited so far.
func (s *Searcher) Nodes() int {
	return s.nodes
}

// Minimax implements the minimax algorithm with alpha-beta pruning and
// returns the chosen column with its score. board is never modified: every
// child position is a copy.
func (s *Searcher) Minimax(board domain.Board, depth int, alpha, beta int64, maximizing bool) (int, int64) {
	s.nodes++

	// Terminal conditions
	if board.WinningMove(s.AI) {
		return NoColumn, MINIMAX_WIN
	}
	if board.WinningMove(s.Opponent) {
		return NoColumn, MINIMAX_LOSS
	}
	validColumns := board.ValidLocations()
	if len(validColumns) == 0 {
		return NoColumn, MINIMAX_DRAW
	}
	if depth <= 0 {
		return NoColumn, int64(ScorePosition(&board, s.AI))
	}

	column := validColumns[s.rng.Intn(len(validColumns))]

	if maximizing {
		value := NegInf
		for _, col := range validColumns {
			child, ok := s.play(board, col, s.AI)
			if !ok {
				continue
			}
			_, score := s.Minimax(child, depth-1, alpha, beta, false)
			if score > value {
				value = score
				column = col
			}
			alpha = max(alpha, value)
			if alpha >= beta {
				break // Beta cutoff
			}
		}
		return column, value
	}

	value := PosInf
	for _, col := range validColumns {
		child, ok := s.play(board, col, s.Opponent)
		if !ok {
			continue
		}
		_, score := s.Minimax(child, depth-1, alpha, beta, true)
		if score < value {
			value = score
			column = col
		}
		beta = min(beta, value)
		if alpha >= beta {
			break // Alpha cutoff
		}
	}
	return column, value
}

// play returns a copy of board with piece dropped into col.
func (s *Searcher) play(board domain.Board, col int, piece domain.Piece) (domain.Board, bool) {
	row, err := board.NextOpenRow(col)
	if err != nil {
		return board, false
	}
	if err := board.DropPiece(row, col, piece); err != nil {
		return board, false
	}
	return board, true
}
