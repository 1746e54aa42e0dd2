package bot

import (
	"github.com/iamasit07/connect4-engine/internal/domain"
)

const (
	// Window pattern scores
	SCORE_FOUR        = 100 // four of our pieces
	SCORE_THREE_OPEN  = 5   // three of ours and one empty cell
	SCORE_TWO_OPEN    = 2   // two of ours and two empty cells
	SCORE_OPP_THREE   = -4  // opponent threatens to complete the window
	SCORE_CENTER_CELL = 3   // each of our pieces in the center column
	centerColumn      = domain.Columns / 2
)

// ScoreWindow scores exactly one window of cells from piece's point of view.
func ScoreWindow(window [domain.ToWin]domain.Piece, piece domain.Piece) int {
	opponent := piece.Opponent()
	own, empty, opp := 0, 0, 0
	for _, cell := range window {
		switch cell {
		case piece:
			own++
		case opponent:
			opp++
		case domain.Empty:
			empty++
		}
	}

	score := 0
	switch {
	case own == 4:
		score += SCORE_FOUR
	case own == 3 && empty == 1:
		score += SCORE_THREE_OPEN
	case own == 2 && empty == 2:
		score += SCORE_TWO_OPEN
	}

	// evaluated independently of the rules above
	if opp == 3 && empty == 1 {
		score += SCORE_OPP_THREE
	}

	return score
}

// ScorePosition is the heuristic value of board for piece: every window on
// the board plus a bonus for holding the center column.
func ScorePosition(board *domain.Board, piece domain.Piece) int {
	score := 0

	for row := 0; row < domain.Rows; row++ {
		if board[row][centerColumn] == piece {
			score += SCORE_CENTER_CELL
		}
	}

	for _, w := range domain.Windows {
		score += ScoreWindow(board.Pieces(w), piece)
	}

	return score
}
