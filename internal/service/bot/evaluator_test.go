package bot

import (
	"testing"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const (
	A = domain.PlayerA
	B = domain.PlayerB
	E = domain.Empty
)

func TestScoreWindow(t *testing.T) {
	tests := []struct {
		name   string
		window [domain.ToWin]domain.Piece
		want   int
	}{
		{"four", [4]domain.Piece{A, A, A, A}, SCORE_FOUR},
		{"three and a gap", [4]domain.Piece{A, E, A, A}, SCORE_THREE_OPEN},
		{"two and two gaps", [4]domain.Piece{E, A, A, E}, SCORE_TWO_OPEN},
		{"opponent three", [4]domain.Piece{B, B, E, B}, SCORE_OPP_THREE},
		{"three blocked", [4]domain.Piece{A, A, A, B}, 0},
		{"two blocked", [4]domain.Piece{A, A, B, E}, 0},
		{"single piece", [4]domain.Piece{A, E, E, E}, 0},
		{"empty", [4]domain.Piece{E, E, E, E}, 0},
		{"opponent four", [4]domain.Piece{B, B, B, B}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ScoreWindow(tt.window, A))
		})
	}
}

func TestScorePosition(t *testing.T) {
	t.Run("empty board is neutral", func(t *testing.T) {
		b := domain.NewBoard()
		require.Zero(t, ScorePosition(&b, A))
		require.Zero(t, ScorePosition(&b, B))
	})

	t.Run("center column bonus", func(t *testing.T) {
		b := domain.NewBoard()
		_, err := b.Drop(centerColumn, A)
		require.NoError(t, err)
		require.Equal(t, SCORE_CENTER_CELL, ScorePosition(&b, A))
		require.Zero(t, ScorePosition(&b, B))
	})

	t.Run("edge piece scores nothing", func(t *testing.T) {
		b := domain.NewBoard()
		_, err := b.Drop(0, A)
		require.NoError(t, err)
		require.Zero(t, ScorePosition(&b, A))
	})

	t.Run("open pair on the floor", func(t *testing.T) {
		b := domain.NewBoard()
		_, err := b.Drop(0, A)
		require.NoError(t, err)
		_, err = b.Drop(1, A)
		require.NoError(t, err)
		// only the window spanning columns 0..3 holds both pieces
		require.Equal(t, SCORE_TWO_OPEN, ScorePosition(&b, A))
	})
}

func relabel(b domain.Board) domain.Board {
	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			b[row][col] = b[row][col].Opponent()
		}
	}
	return b
}

func TestScorePositionRelabelSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		b := randomPosition(rng, 1+rng.Intn(20))
		swapped := relabel(b)

		require.Equal(t, ScorePosition(&b, A), ScorePosition(&swapped, B))
		require.Equal(t, ScorePosition(&b, B), ScorePosition(&swapped, A))
	}
}
