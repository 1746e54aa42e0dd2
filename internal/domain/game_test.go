package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGameMakeMove(t *testing.T) {
	t.Run("turns alternate", func(t *testing.T) {
		g := NewGame()
		row, err := g.MakeMove(PlayerA, 3)
		require.NoError(t, err)
		require.Equal(t, 0, row)
		require.Equal(t, PlayerB, g.CurrentPlayer)

		_, err = g.MakeMove(PlayerA, 3)
		require.ErrorIs(t, err, ErrNotYourTurn)

		row, err = g.MakeMove(PlayerB, 3)
		require.NoError(t, err)
		require.Equal(t, 1, row)
		require.Equal(t, 2, g.MoveCount)
		require.Equal(t, &Move{Row: 1, Column: 3, Piece: PlayerB}, g.LastMove)
	})

	t.Run("rejected moves leave the game untouched", func(t *testing.T) {
		g := NewGame()
		_, err := g.MakeMove(PlayerA, Columns)
		require.ErrorIs(t, err, ErrInvalidColumn)
		_, err = g.MakeMove(Empty, 0)
		require.ErrorIs(t, err, ErrInvalidPiece)
		require.Equal(t, 0, g.MoveCount)
		require.Equal(t, PlayerA, g.CurrentPlayer)
	})

	t.Run("column full", func(t *testing.T) {
		g := NewGame()
		player := PlayerA
		for i := 0; i < Rows; i++ {
			_, err := g.MakeMove(player, 0)
			require.NoError(t, err)
			player = player.Opponent()
		}
		_, err := g.MakeMove(player, 0)
		require.ErrorIs(t, err, ErrColumnFull)
	})

	t.Run("vertical win ends the game", func(t *testing.T) {
		g := NewGame()
		for i := 0; i < 3; i++ {
			_, err := g.MakeMove(PlayerA, 0)
			require.NoError(t, err)
			_, err = g.MakeMove(PlayerB, 1)
			require.NoError(t, err)
		}
		_, err := g.MakeMove(PlayerA, 0)
		require.NoError(t, err)

		require.Equal(t, StatusWon, g.Status)
		require.Equal(t, PlayerA, g.Winner)
		require.NotNil(t, g.WinningLine)
		require.True(t, g.IsFinished())

		_, err = g.MakeMove(PlayerB, 1)
		require.ErrorIs(t, err, ErrGameOver)
	})
}

func TestGameReset(t *testing.T) {
	g := NewGame()
	_, err := g.MakeMove(PlayerA, 2)
	require.NoError(t, err)

	g.Reset()
	require.Equal(t, NewBoard(), g.Board)
	require.Equal(t, PlayerA, g.CurrentPlayer)
	require.Equal(t, StatusActive, g.Status)
	require.Zero(t, g.MoveCount)
	require.Nil(t, g.LastMove)
}
