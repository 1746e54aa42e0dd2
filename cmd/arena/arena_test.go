package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestCalculateElo(t *testing.T) {
	require.Equal(t, 1216, calculateElo(1200, 1200, 1))
	require.Equal(t, 1184, calculateElo(1200, 1200, 0))
	require.Equal(t, 1200, calculateElo(1200, 1200, 0.5))
	require.Equal(t, 0, calculateElo(10, 10, 0))
}

func TestRandomOpening(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		opening := randomOpening(rng, 4)
		require.Len(t, opening, 4)

		g := domain.NewGame()
		for _, col := range opening {
			_, err := g.MakeMove(g.CurrentPlayer, col)
			require.NoError(t, err)
		}
		require.False(t, g.IsFinished())
	}
}

func TestPlayGame(t *testing.T) {
	engine := bot.NewEngine(7, zerolog.Nop())
	res, err := playGame(context.Background(), engine, gameInfo{number: 1, first: bot.Boss, second: bot.Easy, opening: []int{3}})
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.moves, 7)
	require.LessOrEqual(t, res.moves, domain.Rows*domain.Columns)
}

func TestStandingsRecord(t *testing.T) {
	table := newStandings([]bot.Difficulty{bot.Easy, bot.Hard}, 1200)
	table.record(gameResult{info: gameInfo{first: bot.Hard, second: bot.Easy}, winner: domain.PlayerA})
	table.record(gameResult{info: gameInfo{first: bot.Easy, second: bot.Hard}, winner: domain.PlayerB})
	table.record(gameResult{info: gameInfo{first: bot.Easy, second: bot.Hard}, winner: domain.Empty})

	sorted := table.sorted()
	require.Equal(t, bot.Hard, sorted[0].Level)
	require.Equal(t, 2, sorted[0].Wins)
	require.Equal(t, 1, sorted[0].Draws)
	require.Equal(t, 2, sorted[1].Losses)
	require.Greater(t, sorted[0].Rating, sorted[1].Rating)
	require.InDelta(t, 5.0/6.0, sorted[0].score(), 1e-9)

	color.NoColor = true
	var buf bytes.Buffer
	printStandings(&buf, sorted)
	require.Contains(t, buf.String(), "Charles")
	require.Contains(t, buf.String(), "Alice")
}

func TestRun(t *testing.T) {
	cfg := Config{
		Levels:        []bot.Difficulty{bot.Easy, bot.Medium, bot.Hard},
		Games:         2,
		OpeningPlies:  2,
		Concurrency:   3,
		Seed:          11,
		InitialRating: 1200,
	}
	table, err := run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, table, 3)

	total := 0
	for _, s := range table {
		// every level meets the two others over 2 openings with both colours
		require.Equal(t, 8, s.games())
		total += s.Wins + s.Draws
	}
	require.GreaterOrEqual(t, total, 12)
}
