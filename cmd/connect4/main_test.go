package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestRenderBoard(t *testing.T) {
	g := domain.NewGame()
	for _, col := range []int{3, 3, 4} {
		_, err := g.MakeMove(g.CurrentPlayer, col)
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	renderBoard(&buf, g)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, domain.Rows+2)
	require.Equal(t, "| . . . B . . . |", lines[domain.Rows-2])
	require.Equal(t, "| . . . A A . . |", lines[domain.Rows-1])
	require.Equal(t, "  1 2 3 4 5 6 7", lines[len(lines)-1])
}

func TestPlayLocalGame(t *testing.T) {
	// red stacks column 1, yellow column 2, then decline the rematch
	in := strings.NewReader("1\n2\nx\n9\n1\n2\n1\n2\n1\nn\n")
	var out bytes.Buffer

	err := play(context.Background(), in, &out, nil, options{mode: game.ModeLocal})
	require.NoError(t, err)

	text := out.String()
	require.Contains(t, text, `"x" is not a column number`)
	require.Contains(t, text, "Pick a column between 1 and 7.")
	require.Contains(t, text, "Red wins after 7 moves!")
}

func TestPlayAgainstEngine(t *testing.T) {
	engine := bot.NewEngine(3, zerolog.Nop())
	// the engine opens; feed enough moves to reach the end of input
	in := strings.NewReader(strings.Repeat("4\n", 3) + "q\n")
	var out bytes.Buffer

	err := play(context.Background(), in, &out, engine, options{
		mode:       game.ModeAI,
		difficulty: bot.Easy,
		aiFirst:    true,
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "You play Yellow against Alice (easy).")
	require.Contains(t, out.String(), "Alice drops in column")
}
