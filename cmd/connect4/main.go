package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/logging"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/rs/zerolog/log"
)

type options struct {
	mode       game.Mode
	difficulty bot.Difficulty
	aiFirst    bool
	seed       uint64
}

func main() {
	var (
		modeFlag       = flag.String("mode", "ai", "local (hot-seat) or ai")
		difficultyFlag = flag.String("difficulty", "medium", "easy, medium, hard or boss")
		aiFirst        = flag.Bool("ai-first", false, "let the computer open")
		seed           = flag.Uint64("seed", 0, "engine seed (0 uses the clock)")
		logLevel       = flag.String("log-level", "warn", "engine log level")
	)
	flag.Parse()

	logging.Init(*logLevel, true)

	mode, err := game.ParseMode(*modeFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -mode")
	}
	difficulty, err := bot.ParseDifficulty(*difficultyFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -difficulty")
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	opts := options{mode: mode, difficulty: difficulty, aiFirst: *aiFirst, seed: *seed}
	engine := bot.NewEngine(opts.seed, log.Logger)

	if err := play(context.Background(), os.Stdin, os.Stdout, engine, opts); err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
}

// play runs games until the input ends or the player declines a rematch.
func play(ctx context.Context, in io.Reader, out io.Writer, engine game.MoveEngine, opts options) error {
	scanner := bufio.NewScanner(in)
	g := domain.NewGame()

	aiPiece := domain.Empty
	if opts.mode == game.ModeAI {
		aiPiece = domain.PlayerB
		if opts.aiFirst {
			aiPiece = domain.PlayerA
		}
		fmt.Fprintf(out, "You play %s against %s (%s).\n", playerName(aiPiece.Opponent()), opts.difficulty.BotName(), opts.difficulty)
	}

	for {
		renderBoard(out, g)

		if g.IsFinished() {
			renderResult(out, g)
			fmt.Fprint(out, "Play again? [y/N] ")
			if !scanner.Scan() || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(scanner.Text())), "y") {
				return scanner.Err()
			}
			g.Reset()
			continue
		}

		if g.CurrentPlayer == aiPiece {
			decision, err := engine.CalculateBestMove(ctx, g.Board, aiPiece, opts.difficulty)
			if err != nil {
				return fmt.Errorf("engine: %w", err)
			}
			if _, err := g.MakeMove(aiPiece, decision.Column); err != nil {
				return fmt.Errorf("engine move: %w", err)
			}
			pieceColor(aiPiece).Fprintf(out, "%s drops in column %d\n", opts.difficulty.BotName(), decision.Column+1)
			continue
		}

		pieceColor(g.CurrentPlayer).Fprintf(out, "%s, choose a column (1-%d): ", playerName(g.CurrentPlayer), domain.Columns)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "q" || input == "quit" {
			return nil
		}
		col, err := strconv.Atoi(input)
		if err != nil {
			errorColor.Fprintf(out, "%q is not a column number\n", input)
			continue
		}
		if _, err := g.MakeMove(g.CurrentPlayer, col-1); err != nil {
			switch {
			case errors.Is(err, domain.ErrColumnFull):
				errorColor.Fprintf(out, "Column %d is full.\n", col)
			case errors.Is(err, domain.ErrInvalidColumn):
				errorColor.Fprintf(out, "Pick a column between 1 and %d.\n", domain.Columns)
			default:
				return err
			}
		}
	}
}
