package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/logging"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type gameInfo struct {
	number  int
	first   bot.Difficulty // plays PlayerA
	second  bot.Difficulty
	opening []int
}

type gameResult struct {
	info   gameInfo
	winner domain.Piece // Empty on a draw
	moves  int
}

func run(ctx context.Context, cfg Config) ([]*standing, error) {
	logger := logging.Component("ARENA")
	logger.Info().
		Int("levels", len(cfg.Levels)).
		Int("games", cfg.Games).
		Int("concurrency", cfg.Concurrency).
		Uint64("seed", cfg.Seed).
		Msg("arena started")
	defer logger.Info().Msg("arena finished")

	g, ctx := errgroup.WithContext(ctx)

	gameInfos := make(chan gameInfo)
	gameResults := make(chan gameResult)

	g.Go(func() error {
		defer close(gameInfos)
		return loadOpenings(ctx, cfg, gameInfos)
	})

	table := newStandings(cfg.Levels, cfg.InitialRating)
	g.Go(func() error {
		return collectResults(gameResults, table, logger)
	})

	var wg sync.WaitGroup
	engine := bot.NewEngine(cfg.Seed, zerolog.Nop())
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, engine, gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return table.sorted(), nil
}

// loadOpenings emits every pairing of levels, each opening twice with the
// colours swapped.
func loadOpenings(ctx context.Context, cfg Config, gameInfos chan<- gameInfo) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	number := 0

	for i := 0; i < len(cfg.Levels); i++ {
		for j := i + 1; j < len(cfg.Levels); j++ {
			for n := 0; n < cfg.Games; n++ {
				opening := randomOpening(rng, cfg.OpeningPlies)
				for _, pair := range [2][2]bot.Difficulty{{cfg.Levels[i], cfg.Levels[j]}, {cfg.Levels[j], cfg.Levels[i]}} {
					number++
					info := gameInfo{number: number, first: pair[0], second: pair[1], opening: opening}
					select {
					case <-ctx.Done():
						return ctx.Err()
					case gameInfos <- info:
					}
				}
			}
		}
	}
	return nil
}

// randomOpening plays up to plies random legal moves that do not end the game.
func randomOpening(rng *rand.Rand, plies int) []int {
	g := domain.NewGame()
	var opening []int
	for len(opening) < plies {
		cols := g.Board.ValidLocations()
		col := cols[rng.Intn(len(cols))]
		next := *g
		if _, err := next.MakeMove(next.CurrentPlayer, col); err != nil || next.IsFinished() {
			break
		}
		*g = next
		opening = append(opening, col)
	}
	return opening
}

func playGames(ctx context.Context, engine *bot.Engine, gameInfos <-chan gameInfo, gameResults chan<- gameResult) error {
	for info := range gameInfos {
		res, err := playGame(ctx, engine, info)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}

func playGame(ctx context.Context, engine *bot.Engine, info gameInfo) (gameResult, error) {
	g := domain.NewGame()
	for _, col := range info.opening {
		if _, err := g.MakeMove(g.CurrentPlayer, col); err != nil {
			return gameResult{}, fmt.Errorf("game %d opening: %w", info.number, err)
		}
	}

	for !g.IsFinished() {
		level := info.first
		if g.CurrentPlayer == domain.PlayerB {
			level = info.second
		}
		decision, err := engine.CalculateBestMove(ctx, g.Board, g.CurrentPlayer, level)
		if err != nil {
			return gameResult{}, fmt.Errorf("game %d: %w", info.number, err)
		}
		if _, err := g.MakeMove(g.CurrentPlayer, decision.Column); err != nil {
			return gameResult{}, fmt.Errorf("game %d: %w", info.number, err)
		}
	}

	return gameResult{info: info, winner: g.Winner, moves: g.MoveCount}, nil
}

func collectResults(gameResults <-chan gameResult, table *standings, logger zerolog.Logger) error {
	games := 0
	for res := range gameResults {
		games++
		table.record(res)
		logger.Info().
			Int("game", res.info.number).
			Str("red", res.info.first.String()).
			Str("yellow", res.info.second.String()).
			Str("result", resultString(res.winner)).
			Int("moves", res.moves).
			Int("finished", games).
			Msg("game finished")
	}
	return nil
}

func resultString(winner domain.Piece) string {
	switch winner {
	case domain.PlayerA:
		return "1-0"
	case domain.PlayerB:
		return "0-1"
	}
	return "1/2-1/2"
}
