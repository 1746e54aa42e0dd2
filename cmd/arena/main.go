package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"github.com/iamasit07/connect4-engine/internal/logging"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Levels        []bot.Difficulty
	Games         int
	OpeningPlies  int
	Concurrency   int
	Seed          uint64
	InitialRating int
}

func main() {
	var (
		levels      = flag.String("levels", "easy,medium,hard,boss", "comma separated difficulties to pit against each other")
		games       = flag.Int("games", 10, "openings per pairing (each is played with both colours)")
		plies       = flag.Int("opening-plies", 2, "random moves played before the engines take over")
		concurrency = flag.Int("concurrency", runtime.NumCPU(), "games played at once")
		seed        = flag.Uint64("seed", 0, "seed for openings and engines (0 uses the clock)")
		logLevel    = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	logging.Init(*logLevel, true)

	cfg := Config{
		Games:         *games,
		OpeningPlies:  *plies,
		Concurrency:   *concurrency,
		Seed:          *seed,
		InitialRating: 1200,
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	for _, name := range strings.Split(*levels, ",") {
		d, err := bot.ParseDifficulty(name)
		if err != nil {
			log.Fatal().Err(err).Msg("bad -levels")
		}
		cfg.Levels = append(cfg.Levels, d)
	}
	if len(cfg.Levels) < 2 {
		log.Fatal().Msg("need at least two levels")
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	standings, err := run(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("arena failed")
	}
	printStandings(os.Stdout, standings)
}
