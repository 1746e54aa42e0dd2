package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
)

const KFactor = 32.0

// calculateElo returns the new rating for player A.
// score is 1.0 for a win, 0.5 for a draw, and 0.0 for a loss.
func calculateElo(ratingA, ratingB int, score float64) int {
	expectedScoreA := 1.0 / (1.0 + math.Pow(10.0, float64(ratingB-ratingA)/400.0))
	newRating := float64(ratingA) + KFactor*(score-expectedScoreA)

	if newRating < 0 {
		return 0
	}
	return int(math.Round(newRating))
}

type standing struct {
	Level  bot.Difficulty
	Wins   int
	Losses int
	Draws  int
	Rating int
}

func (s *standing) games() int {
	return s.Wins + s.Losses + s.Draws
}

func (s *standing) score() float64 {
	if s.games() == 0 {
		return 0
	}
	return (float64(s.Wins) + 0.5*float64(s.Draws)) / float64(s.games())
}

// standings is only touched by the result collector goroutine.
type standings struct {
	byLevel map[bot.Difficulty]*standing
}

func newStandings(levels []bot.Difficulty, rating int) *standings {
	t := &standings{byLevel: make(map[bot.Difficulty]*standing, len(levels))}
	for _, level := range levels {
		t.byLevel[level] = &standing{Level: level, Rating: rating}
	}
	return t
}

func (t *standings) record(res gameResult) {
	red, yellow := t.byLevel[res.info.first], t.byLevel[res.info.second]

	var redScore float64
	switch res.winner {
	case domain.PlayerA:
		redScore = 1
		red.Wins++
		yellow.Losses++
	case domain.PlayerB:
		red.Losses++
		yellow.Wins++
	default:
		redScore = 0.5
		red.Draws++
		yellow.Draws++
	}

	redRating, yellowRating := red.Rating, yellow.Rating
	red.Rating = calculateElo(redRating, yellowRating, redScore)
	yellow.Rating = calculateElo(yellowRating, redRating, 1-redScore)
}

func (t *standings) sorted() []*standing {
	out := make([]*standing, 0, len(t.byLevel))
	for _, s := range t.byLevel {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Level < out[j].Level
	})
	return out
}

func printStandings(w io.Writer, table []*standing) {
	header := color.New(color.Bold)
	header.Fprintln(w, "Final standings")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "level\tbot\tdepth\tW\tL\tD\tscore\telo")
	for _, s := range table {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%.3f\t%d\n",
			s.Level, s.Level.BotName(), s.Level.Depth(), s.Wins, s.Losses, s.Draws, s.score(), s.Rating)
	}
	tw.Flush()
}
