package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// Difficulty is the search depth offered to players.
type Difficulty int

const (
	Easy   Difficulty = 1
	Medium Difficulty = 2
	Hard   Difficulty = 3
	Boss   Difficulty = 4
)

var difficultyNames = map[Difficulty]string{
	Easy:   "easy",
	Medium: "medium",
	Hard:   "hard",
	Boss:   "boss",
}

var BotNames = map[Difficulty]string{
	Easy:   "Alice",
	Medium: "Bob",
	Hard:   "Charles",
	Boss:   "Boss",
}

func (d Difficulty) Depth() int {
	return int(d)
}

func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Boss
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

func (d Difficulty) BotName() string {
	if name, ok := BotNames[d]; ok {
		return name
	}
	return "BOT"
}

// ParseDifficulty accepts a level name ("easy" ... "boss") or its depth ("1" ... "4").
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range difficultyNames {
		if name == s {
			return d, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Difficulty(n).Valid() {
		return Difficulty(n), nil
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}
