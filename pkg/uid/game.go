package uid

import (
	"github.com/google/uuid"
)

// GenerateGameID returns a random identifier for a hosted game.
func GenerateGameID() string {
	return uuid.NewString()
}

// IsGameID reports whether id has the shape GenerateGameID produces.
func IsGameID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
