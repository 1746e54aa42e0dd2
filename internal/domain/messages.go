package domain

const (
	MessageGameState = "game_state"
	MessageMoveMade  = "move_made"
	MessageGameOver  = "game_over"
	MessageGameReset = "game_reset"
	MessageError     = "error"

	ClientMove  = "move"
	ClientReset = "reset"
)

// ClientMessage is a frame sent by the player. Column is nil when the frame
// carries no column.
type ClientMessage struct {
	Type   string `json:"type"`
	Column *int   `json:"column,omitempty"`
}

type ServerMessage struct {
	Type        string  `json:"type"`
	Message     string  `json:"message,omitempty"`
	GameID      string  `json:"gameId,omitempty"`
	Column      *int    `json:"column,omitempty"`
	Row         *int    `json:"row,omitempty"`
	Player      Piece   `json:"player,omitempty"`
	Score       *int64  `json:"score,omitempty"`
	Board       [][]int `json:"board,omitempty"`
	NextTurn    Piece   `json:"nextTurn,omitempty"`
	Status      string  `json:"status,omitempty"`
	Winner      Piece   `json:"winner,omitempty"`
	WinningLine []Cell  `json:"winningLine,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
