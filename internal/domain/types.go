package domain

// Piece is the state of a single board cell.
type Piece int

const (
	Empty   Piece = 0
	PlayerA Piece = 1
	PlayerB Piece = 2
)

// Opponent returns the other player. Empty has no opponent.
func (p Piece) Opponent() Piece {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	}
	return Empty
}

func (p Piece) IsPlayer() bool {
	return p == PlayerA || p == PlayerB
}

func (p Piece) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	case Empty:
		return "."
	}
	return "?"
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn Error = "column out of range"
	ErrColumnFull    Error = "column is full"
	ErrInvalidPiece  Error = "invalid piece"
	ErrInvalidDepth  Error = "invalid search depth"
	ErrInvalidBoard  Error = "invalid board"
	ErrFloatingPiece Error = "piece above an empty cell"
	ErrGameOver      Error = "game is over"
	ErrNotYourTurn   Error = "not your turn"
)
