package domain

// Move is a piece placement.
type Move struct {
	Row    int   `json:"row"`
	Column int   `json:"column"`
	Piece  Piece `json:"piece"`
}

// Game tracks one game epoch on a board: whose turn it is and how it ended.
type Game struct {
	Board         Board
	CurrentPlayer Piece
	Status        GameStatus
	Winner        Piece
	WinningLine   *Window
	MoveCount     int
	LastMove      *Move
}

func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: PlayerA,
		Status:        StatusActive,
		Winner:        Empty,
	}
}

func (g *Game) MakeMove(player Piece, column int) (int, error) {
	if g.IsFinished() {
		return -1, ErrGameOver
	}
	if !player.IsPlayer() {
		return -1, ErrInvalidPiece
	}
	if player != g.CurrentPlayer {
		return -1, ErrNotYourTurn
	}

	row, err := g.Board.Drop(column, player)
	if err != nil {
		return -1, err
	}

	g.MoveCount++
	g.LastMove = &Move{Row: row, Column: column, Piece: player}

	if line, won := g.Board.WinningLine(player); won {
		g.Status = StatusWon
		g.Winner = player
		g.WinningLine = &line
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = player.Opponent()
	return row, nil
}

// Reset clears the board and gives the first move back to PlayerA.
func (g *Game) Reset() {
	*g = *NewGame()
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
