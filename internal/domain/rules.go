package domain

// Direction is a step between neighbouring cells of a line.
type Direction struct {
	DRow, DCol int
}

// Directions holds the four line orientations a window can follow.
var Directions = [4]Direction{
	{DRow: 0, DCol: 1},  // horizontal
	{DRow: 1, DCol: 0},  // vertical
	{DRow: 1, DCol: 1},  // diagonal /
	{DRow: -1, DCol: 1}, // diagonal \
}

// Window is a run of ToWin cells along one direction.
type Window [ToWin]Cell

// Windows lists every window that fits on the board, grouped by direction.
// It is computed once; callers must not modify it.
var Windows = buildWindows()

func buildWindows() []Window {
	var windows []Window
	for _, d := range Directions {
		for row := 0; row < Rows; row++ {
			for col := 0; col < Columns; col++ {
				endRow := row + d.DRow*(ToWin-1)
				endCol := col + d.DCol*(ToWin-1)
				if endRow < 0 || endRow >= Rows || endCol < 0 || endCol >= Columns {
					continue
				}
				var w Window
				for i := 0; i < ToWin; i++ {
					w[i] = Cell{Row: row + d.DRow*i, Column: col + d.DCol*i}
				}
				windows = append(windows, w)
			}
		}
	}
	return windows
}

// Pieces reads the cells of w from the board.
func (b Board) Pieces(w Window) [ToWin]Piece {
	var out [ToWin]Piece
	for i, c := range w {
		out[i] = b[c.Row][c.Column]
	}
	return out
}

// WinningLine returns the first window fully owned by piece.
func (b Board) WinningLine(piece Piece) (Window, bool) {
	if !piece.IsPlayer() {
		return Window{}, false
	}
	for _, w := range Windows {
		owned := true
		for _, c := range w {
			if b[c.Row][c.Column] != piece {
				owned = false
				break
			}
		}
		if owned {
			return w, true
		}
	}
	return Window{}, false
}

// WinningMove reports whether piece has four in a row anywhere on the board.
func (b Board) WinningMove(piece Piece) bool {
	_, ok := b.WinningLine(piece)
	return ok
}

// Winner returns the player owning a winning line, or Empty.
func (b Board) Winner() Piece {
	if b.WinningMove(PlayerA) {
		return PlayerA
	}
	if b.WinningMove(PlayerB) {
		return PlayerB
	}
	return Empty
}

// IsTerminal reports whether the game on this board has ended.
func (b Board) IsTerminal() bool {
	return b.WinningMove(PlayerA) || b.WinningMove(PlayerB) || b.IsFull()
}
