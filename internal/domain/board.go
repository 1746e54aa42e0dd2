package domain

import (
	"fmt"
	"strings"
)

// Board is the grid of cells. Row 0 is the bottom row, so a column fills
// from index 0 upward. Board is a value: assigning it copies every cell.
type Board [Rows][Columns]Piece

// Cell addresses one position on the board.
type Cell struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func NewBoard() Board {
	return Board{}
}

func checkColumn(column int) error {
	if column < 0 || column >= Columns {
		return fmt.Errorf("%w: %d", ErrInvalidColumn, column)
	}
	return nil
}

// IsValidColumn reports whether the top cell of column is still empty.
func (b Board) IsValidColumn(column int) (bool, error) {
	if err := checkColumn(column); err != nil {
		return false, err
	}
	return b[Rows-1][column] == Empty, nil
}

// NextOpenRow returns the lowest empty row of column.
func (b Board) NextOpenRow(column int) (int, error) {
	if err := checkColumn(column); err != nil {
		return -1, err
	}
	for row := 0; row < Rows; row++ {
		if b[row][column] == Empty {
			return row, nil
		}
	}
	return -1, fmt.Errorf("%w: %d", ErrColumnFull, column)
}

// DropPiece writes piece into (row, column). The caller is responsible for
// having picked the row with NextOpenRow.
func (b *Board) DropPiece(row, column int, piece Piece) error {
	if err := checkColumn(column); err != nil {
		return err
	}
	if row < 0 || row >= Rows {
		return fmt.Errorf("%w: row %d", ErrInvalidBoard, row)
	}
	if !piece.IsPlayer() {
		return fmt.Errorf("%w: %d", ErrInvalidPiece, piece)
	}
	b[row][column] = piece
	return nil
}

// Drop places piece into the lowest open row of column and returns that row.
func (b *Board) Drop(column int, piece Piece) (int, error) {
	row, err := b.NextOpenRow(column)
	if err != nil {
		return -1, err
	}
	if err := b.DropPiece(row, column, piece); err != nil {
		return -1, err
	}
	return row, nil
}

// ValidLocations lists the playable columns in ascending order.
func (b Board) ValidLocations() []int {
	locations := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b[Rows-1][col] == Empty {
			locations = append(locations, col)
		}
	}
	return locations
}

func (b Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if b[Rows-1][col] == Empty {
			return false
		}
	}
	return true
}

// Count returns how many cells hold piece.
func (b Board) Count(piece Piece) int {
	n := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if b[row][col] == piece {
				n++
			}
		}
	}
	return n
}

// Validate checks boards that come from outside the process: every cell
// must hold a known piece and no piece may float above an empty cell.
func (b Board) Validate() error {
	for col := 0; col < Columns; col++ {
		seenEmpty := false
		for row := 0; row < Rows; row++ {
			switch piece := b[row][col]; {
			case piece == Empty:
				seenEmpty = true
			case !piece.IsPlayer():
				return fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidBoard, row, col, piece)
			case seenEmpty:
				return fmt.Errorf("%w: cell (%d,%d)", ErrFloatingPiece, row, col)
			}
		}
	}
	return nil
}

// BoardFromGrid converts a JSON grid (outer index = row, row 0 at the bottom).
func BoardFromGrid(rows [][]int) (Board, error) {
	var b Board
	if len(rows) != Rows {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, Rows, len(rows))
	}
	for r, cells := range rows {
		if len(cells) != Columns {
			return b, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidBoard, r, len(cells), Columns)
		}
		for c, v := range cells {
			b[r][c] = Piece(v)
		}
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Grid converts the board to the JSON grid used by the transports.
func (b Board) Grid() [][]int {
	rows := make([][]int, Rows)
	for r := range rows {
		rows[r] = make([]int, Columns)
		for c := range rows[r] {
			rows[r][c] = int(b[r][c])
		}
	}
	return rows
}

// String draws the board top row first.
func (b Board) String() string {
	var sb strings.Builder
	for row := Rows - 1; row >= 0; row-- {
		for col := 0; col < Columns; col++ {
			sb.WriteString(b[row][col].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
