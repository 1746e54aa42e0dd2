package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/iamasit07/connect4-engine/internal/domain"
)

var (
	redPiece    = color.New(color.FgHiRed, color.Bold)
	yellowPiece = color.New(color.FgHiYellow, color.Bold)
	winPiece    = color.New(color.FgHiGreen, color.Bold)
	emptyCell   = color.New(color.FgHiBlack)
	frameColor  = color.New(color.FgBlue)
	errorColor  = color.New(color.FgRed)
)

func pieceColor(p domain.Piece) *color.Color {
	switch p {
	case domain.PlayerA:
		return redPiece
	case domain.PlayerB:
		return yellowPiece
	}
	return emptyCell
}

func playerName(p domain.Piece) string {
	switch p {
	case domain.PlayerA:
		return "Red"
	case domain.PlayerB:
		return "Yellow"
	}
	return "nobody"
}

// renderBoard draws the board top row first with human column numbers below.
// Cells of the winning line, if any, are highlighted.
func renderBoard(w io.Writer, g *domain.Game) {
	highlight := map[domain.Cell]bool{}
	if g.WinningLine != nil {
		for _, cell := range g.WinningLine {
			highlight[cell] = true
		}
	}

	for row := domain.Rows - 1; row >= 0; row-- {
		frameColor.Fprint(w, "|")
		for col := 0; col < domain.Columns; col++ {
			piece := g.Board[row][col]
			switch {
			case piece == domain.Empty:
				emptyCell.Fprint(w, " .")
			case highlight[domain.Cell{Row: row, Column: col}]:
				winPiece.Fprint(w, " "+piece.String())
			default:
				pieceColor(piece).Fprint(w, " "+piece.String())
			}
		}
		frameColor.Fprintln(w, " |")
	}
	frameColor.Fprintln(w, "+---------------+")

	fmt.Fprint(w, " ")
	for col := 1; col <= domain.Columns; col++ {
		fmt.Fprintf(w, " %d", col)
	}
	fmt.Fprintln(w)
}

func renderResult(w io.Writer, g *domain.Game) {
	switch g.Status {
	case domain.StatusWon:
		pieceColor(g.Winner).Fprintf(w, "%s wins after %d moves!\n", playerName(g.Winner), g.MoveCount)
	case domain.StatusDraw:
		fmt.Fprintln(w, "The board is full. It's a draw.")
	}
}
