package snake

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// ErrInvalidGeometry is returned when the board is too small to start a
// session: it must hold the initial vertical snake and at least one free
// cell for food.
var ErrInvalidGeometry = errors.New("snake: board too small to play")

// Columns returns how many whole cells fit across a board of the given
// width. Degenerate inputs yield 0.
func Columns(boardWidthPx, cellSizePx int) int {
	if boardWidthPx <= 0 || cellSizePx <= 0 {
		return 0
	}
	return boardWidthPx / cellSizePx
}

// Rows returns how many whole cells fit down a board of the given height.
// Degenerate inputs yield 0.
func Rows(boardHeightPx, cellSizePx int) int {
	if boardHeightPx <= 0 || cellSizePx <= 0 {
		return 0
	}
	return boardHeightPx / cellSizePx
}

// Geometry is the board size in cells.
type Geometry struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

// NewGeometry computes the board size from pixel bounds and a cell size.
func NewGeometry(boardWidthPx, boardHeightPx, cellSizePx int) Geometry {
	return Geometry{
		Columns: Columns(boardWidthPx, cellSizePx),
		Rows:    Rows(boardHeightPx, cellSizePx),
	}
}

// ViewportGeometry derives the board from a terminal viewport. One
// horizontal viewport unit is CellAspect characters wide so cells look
// square; the HUD rows and the board frame are excluded.
func ViewportGeometry(board config.BoardConfig, screenW, screenH int) Geometry {
	aspect := max(board.CellAspect, 1)
	widthPx := (screenW - 2) / aspect
	heightPx := screenH - board.HUDRows - 2
	return NewGeometry(widthPx, heightPx, board.CellSize)
}

// Area returns the number of cells on the board.
func (g Geometry) Area() int {
	return g.Columns * g.Rows
}

// Contains reports whether c lies on the board.
func (g Geometry) Contains(c Cell) bool {
	return c.Col >= 0 && c.Col < g.Columns && c.Row >= 0 && c.Row < g.Rows
}

// Center returns the cell the initial snake's head is placed on.
func (g Geometry) Center() Cell {
	return Cell{Col: g.Columns / 2, Row: g.Rows / 2}
}

// Validate checks that a snake of the given length fits vertically below
// the center with at least one cell left over for food.
func (g Geometry) Validate(length int) error {
	switch {
	case g.Columns <= 0 || g.Rows <= 0:
		return fmt.Errorf("%w: %dx%d cells", ErrInvalidGeometry, g.Columns, g.Rows)
	case g.Rows/2+length-1 >= g.Rows:
		return fmt.Errorf("%w: %d rows cannot hold a %d-cell snake below the center", ErrInvalidGeometry, g.Rows, length)
	case g.Area() <= length:
		return fmt.Errorf("%w: no room for food on %dx%d cells", ErrInvalidGeometry, g.Columns, g.Rows)
	}
	return nil
}
