package core

import (
	"fmt"
	"strings"
)

// Grid is the playing field, stored row-major
type Grid struct {
	Rows, Cols int
	C          []Cell // length = Rows*Cols
}

func NewGrid(rows, cols int) *Grid {
	return &Grid{Rows: rows, Cols: cols, C: make([]Cell, rows*cols)}
}

func (g *Grid) Idx(row, col int) int { return row*g.Cols + col }

// InBounds checks if a coordinate lies on the grid
func (g *Grid) InBounds(c Coordinate) bool {
	return c.IsValid(g.Rows, g.Cols)
}

// At returns the cell at c. c must be in bounds.
func (g *Grid) At(c Coordinate) Cell {
	return g.C[g.Idx(c.Row, c.Col)]
}

// Set stores cell at c. c must be in bounds.
func (g *Grid) Set(c Coordinate, cell Cell) {
	g.C[g.Idx(c.Row, c.Col)] = cell
}

// IsEmptyAt reports whether c is in bounds and unoccupied
func (g *Grid) IsEmptyAt(c Coordinate) bool {
	return g.InBounds(c) && g.At(c).IsEmpty()
}

func (g *Grid) Clone() *Grid {
	out := &Grid{Rows: g.Rows, Cols: g.Cols, C: make([]Cell, len(g.C))}
	copy(out.C, g.C)
	return out
}

// Count returns the number of cells matching pred
func (g *Grid) Count(pred func(Cell) bool) int {
	n := 0
	for _, c := range g.C {
		if pred(c) {
			n++
		}
	}
	return n
}

// RotateForTeam returns a copy of the grid turned so that the team's home edge is row 0
func (g *Grid) RotateForTeam(teamID int) *Grid {
	return g.rotate(OrientationFor(teamID))
}

func (g *Grid) Rotate180() *Grid { return g.rotate(OrientHalfTurn) }

// RotateCW turns the grid a quarter clockwise; the result is Cols×Rows
func (g *Grid) RotateCW() *Grid { return g.rotate(OrientClockwise) }

// RotateCCW turns the grid a quarter counter-clockwise; the result is Cols×Rows
func (g *Grid) RotateCCW() *Grid { return g.rotate(OrientCounter) }

func (g *Grid) rotate(o Orientation) *Grid {
	rows, cols := o.Dims(g.Rows, g.Cols)
	out := NewGrid(rows, cols)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			src := Coordinate{Row: r, Col: c}
			out.Set(o.ToFrame(src, g.Rows, g.Cols), g.At(src))
		}
	}
	return out
}

// RotateBackForTeam undoes RotateForTeam for the same team
func (g *Grid) RotateBackForTeam(teamID int) *Grid {
	o := OrientationFor(teamID)
	rows, cols := o.Dims(g.Rows, g.Cols) // every rotation is its own dimension inverse
	out := NewGrid(rows, cols)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			src := Coordinate{Row: r, Col: c}
			out.Set(o.FromFrame(src, rows, cols), g.At(src))
		}
	}
	return out
}

// Encode returns the wire form of the grid
func (g *Grid) Encode() [][]string {
	out := make([][]string, g.Rows)
	for r := 0; r < g.Rows; r++ {
		row := make([]string, g.Cols)
		for c := 0; c < g.Cols; c++ {
			row[c] = g.C[g.Idx(r, c)].String()
		}
		out[r] = row
	}
	return out
}

// DecodeGrid parses the wire form of a grid. All rows must have the same length.
func DecodeGrid(rows [][]string) (*Grid, error) {
	if len(rows) == 0 {
		return NewGrid(0, 0), nil
	}
	g := NewGrid(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != g.Cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedCell, r, len(row), g.Cols)
		}
		for c, s := range row {
			cell, err := ParseCell(s)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", r, c, err)
			}
			g.C[g.Idx(r, c)] = cell
		}
	}
	return g, nil
}

// String renders the grid for debugging, one row per line
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			s := g.C[g.Idx(r, c)].String()
			if s == "" {
				s = "."
			}
			sb.WriteString(fmt.Sprintf("%-7s", s))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
