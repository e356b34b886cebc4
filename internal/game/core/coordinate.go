package core

import (
	"fmt"
	"math"
)

// Coordinate represents a position on the game grid
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewCoordinate creates a new coordinate with the given row and column
func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// IsValid checks if the coordinate is within the given bounds
func (c Coordinate) IsValid(rows, cols int) bool {
	return c.Row >= 0 && c.Row < rows && c.Col >= 0 && c.Col < cols
}

// DistanceTo calculates the Manhattan distance to another coordinate
func (c Coordinate) DistanceTo(other Coordinate) int {
	return abs(c.Row-other.Row) + abs(c.Col-other.Col)
}

// ChebyshevTo returns the king-move distance to another coordinate
func (c Coordinate) ChebyshevTo(other Coordinate) int {
	dr := abs(c.Row - other.Row)
	dc := abs(c.Col - other.Col)
	if dr > dc {
		return dr
	}
	return dc
}

// EuclideanTo returns the straight-line distance to another coordinate
func (c Coordinate) EuclideanTo(other Coordinate) float64 {
	dr := float64(c.Row - other.Row)
	dc := float64(c.Col - other.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

// Add returns a new coordinate that is the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{Row: c.Row + other.Row, Col: c.Col + other.Col}
}

// Sub returns a new coordinate that is the difference between this coordinate and another
func (c Coordinate) Sub(other Coordinate) Coordinate {
	return Coordinate{Row: c.Row - other.Row, Col: c.Col - other.Col}
}

// Scale multiplies both components by n
func (c Coordinate) Scale(n int) Coordinate {
	return Coordinate{Row: c.Row * n, Col: c.Col * n}
}

// Equal checks if two coordinates are equal
func (c Coordinate) Equal(other Coordinate) bool {
	return c.Row == other.Row && c.Col == other.Col
}

// Neighbors8 returns the orthogonal and diagonal neighbours, unfiltered
func (c Coordinate) Neighbors8() []Coordinate {
	out := make([]Coordinate, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			out = append(out, Coordinate{Row: c.Row + dr, Col: c.Col + dc})
		}
	}
	return out
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
