package core

import (
	"fmt"
	"strconv"
	"strings"
)

// CellKind tags what occupies a grid cell
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellPiece
	CellBase
	CellObstacle
)

// Wire prefixes. An obstacle is the bare "b" and a base is "b:<team>".
const (
	piecePrefix  = "p:"
	basePrefix   = "b:"
	obstacleWire = "b"
)

// Cell is the content of one grid square.
// Team is set for pieces and bases; Piece only for pieces.
type Cell struct {
	Kind  CellKind
	Team  int
	Piece int
}

var (
	EmptyCell    = Cell{Kind: CellEmpty}
	ObstacleCell = Cell{Kind: CellObstacle}
)

func PieceCell(teamID, pieceID int) Cell {
	return Cell{Kind: CellPiece, Team: teamID, Piece: pieceID}
}

func BaseCell(teamID int) Cell {
	return Cell{Kind: CellBase, Team: teamID}
}

func (c Cell) IsEmpty() bool    { return c.Kind == CellEmpty }
func (c Cell) IsPiece() bool    { return c.Kind == CellPiece }
func (c Cell) IsBase() bool     { return c.Kind == CellBase }
func (c Cell) IsObstacle() bool { return c.Kind == CellObstacle }

// String returns the wire encoding of the cell
func (c Cell) String() string {
	switch c.Kind {
	case CellPiece:
		return fmt.Sprintf("%s%d_%d", piecePrefix, c.Team, c.Piece)
	case CellBase:
		return basePrefix + strconv.Itoa(c.Team)
	case CellObstacle:
		return obstacleWire
	default:
		return ""
	}
}

// ParseCell decodes the wire encoding produced by Cell.String
func ParseCell(s string) (Cell, error) {
	switch {
	case s == "":
		return EmptyCell, nil
	case s == obstacleWire:
		return ObstacleCell, nil
	case strings.HasPrefix(s, basePrefix):
		team, err := strconv.Atoi(s[len(basePrefix):])
		if err != nil {
			return Cell{}, fmt.Errorf("%w: base cell %q", ErrMalformedCell, s)
		}
		return BaseCell(team), nil
	case strings.HasPrefix(s, piecePrefix):
		teamStr, pieceStr, ok := strings.Cut(s[len(piecePrefix):], "_")
		if !ok {
			return Cell{}, fmt.Errorf("%w: piece cell %q", ErrMalformedCell, s)
		}
		team, err := strconv.Atoi(teamStr)
		if err != nil {
			return Cell{}, fmt.Errorf("%w: piece cell %q", ErrMalformedCell, s)
		}
		piece, err := strconv.Atoi(pieceStr)
		if err != nil {
			return Cell{}, fmt.Errorf("%w: piece cell %q", ErrMalformedCell, s)
		}
		return PieceCell(team, piece), nil
	}
	return Cell{}, fmt.Errorf("%w: %q", ErrMalformedCell, s)
}
