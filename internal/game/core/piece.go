package core

import "fmt"

// Shape names a fixed jump pattern
type Shape string

const ShapeLShape Shape = "lshape"

// Directions holds the maximum step count for each of the eight directions,
// in the owning team's frame.
type Directions struct {
	Left      int `yaml:"left"`
	Right     int `yaml:"right"`
	Up        int `yaml:"up"`
	Down      int `yaml:"down"`
	UpLeft    int `yaml:"up_left"`
	UpRight   int `yaml:"up_right"`
	DownLeft  int `yaml:"down_left"`
	DownRight int `yaml:"down_right"`
}

// Steps returns the allowance for d
func (ds Directions) Steps(d Direction) int {
	switch d {
	case Left:
		return ds.Left
	case Right:
		return ds.Right
	case Up:
		return ds.Up
	case Down:
		return ds.Down
	case UpLeft:
		return ds.UpLeft
	case UpRight:
		return ds.UpRight
	case DownLeft:
		return ds.DownLeft
	case DownRight:
		return ds.DownRight
	}
	return 0
}

// Max returns the largest allowance over all directions
func (ds Directions) Max() int {
	m := 0
	for _, d := range AllDirections {
		if s := ds.Steps(d); s > m {
			m = s
		}
	}
	return m
}

// Movement is either a set of directional allowances or a fixed shape
type Movement struct {
	Directions *Directions `yaml:"directions,omitempty"`
	Shape      Shape       `yaml:"shape,omitempty"`
}

func (m Movement) IsLShape() bool { return m.Shape == ShapeLShape }

// PieceDescription describes one kind of piece in a template.
// Count is only used at setup time.
type PieceDescription struct {
	Type        string   `yaml:"type"`
	AttackPower int      `yaml:"attack_power"`
	Count       int      `yaml:"count"`
	Movement    Movement `yaml:"movement"`
}

// Piece is a unit on the board
type Piece struct {
	ID          int
	TeamID      int
	Description PieceDescription
	Position    Coordinate
}

// Key identifies the piece across all teams
func (p *Piece) Key() string {
	return fmt.Sprintf("%d_%d", p.TeamID, p.ID)
}

func (p *Piece) AttackPower() int { return p.Description.AttackPower }
