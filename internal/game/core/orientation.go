package core

// Orientation is how a team's frame is turned relative to the board
type Orientation int

const (
	OrientIdentity Orientation = iota // team 1, home edge is row 0
	OrientHalfTurn                    // team 2, 180°
	OrientClockwise                   // team 3, +90°, home edge is column 0
	OrientCounter                     // team 4, -90°, home edge is the last column
)

// OrientationFor maps a team ID to its orientation. It only depends on the ID.
func OrientationFor(teamID int) Orientation {
	switch teamID {
	case 2:
		return OrientHalfTurn
	case 3:
		return OrientClockwise
	case 4:
		return OrientCounter
	default:
		return OrientIdentity
	}
}

// Dims returns the shape of a rows×cols grid after rotation
func (o Orientation) Dims(rows, cols int) (int, int) {
	if o == OrientClockwise || o == OrientCounter {
		return cols, rows
	}
	return rows, cols
}

// ToFrame maps a board coordinate into the rotated frame of a rows×cols board
func (o Orientation) ToFrame(c Coordinate, rows, cols int) Coordinate {
	switch o {
	case OrientHalfTurn:
		return Coordinate{Row: rows - 1 - c.Row, Col: cols - 1 - c.Col}
	case OrientClockwise:
		return Coordinate{Row: c.Col, Col: rows - 1 - c.Row}
	case OrientCounter:
		return Coordinate{Row: cols - 1 - c.Col, Col: c.Row}
	default:
		return c
	}
}

// FromFrame maps a rotated-frame coordinate back onto a rows×cols board
func (o Orientation) FromFrame(c Coordinate, rows, cols int) Coordinate {
	switch o {
	case OrientHalfTurn:
		return Coordinate{Row: rows - 1 - c.Row, Col: cols - 1 - c.Col}
	case OrientClockwise:
		return Coordinate{Row: rows - 1 - c.Col, Col: c.Row}
	case OrientCounter:
		return Coordinate{Row: c.Col, Col: cols - 1 - c.Row}
	default:
		return c
	}
}

// VectorToBoard turns a step expressed in the team frame into a board step
func (o Orientation) VectorToBoard(v Coordinate) Coordinate {
	switch o {
	case OrientHalfTurn:
		return Coordinate{Row: -v.Row, Col: -v.Col}
	case OrientClockwise:
		return Coordinate{Row: -v.Col, Col: v.Row}
	case OrientCounter:
		return Coordinate{Row: v.Col, Col: -v.Row}
	default:
		return v
	}
}

// Direction is one of the eight movement directions of a team frame
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
	UpLeft
	UpRight
	DownLeft
	DownRight
)

// AllDirections in Directions field order
var AllDirections = [8]Direction{Left, Right, Up, Down, UpLeft, UpRight, DownLeft, DownRight}

// DirectionVectors gives the unit step of each direction in the team frame
var DirectionVectors = [8]Coordinate{
	Left:      {Row: 0, Col: -1},
	Right:     {Row: 0, Col: 1},
	Up:        {Row: -1, Col: 0},
	Down:      {Row: 1, Col: 0},
	UpLeft:    {Row: -1, Col: -1},
	UpRight:   {Row: -1, Col: 1},
	DownLeft:  {Row: 1, Col: -1},
	DownRight: {Row: 1, Col: 1},
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case UpLeft:
		return "up-left"
	case UpRight:
		return "up-right"
	case DownLeft:
		return "down-left"
	case DownRight:
		return "down-right"
	}
	return "unknown"
}

// BoardVector returns the board step for d as seen by teamID
func (d Direction) BoardVector(teamID int) Coordinate {
	return OrientationFor(teamID).VectorToBoard(DirectionVectors[d])
}

// DirectionOf finds the frame direction a board step points along for teamID.
// The step must be a non-zero multiple of a unit direction; ok is false otherwise.
func DirectionOf(teamID int, delta Coordinate) (d Direction, steps int, ok bool) {
	dr, dc := abs(delta.Row), abs(delta.Col)
	if (dr == 0 && dc == 0) || (dr != 0 && dc != 0 && dr != dc) {
		return 0, 0, false
	}
	steps = dr
	if dc > steps {
		steps = dc
	}
	unit := Coordinate{Row: sign(delta.Row), Col: sign(delta.Col)}
	for _, dir := range AllDirections {
		if dir.BoardVector(teamID).Equal(unit) {
			return dir, steps, true
		}
	}
	return 0, 0, false
}

// KnightOffsets lists the eight L-shaped jumps
var KnightOffsets = [8]Coordinate{
	{Row: -2, Col: -1}, {Row: -2, Col: 1},
	{Row: -1, Col: -2}, {Row: -1, Col: 2},
	{Row: 1, Col: -2}, {Row: 1, Col: 2},
	{Row: 2, Col: -1}, {Row: 2, Col: 1},
}
