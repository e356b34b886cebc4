package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// numberedGrid fills every cell with a distinct piece so rotations are traceable
func numberedGrid(rows, cols int) *Grid {
	g := NewGrid(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.Set(NewCoordinate(r, c), PieceCell(1, r*cols+c+1))
		}
	}
	return g
}

func TestGrid_RotationRoundTrip(t *testing.T) {
	shapes := []struct{ rows, cols int }{{5, 5}, {3, 7}, {8, 2}, {1, 1}}

	for _, shape := range shapes {
		for team := 1; team <= MaxTeams; team++ {
			g := numberedGrid(shape.rows, shape.cols)
			rotated := g.RotateForTeam(team)
			back := rotated.RotateBackForTeam(team)

			assert.Equal(t, g, back, "team %d on %dx%d grid", team, shape.rows, shape.cols)
		}
	}
}

func TestGrid_RotationShape(t *testing.T) {
	g := numberedGrid(3, 7)

	r2 := g.RotateForTeam(2)
	assert.Equal(t, 3, r2.Rows)
	assert.Equal(t, 7, r2.Cols)

	r3 := g.RotateForTeam(3)
	assert.Equal(t, 7, r3.Rows)
	assert.Equal(t, 3, r3.Cols)
}

func TestGrid_RotationMovesHomeEdge(t *testing.T) {
	g := NewGrid(4, 6)
	g.Set(NewCoordinate(3, 2), BaseCell(2)) // bottom edge
	g.Set(NewCoordinate(1, 0), BaseCell(3)) // left edge
	g.Set(NewCoordinate(2, 5), BaseCell(4)) // right edge

	for team := 2; team <= 4; team++ {
		rotated := g.RotateForTeam(team)
		found := false
		for c := 0; c < rotated.Cols; c++ {
			if rotated.At(NewCoordinate(0, c)) == BaseCell(team) {
				found = true
			}
		}
		assert.True(t, found, "team %d base should be on row 0 of its frame", team)
	}
}

func TestOrientation_VectorMatchesFrame(t *testing.T) {
	rows, cols := 5, 8
	from := NewCoordinate(2, 3)
	for team := 1; team <= MaxTeams; team++ {
		o := OrientationFor(team)
		for _, dir := range AllDirections {
			boardStep := dir.BoardVector(team)
			// Moving by the board vector must equal moving by the frame vector inside the frame
			inFrame := o.ToFrame(from, rows, cols).Add(DirectionVectors[dir])
			assert.Equal(t, from.Add(boardStep), o.FromFrame(inFrame, rows, cols), "team %d dir %s", team, dir)
		}
	}
}

func TestDirectionOf(t *testing.T) {
	d, steps, ok := DirectionOf(1, NewCoordinate(0, 3))
	require.True(t, ok)
	assert.Equal(t, Right, d)
	assert.Equal(t, 3, steps)

	d, steps, ok = DirectionOf(2, NewCoordinate(0, 3))
	require.True(t, ok)
	assert.Equal(t, Left, d, "team 2 sees the board turned around")
	assert.Equal(t, 3, steps)

	d, _, ok = DirectionOf(1, NewCoordinate(-2, -2))
	require.True(t, ok)
	assert.Equal(t, UpLeft, d)

	_, _, ok = DirectionOf(1, NewCoordinate(1, 2))
	assert.False(t, ok)
	_, _, ok = DirectionOf(1, NewCoordinate(0, 0))
	assert.False(t, ok)
}

func TestGrid_EncodeDecode(t *testing.T) {
	g := NewGrid(2, 3)
	g.Set(NewCoordinate(0, 0), PieceCell(1, 1))
	g.Set(NewCoordinate(0, 2), BaseCell(1))
	g.Set(NewCoordinate(1, 1), ObstacleCell)

	encoded := g.Encode()
	assert.Equal(t, [][]string{{"p:1_1", "", "b:1"}, {"", "b", ""}}, encoded)

	decoded, err := DecodeGrid(encoded)
	require.NoError(t, err)
	assert.Equal(t, g, decoded)

	_, err = DecodeGrid([][]string{{"", ""}, {""}})
	assert.ErrorIs(t, err, ErrMalformedCell)
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g := NewGrid(2, 2)
	clone := g.Clone()
	clone.Set(NewCoordinate(0, 0), ObstacleCell)

	assert.True(t, g.At(NewCoordinate(0, 0)).IsEmpty())
	assert.Equal(t, 1, clone.Count(Cell.IsObstacle))
}

func TestGrid_NamedRotations(t *testing.T) {
	g := numberedGrid(2, 3)
	ids := func(g *Grid) [][]int {
		out := make([][]int, g.Rows)
		for r := range out {
			out[r] = make([]int, g.Cols)
			for c := range out[r] {
				out[r][c] = g.At(NewCoordinate(r, c)).Piece
			}
		}
		return out
	}

	assert.Equal(t, [][]int{{6, 5, 4}, {3, 2, 1}}, ids(g.Rotate180()))
	assert.Equal(t, [][]int{{4, 1}, {5, 2}, {6, 3}}, ids(g.RotateCW()))
	assert.Equal(t, [][]int{{3, 6}, {2, 5}, {1, 4}}, ids(g.RotateCCW()))
	assert.Equal(t, g, g.RotateCW().RotateCCW())
}
