package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fourTeams = `
rows: 12
cols: 12
teams: 4
flags: 3
blocks: 4
placement: spaced_out
move_time_limit_seconds: 30
pieces:
  - type: Rook
    attack_power: 2
    count: 2
    movement:
      directions: {left: 4, right: 4, up: 4, down: 4}
  - type: Knight
    attack_power: 1
    count: 1
    movement:
      shape: lshape
`

func TestParse(t *testing.T) {
	tmpl, err := Parse([]byte(fourTeams))
	require.NoError(t, err)

	assert.Equal(t, 12, tmpl.Rows)
	assert.Equal(t, 4, tmpl.Teams)
	assert.Equal(t, 3, tmpl.Flags)
	assert.Equal(t, core.PlacementSpacedOut, tmpl.Placement)
	assert.Equal(t, 30, tmpl.MoveTimeLimitSeconds)
	assert.Equal(t, core.Unlimited, tmpl.TotalTimeLimitSeconds, "omitted limits are unlimited")
	assert.Equal(t, 3, tmpl.PiecesPerTeam())

	require.Len(t, tmpl.Pieces, 2)
	rook := tmpl.Pieces[0]
	require.NotNil(t, rook.Movement.Directions)
	assert.Equal(t, 4, rook.Movement.Directions.Up)
	assert.Equal(t, 0, rook.Movement.Directions.UpLeft)
	assert.True(t, tmpl.Pieces[1].Movement.IsLShape())
}

func TestParse_DefaultsPlacement(t *testing.T) {
	tmpl, err := Parse([]byte(`
rows: 5
cols: 5
teams: 1
flags: 1
pieces:
  - {type: Pawn, attack_power: 1, count: 1, movement: {directions: {up: 1}}}
`))
	require.NoError(t, err)
	assert.Equal(t, core.PlacementSymmetrical, tmpl.Placement)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"unknown key", "rows: 5\ncolumns: 5\n"},
		{"wrong type", "rows: many\n"},
		{"fails validation", "rows: 0\ncols: 5\nteams: 7\nflags: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, core.ErrInvalidTemplate)
		})
	}
}

func TestParse_ReportsEveryProblem(t *testing.T) {
	_, err := Parse([]byte("rows: 0\ncols: 5\nteams: 7\nflags: 0\nplacement: random\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grid must be at least 1x1")
	assert.Contains(t, err.Error(), "teams must be between 1 and 4")
	assert.Contains(t, err.Error(), "flags must be positive")
	assert.Contains(t, err.Error(), `unknown placement "random"`)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "four.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fourTeams), 0o600))

	tmpl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, tmpl.Teams)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	def, err := Load(DefaultName)
	require.NoError(t, err)
	assert.Equal(t, Default(), def)
}

func TestDefault_IsValid(t *testing.T) {
	tmpl := Default()
	assert.NoError(t, tmpl.Validate())
}

func TestMarshal_ReadsBack(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)
	assert.Contains(t, string(data), "placement: symmetrical")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), back)
}
