package core

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTemplate() MapTemplate {
	return MapTemplate{
		Rows:  10,
		Cols:  10,
		Teams: 2,
		Flags: 1,
		Pieces: []PieceDescription{
			{Type: "Rook", AttackPower: 3, Count: 2, Movement: Movement{Directions: &Directions{Left: 2, Right: 2, Up: 2, Down: 2}}},
			{Type: "Knight", AttackPower: 2, Count: 1, Movement: Movement{Shape: ShapeLShape}},
		},
		Blocks:                3,
		Placement:             PlacementSymmetrical,
		TotalTimeLimitSeconds: Unlimited,
		MoveTimeLimitSeconds:  30,
	}
}

func TestMapTemplate_Validate(t *testing.T) {
	tmpl := validTemplate()
	require.NoError(t, tmpl.Validate())
	assert.Equal(t, 3, tmpl.PiecesPerTeam())
	assert.True(t, tmpl.HasTimeLimit())

	tmpl.MoveTimeLimitSeconds = Unlimited
	assert.False(t, tmpl.HasTimeLimit())
}

func TestMapTemplate_ValidateReportsEveryProblem(t *testing.T) {
	tmpl := validTemplate()
	tmpl.Rows = 0
	tmpl.Teams = 5
	tmpl.Placement = "zigzag"
	tmpl.MoveTimeLimitSeconds = 0
	tmpl.Pieces = append(tmpl.Pieces, PieceDescription{Type: "Ghost", Count: 1})

	err := tmpl.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTemplate)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 5)
	assert.Contains(t, err.Error(), "Ghost")
}

func TestPieceDescription_Validate(t *testing.T) {
	tests := []struct {
		name    string
		desc    PieceDescription
		wantErr bool
	}{
		{"directional", PieceDescription{Count: 1, Movement: Movement{Directions: &Directions{Up: 1}}}, false},
		{"lshape", PieceDescription{Count: 1, Movement: Movement{Shape: ShapeLShape}}, false},
		{"both", PieceDescription{Count: 1, Movement: Movement{Directions: &Directions{}, Shape: ShapeLShape}}, true},
		{"neither", PieceDescription{Count: 1}, true},
		{"unknown shape", PieceDescription{Count: 1, Movement: Movement{Shape: "spiral"}}, true},
		{"negative steps", PieceDescription{Count: 1, Movement: Movement{Directions: &Directions{Left: -1}}}, true},
		{"negative count", PieceDescription{Count: -1, Movement: Movement{Shape: ShapeLShape}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.desc.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
