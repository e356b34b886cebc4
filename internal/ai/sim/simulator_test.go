package sim

import (
	"testing"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func duel() *testutil.StateBuilder {
	return testutil.NewStateBuilder(5, 5, 2).
		Base(1, 4, 2, 1).
		Base(2, 0, 2, 1)
}

func TestNew_CopiesState(t *testing.T) {
	gs := duel().Piece(1, 1, testutil.Slider(1, 1), 3, 2).Piece(2, 1, testutil.Slider(1, 1), 1, 2).Build()
	before := gs.Clone()

	s := New(gs)
	require.NoError(t, s.Apply(core.NewMove(1, 1, 2, 2)))

	assert.Equal(t, before, gs)
	assert.Equal(t, core.PieceCell(1, 1), s.State().Grid.At(core.NewCoordinate(2, 2)))
	assert.Equal(t, 2, s.CurrentTeam())
	assert.False(t, s.IsTerminal())
}

func TestApply_RejectsIllegalMove(t *testing.T) {
	s := New(duel().Piece(1, 1, testutil.Slider(1, 1), 3, 2).Piece(2, 1, testutil.Slider(1, 1), 1, 2).Build())
	before := s.State().Clone()

	err := s.Apply(core.NewMove(1, 1, 0, 0))
	assert.ErrorIs(t, err, core.ErrInvalidMove)
	assert.Equal(t, before, s.State())
}

func TestApply_LastFlagEndsGame(t *testing.T) {
	s := New(duel().Piece(1, 1, testutil.Slider(1, 1), 1, 2).Piece(2, 1, testutil.Slider(1, 1), 3, 0).Build())

	require.NoError(t, s.Apply(core.NewMove(1, 1, 0, 2)))

	assert.True(t, s.IsTerminal())
	assert.Equal(t, []int{1}, s.Winners())
	assert.True(t, s.Wins(1))
	assert.False(t, s.Wins(2))
	assert.Nil(t, s.LegalMoves())
	assert.ErrorIs(t, s.Apply(core.NewMove(2, 1, 2, 0)), core.ErrGameOver)
}

func TestApply_LastPieceEndsGame(t *testing.T) {
	s := New(duel().Piece(1, 1, testutil.Slider(2, 1), 2, 2).Piece(2, 1, testutil.Slider(1, 1), 1, 2).Build())

	require.NoError(t, s.Apply(core.NewMove(1, 1, 1, 2)))

	assert.True(t, s.IsTerminal())
	assert.Equal(t, []int{1}, s.Winners())
}

func TestApply_SkipsTeamsThatCannotMove(t *testing.T) {
	gs := testutil.NewStateBuilder(5, 5, 3).
		Piece(1, 1, testutil.Slider(1, 1), 4, 0).
		Piece(2, 1, testutil.Slider(1, 1), 0, 0).
		Obstacle(0, 1).
		Obstacle(1, 0).
		Piece(3, 1, testutil.Slider(1, 1), 2, 2).
		Build()
	s := New(gs)

	require.NoError(t, s.Apply(core.NewMove(1, 1, 3, 0)))

	assert.False(t, s.IsTerminal())
	assert.Equal(t, 3, s.CurrentTeam())
	assert.NotEmpty(t, s.LegalMoves())
}

func TestNew_TwoTeamStalemateIsTerminal(t *testing.T) {
	gs := testutil.NewStateBuilder(5, 5, 2).
		Piece(1, 1, testutil.Slider(1, 1), 0, 0).
		Obstacle(0, 1).
		Obstacle(1, 0).
		Piece(2, 1, testutil.Slider(1, 1), 4, 4).
		Build()
	s := New(gs)

	assert.True(t, s.IsTerminal())
	assert.Equal(t, []int{1, 2}, s.Winners())
	assert.False(t, s.Wins(1), "a tie is not a win")
}

func TestNew_NobodyCanMove(t *testing.T) {
	gs := testutil.NewStateBuilder(3, 3, 3).
		Piece(1, 1, testutil.Slider(1, 1), 0, 0).
		Piece(2, 1, testutil.Slider(1, 1), 0, 2).
		Piece(3, 1, testutil.Slider(1, 1), 2, 0).
		Obstacle(0, 1).
		Obstacle(1, 0).
		Obstacle(1, 2).
		Obstacle(2, 1).
		Build()
	s := New(gs)

	assert.True(t, s.IsTerminal())
	assert.Equal(t, []int{1, 2, 3}, s.Winners())
}

func TestClone_IsIndependent(t *testing.T) {
	s := New(duel().Piece(1, 1, testutil.Slider(1, 1), 3, 2).Piece(2, 1, testutil.Slider(1, 1), 1, 2).Build())
	c := s.Clone()

	require.NoError(t, c.Apply(core.NewMove(1, 1, 3, 1)))

	assert.Equal(t, 1, s.CurrentTeam())
	assert.Equal(t, core.PieceCell(1, 1), s.State().Grid.At(core.NewCoordinate(3, 2)))
	assert.Equal(t, 2, c.CurrentTeam())
}
