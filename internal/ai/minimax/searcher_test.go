package minimax

import (
	"testing"
	"time"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/ai/sim"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/rules"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func duel() *testutil.StateBuilder {
	return testutil.NewStateBuilder(5, 5, 2).
		Base(1, 4, 2, 1).
		Base(2, 0, 2, 1)
}

func TestNew_DefaultsDepth(t *testing.T) {
	assert.Equal(t, DefaultMaxDepth, New(0, testutil.NopLogger()).MaxDepth)
	assert.Equal(t, 5, New(5, testutil.NopLogger()).MaxDepth)
}

func TestBestMove_SingleMove(t *testing.T) {
	gs := testutil.NewStateBuilder(5, 5, 2).
		Piece(1, 1, testutil.Directional(1, core.Directions{Right: 1}), 0, 0).
		Piece(2, 1, testutil.Slider(1, 1), 4, 4).
		Build()

	s := New(1, testutil.NopLogger())
	m, ok := s.BestMove(gs, time.Second)

	require.True(t, ok)
	assert.Equal(t, core.NewMove(1, 1, 0, 1), m)
}

func TestBestMove_NoMove(t *testing.T) {
	gs := testutil.NewStateBuilder(5, 5, 2).
		Piece(1, 1, testutil.Slider(1, 1), 0, 0).
		Obstacle(0, 1).
		Obstacle(1, 0).
		Piece(2, 1, testutil.Slider(1, 1), 4, 4).
		Build()

	_, ok := New(2, testutil.NopLogger()).BestMove(gs, time.Second)
	assert.False(t, ok)
}

func TestBestMove_StuckTeamWithOthersStillPlaying(t *testing.T) {
	gs := testutil.NewStateBuilder(7, 7, 3).
		Piece(1, 1, testutil.Slider(1, 1), 0, 0).
		Obstacle(0, 1).
		Obstacle(1, 0).
		Obstacle(1, 1).
		Piece(2, 1, testutil.Slider(1, 1), 6, 6).
		Piece(3, 1, testutil.Slider(1, 1), 3, 3).
		Build()
	require.Empty(t, rules.LegalMoves(gs, 1))

	m, ok := New(2, testutil.NopLogger()).BestMove(gs, time.Second)
	assert.False(t, ok, "got %s for team %d", m, m.TeamID)
	assert.Equal(t, 1, gs.CurrentTeam)
}

func TestBestMove_TakesLastFlag(t *testing.T) {
	gs := duel().
		Piece(1, 1, testutil.Slider(1, 1), 1, 2).
		Piece(2, 1, testutil.Slider(5, 1), 3, 4).
		Build()

	m, stats, ok := New(2, testutil.NopLogger()).Search(gs, time.Second)

	require.True(t, ok)
	assert.Equal(t, core.NewMove(1, 1, 0, 2), m)
	assert.Equal(t, 100, stats.Score)
}

func TestBestMove_StopsThreatToBase(t *testing.T) {
	gs := testutil.NewStateBuilder(5, 5, 2).
		Base(1, 4, 2, 1).
		Base(2, 0, 2, 2).
		Piece(1, 1, testutil.Slider(2, 1), 3, 1).
		Piece(2, 1, testutil.Slider(1, 1), 3, 2).
		Piece(2, 2, testutil.Slider(5, 1), 0, 4).
		Build()

	m, stats, ok := New(2, testutil.NopLogger()).Search(gs, time.Second)

	require.True(t, ok)
	assert.Equal(t, core.NewMove(1, 1, 3, 2), m, "every other move lets team 2 take the last flag")
	assert.Greater(t, stats.Score, -100)
	assert.False(t, stats.TimedOut)
}

func TestBestMove_DeadlineStillReturnsLegalMove(t *testing.T) {
	gs := duel().
		Piece(1, 1, testutil.Slider(1, 2), 3, 0).
		Piece(1, 2, testutil.Jumper(1), 3, 4).
		Piece(2, 1, testutil.Slider(1, 2), 1, 0).
		Piece(2, 2, testutil.Jumper(1), 1, 4).
		Build()

	m, stats, ok := New(4, testutil.NopLogger()).Search(gs, 0)

	require.True(t, ok)
	assert.True(t, stats.TimedOut)
	assert.Contains(t, sim.New(gs).LegalMoves(), m)
}

func TestBestMove_LeavesStateAlone(t *testing.T) {
	gs := duel().
		Piece(1, 1, testutil.Slider(1, 2), 3, 0).
		Piece(2, 1, testutil.Slider(1, 2), 1, 0).
		Build()
	before := gs.Clone()

	_, ok := BestMove(gs, 100*time.Millisecond)

	require.True(t, ok)
	assert.Equal(t, before, gs)
}
