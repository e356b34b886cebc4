package rules

import (
	"testing"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMostPieces(t *testing.T) {
	gs := testutil.NewStateBuilder(4, 4, 3).
		Piece(1, 1, testutil.Slider(1, 1), 0, 0).
		Piece(2, 1, testutil.Slider(1, 1), 3, 3).
		Piece(2, 2, testutil.Slider(1, 1), 3, 2).
		Piece(3, 1, testutil.Slider(1, 1), 2, 0).
		Piece(3, 2, testutil.Slider(1, 1), 2, 1).
		Build()

	assert.Equal(t, []int{2, 3}, MostPieces(gs))

	gs.Teams[1].RemovePiece(1)
	assert.Equal(t, []int{3}, MostPieces(gs))
}

func TestWinConditionChecker_CheckTick(t *testing.T) {
	wc := NewWinConditionChecker(testutil.NopLogger())

	t.Run("time expired", func(t *testing.T) {
		gs := testutil.NewStateBuilder(3, 3, 2).
			Piece(1, 1, testutil.Slider(1, 1), 0, 0).
			Piece(2, 1, testutil.Slider(1, 1), 2, 2).
			Build()

		v := wc.CheckTick(gs, true)
		assert.True(t, v.Over)
		assert.Equal(t, ReasonTimeExpired, v.Reason)
		assert.Equal(t, []int{1, 2}, v.Winners)
	})

	t.Run("one team left", func(t *testing.T) {
		gs := testutil.NewStateBuilder(3, 3, 3).
			Piece(2, 1, testutil.Slider(1, 1), 2, 2).
			Build()

		v := wc.CheckTick(gs, false)
		assert.True(t, v.Over)
		assert.Equal(t, ReasonAttrition, v.Reason)
		assert.Equal(t, []int{2}, v.Winners)
	})

	t.Run("stalemate between two teams", func(t *testing.T) {
		gs := testutil.NewStateBuilder(3, 3, 2).
			Piece(1, 1, testutil.Slider(1, 1), 0, 0).
			Piece(2, 1, testutil.Slider(1, 1), 2, 2).
			Obstacle(0, 1).
			Obstacle(1, 0).
			Build()

		v := wc.CheckTick(gs, false)
		assert.True(t, v.Over)
		assert.Equal(t, ReasonStalemate, v.Reason)
		assert.Equal(t, []int{1, 2}, v.Winners)
	})

	t.Run("stuck with three teams keeps going", func(t *testing.T) {
		gs := testutil.NewStateBuilder(3, 3, 3).
			Piece(1, 1, testutil.Slider(1, 1), 0, 0).
			Piece(2, 1, testutil.Slider(1, 1), 2, 2).
			Piece(3, 1, testutil.Slider(1, 1), 2, 0).
			Obstacle(0, 1).
			Obstacle(1, 0).
			Build()

		assert.False(t, wc.CheckTick(gs, false).Over)
	})

	t.Run("game goes on", func(t *testing.T) {
		gs := testutil.NewStateBuilder(3, 3, 2).
			Piece(1, 1, testutil.Slider(1, 1), 0, 0).
			Piece(2, 1, testutil.Slider(1, 1), 2, 2).
			Build()

		v := wc.CheckTick(gs, false)
		assert.False(t, v.Over)
		assert.Equal(t, ReasonNone, v.Reason)
		assert.Empty(t, v.Winners)
	})
}
