package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidMove(t *testing.T) {
	tests := []struct {
		name     string
		reason   error
		move     Move
		expected string
	}{
		{
			name:     "out of bounds",
			reason:   ErrOutOfBounds,
			move:     NewMove(1, 2, 9, 9),
			expected: "invalid move: destination out of bounds (team 1 piece 2 -> (9,9))",
		},
		{
			name:     "defender too strong",
			reason:   ErrDefenderTooStrong,
			move:     NewMove(2, 1, 0, 3),
			expected: "invalid move: defender has higher attack power (team 2 piece 1 -> (0,3))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InvalidMove(tt.reason, tt.move)
			require.Error(t, err)
			assert.Equal(t, tt.expected, err.Error())
			// Both the category and the reason unwrap
			assert.True(t, errors.Is(err, ErrInvalidMove))
			assert.True(t, errors.Is(err, tt.reason))
			assert.False(t, errors.Is(err, ErrGameOver))
		})
	}
}
