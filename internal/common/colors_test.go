package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeamColor(t *testing.T) {
	tests := []struct {
		teamID   int
		expected string
	}{
		{0, "gray"},
		{1, "red"},
		{2, "blue"},
		{3, "green"},
		{4, "yellow"},
		{9, "team-9"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TeamColor(tt.teamID))
	}
}

func TestTeamColors_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for id, c := range TeamColors {
		assert.False(t, seen[c], "color %s reused by team %d", c, id)
		seen[c] = true
	}
}
