package common

import "fmt"

// TeamColors names the color of each team by ID
var TeamColors = map[int]string{
	0: "gray", // spectators
	1: "red",
	2: "blue",
	3: "green",
	4: "yellow",
}

// TeamColor returns the color name for a team, falling back to a numbered name
func TeamColor(teamID int) string {
	if c, ok := TeamColors[teamID]; ok {
		return c
	}
	return fmt.Sprintf("team-%d", teamID)
}
