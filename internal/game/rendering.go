package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
)

// This file contains all board rendering functionality for the game engine.

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

// teamColors is indexed by team ID; index 0 is the spectator
var teamColors = []string{ColorWhite, ColorRed, ColorBlue, ColorGreen, ColorYellow}

const (
	emptySymbol    = "·"
	baseSymbol     = "⚑"
	obstacleSymbol = "▲"
)

// Board returns the current board as text, colored per team when color is set
func (e *Engine) Board(color bool) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Render(e.gs, color)
}

// Render draws gs one cell per column: pieces as "<team><id>", bases as "<team>⚑",
// obstacles as "▲". A header lists each team's flags and pieces left.
func Render(gs *core.GameState, color bool) string {
	g := gs.Grid

	var sb strings.Builder
	sb.Grow((g.Cols*12 + 8) * (g.Rows + len(gs.Teams) + 3))

	for i := range gs.Teams {
		t := &gs.Teams[i]
		marker := " "
		if t.ID == gs.CurrentTeam {
			marker = ">"
		}
		paint(&sb, color, t.ID, fmt.Sprintf("%s team %d (%s) flags=%d pieces=%d", marker, t.ID, t.Color, t.Flags, len(t.Pieces)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("    ")
	for c := 0; c < g.Cols; c++ {
		sb.WriteString(fmt.Sprintf("%3d", c))
	}
	sb.WriteString("\n")

	for r := 0; r < g.Rows; r++ {
		sb.WriteString(fmt.Sprintf("%3d ", r))
		for c := 0; c < g.Cols; c++ {
			writeCell(&sb, color, g.At(core.NewCoordinate(r, c)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n" + emptySymbol + "=empty " + baseSymbol + "=base " + obstacleSymbol + "=obstacle\n")
	return sb.String()
}

func writeCell(sb *strings.Builder, color bool, cell core.Cell) {
	switch cell.Kind {
	case core.CellPiece:
		paint(sb, color, cell.Team, fmt.Sprintf("%3s", fmt.Sprintf("%d%d", cell.Team, cell.Piece)))
	case core.CellBase:
		paint(sb, color, cell.Team, fmt.Sprintf(" %d%s", cell.Team, baseSymbol))
	case core.CellObstacle:
		paintWith(sb, color, ColorGray, "  "+obstacleSymbol)
	default:
		paintWith(sb, color, ColorGray, "  "+emptySymbol)
	}
}

func paint(sb *strings.Builder, color bool, teamID int, s string) {
	paintWith(sb, color, getTeamColor(teamID), s)
}

func paintWith(sb *strings.Builder, color bool, code, s string) {
	if !color {
		sb.WriteString(s)
		return
	}
	sb.WriteString(code)
	sb.WriteString(s)
	sb.WriteString(ColorReset)
}

func getTeamColor(teamID int) string {
	if teamID >= 0 && teamID < len(teamColors) {
		return teamColors[teamID]
	}
	return ColorWhite
}
