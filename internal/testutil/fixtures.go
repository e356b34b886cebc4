package testutil

import (
	"strings"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/common"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
)

// Slider returns a directional piece description that moves up to steps cells in
// each orthogonal direction
func Slider(power, steps int) core.PieceDescription {
	return core.PieceDescription{
		Type:        "Slider",
		AttackPower: power,
		Count:       1,
		Movement:    core.Movement{Directions: &core.Directions{Left: steps, Right: steps, Up: steps, Down: steps}},
	}
}

// Directional returns a piece description with the given allowances
func Directional(power int, dirs core.Directions) core.PieceDescription {
	return core.PieceDescription{
		Type:        "Directional",
		AttackPower: power,
		Count:       1,
		Movement:    core.Movement{Directions: &dirs},
	}
}

// Jumper returns an L-shaped piece description
func Jumper(power int) core.PieceDescription {
	return core.PieceDescription{
		Type:        "Jumper",
		AttackPower: power,
		Count:       1,
		Movement:    core.Movement{Shape: core.ShapeLShape},
	}
}

// StateBuilder assembles small hand-made game states for tests
type StateBuilder struct {
	gs *core.GameState
}

// NewStateBuilder starts an empty rows×cols board with the given number of teams.
// Team 1 moves first; teams have one flag and no base until Base is called.
func NewStateBuilder(rows, cols, teams int) *StateBuilder {
	gs := &core.GameState{
		Grid:        core.NewGrid(rows, cols),
		Teams:       make([]core.Team, teams),
		CurrentTeam: 1,
	}
	for i := range gs.Teams {
		gs.Teams[i] = core.Team{ID: i + 1, Color: common.TeamColor(i + 1), Flags: 1, Base: core.NewCoordinate(-1, -1)}
	}
	return &StateBuilder{gs: gs}
}

// Base places the base of teamID and sets its flag count
func (b *StateBuilder) Base(teamID, row, col, flags int) *StateBuilder {
	t := b.gs.Team(teamID)
	t.Base = core.NewCoordinate(row, col)
	t.Flags = flags
	b.gs.Grid.Set(t.Base, core.BaseCell(teamID))
	return b
}

// Piece adds a piece to the roster of teamID and puts it on the grid
func (b *StateBuilder) Piece(teamID, pieceID int, desc core.PieceDescription, row, col int) *StateBuilder {
	t := b.gs.Team(teamID)
	pos := core.NewCoordinate(row, col)
	t.Pieces = append(t.Pieces, core.Piece{ID: pieceID, TeamID: teamID, Description: desc, Position: pos})
	b.gs.Grid.Set(pos, core.PieceCell(teamID, pieceID))
	return b
}

// Obstacle blocks a cell
func (b *StateBuilder) Obstacle(row, col int) *StateBuilder {
	b.gs.Grid.Set(core.NewCoordinate(row, col), core.ObstacleCell)
	return b
}

// Turn sets the team to move
func (b *StateBuilder) Turn(teamID int) *StateBuilder {
	b.gs.CurrentTeam = teamID
	return b
}

func (b *StateBuilder) Build() *core.GameState {
	return b.gs
}

// GridFromRows decodes a grid written one row per string with cells separated by
// spaces, using "." for an empty cell and the wire encoding otherwise
func GridFromRows(rows ...string) (*core.Grid, error) {
	cells := make([][]string, len(rows))
	for r, row := range rows {
		for _, tok := range strings.Fields(row) {
			if tok == "." {
				tok = ""
			}
			cells[r] = append(cells[r], tok)
		}
	}
	return core.DecodeGrid(cells)
}
