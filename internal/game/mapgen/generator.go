package mapgen

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/common"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
)

// Generator builds the initial game state for a template with deterministic RNG
type Generator struct {
	tmpl core.MapTemplate
	rng  *rand.Rand
}

// NewGenerator creates a new map generator
func NewGenerator(tmpl core.MapTemplate, rng *rand.Rand) *Generator {
	return &Generator{
		tmpl: tmpl,
		rng:  rng,
	}
}

// SubArea is the starting zone of a team, in the team's own frame
type SubArea struct {
	Top, Left     int
	Height, Width int
}

// Base returns the center cell of the area
func (a SubArea) Base() core.Coordinate {
	return core.NewCoordinate(a.Top+(a.Height-1)/2, a.Left+(a.Width-1)/2)
}

func (a SubArea) contains(c core.Coordinate) bool {
	return c.Row >= a.Top && c.Row < a.Top+a.Height && c.Col >= a.Left && c.Col < a.Left+a.Width
}

// SubAreaFor sizes the starting zone for a frame of rows×cols shared by teams teams.
// The zone always hugs row 0.
func SubAreaFor(rows, cols, teams int) SubArea {
	switch {
	case teams <= 1:
		return SubArea{Height: rows, Width: cols}
	case teams == 2:
		h := rows / 2
		if rows >= 10 {
			h-- // neutral zone
		}
		return SubArea{Height: max(1, h), Width: cols}
	default:
		half := max(1, min(rows, cols)/2/2)
		side := min(2*half, rows, cols)
		return SubArea{Height: side, Width: side, Left: (cols - side) / 2}
	}
}

// GenerateMap creates the board with bases, pieces and obstacles placed
func (g *Generator) GenerateMap() (*core.GameState, error) {
	if err := g.tmpl.Validate(); err != nil {
		return nil, err
	}

	gs := &core.GameState{
		Grid:        core.NewGrid(g.tmpl.Rows, g.tmpl.Cols),
		Teams:       make([]core.Team, g.tmpl.Teams),
		CurrentTeam: 1,
	}
	for i := range gs.Teams {
		team, err := g.placeTeam(gs.Grid, i+1)
		if err != nil {
			return nil, err
		}
		gs.Teams[i] = team
	}

	if err := g.placeObstacles(gs.Grid); err != nil {
		return nil, err
	}
	return gs, nil
}

// placeTeam turns the grid to the team's facing, stamps base and pieces in the
// canonical frame, then turns it back
func (g *Generator) placeTeam(grid *core.Grid, teamID int) (core.Team, error) {
	orient := core.OrientationFor(teamID)
	frame := grid.RotateForTeam(teamID)
	area := SubAreaFor(frame.Rows, frame.Cols, g.tmpl.Teams)

	base := area.Base()
	if !frame.IsEmptyAt(base) {
		return core.Team{}, fmt.Errorf("%w: base of team %d overlaps another team", core.ErrCapacity, teamID)
	}
	frame.Set(base, core.BaseCell(teamID))

	want := g.tmpl.PiecesPerTeam()
	free := 0
	for r := area.Top; r < area.Top+area.Height; r++ {
		for c := area.Left; c < area.Left+area.Width; c++ {
			if frame.IsEmptyAt(core.NewCoordinate(r, c)) {
				free++
			}
		}
	}
	if want > free {
		return core.Team{}, fmt.Errorf("%w: team %d needs %d cells, sub-area has %d", core.ErrCapacity, teamID, want, free)
	}

	var spots []core.Coordinate
	switch g.tmpl.Placement {
	case core.PlacementSpacedOut:
		spots = spacedOut(frame, area, base, want)
	case core.PlacementDefensive:
		spots = defensive(frame, area, base, want)
	default:
		spots = symmetrical(frame, area, base, want)
	}
	if len(spots) < want {
		return core.Team{}, fmt.Errorf("%w: placed %d of %d pieces for team %d", core.ErrCapacity, len(spots), want, teamID)
	}

	team := core.Team{
		ID:     teamID,
		Color:  common.TeamColor(teamID),
		Base:   orient.FromFrame(base, grid.Rows, grid.Cols),
		Flags:  g.tmpl.Flags,
		Pieces: make([]core.Piece, 0, want),
	}
	id := 1
	for _, desc := range g.tmpl.Pieces {
		for k := 0; k < desc.Count; k++ {
			spot := spots[id-1]
			frame.Set(spot, core.PieceCell(teamID, id))
			team.Pieces = append(team.Pieces, core.Piece{
				ID:          id,
				TeamID:      teamID,
				Description: desc,
				Position:    orient.FromFrame(spot, grid.Rows, grid.Cols),
			})
			id++
		}
	}

	*grid = *frame.RotateBackForTeam(teamID)
	return team, nil
}

// placeObstacles drops obstacles on random empty cells, keeping any two obstacles
// from touching
func (g *Generator) placeObstacles(grid *core.Grid) error {
	var candidates []core.Coordinate
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			if spot := core.NewCoordinate(r, c); grid.IsEmptyAt(spot) {
				candidates = append(candidates, spot)
			}
		}
	}

	for placed := 0; placed < g.tmpl.Blocks; placed++ {
		if len(candidates) == 0 {
			return fmt.Errorf("%w: placed %d of %d obstacles", core.ErrCapacity, placed, g.tmpl.Blocks)
		}
		pick := candidates[g.rng.Intn(len(candidates))]
		grid.Set(pick, core.ObstacleCell)

		kept := candidates[:0]
		for _, c := range candidates {
			if c.ChebyshevTo(pick) > 1 {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}
	return nil
}
