package rules

import "github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"

// Outcome describes what a successfully applied move did
type Outcome struct {
	Move core.Move
	From core.Coordinate

	// Captured is a copy of the piece removed from the board, if any
	Captured *core.Piece

	// BaseOwner is the team whose base was hit, 0 if none
	BaseOwner int
	FlagsLeft int

	// RespawnedAt is where the mover reappeared after hitting a base that still had flags
	RespawnedAt *core.Coordinate

	// GameOver is set when the last flag of a team was taken; Winner is the mover's team
	GameOver bool
	Winner   int
}

// ApplyMove validates and applies m to gs, then hands the turn to the next team.
// gs is left untouched when an error is returned.
func ApplyMove(gs *core.GameState, m core.Move) (Outcome, error) {
	if m.TeamID != gs.CurrentTeam {
		return Outcome{}, core.InvalidMove(core.ErrNotYourTurn, m)
	}
	if err := IsValidMove(gs, m); err != nil {
		return Outcome{}, err
	}

	g := gs.Grid
	piece := gs.Piece(m.TeamID, m.PieceID)
	from := piece.Position
	target := g.At(m.To)
	out := Outcome{Move: m, From: from}

	switch target.Kind {
	case core.CellPiece:
		victimTeam := gs.Team(target.Team)
		if victim := gs.Piece(target.Team, target.Piece); victim != nil {
			captured := *victim
			out.Captured = &captured
		}
		victimTeam.RemovePiece(target.Piece)
		relocate(g, piece, m.To)

	case core.CellBase:
		defender := gs.Team(target.Team)
		defender.Flags--
		out.BaseOwner = defender.ID
		out.FlagsLeft = defender.Flags
		if defender.Flags <= 0 {
			defender.Flags = 0
			relocate(g, piece, m.To)
			out.GameOver = true
			out.Winner = m.TeamID
			break
		}
		g.Set(from, core.EmptyCell)
		spot, ok := RespawnCell(g, m.To, RespawnRadius(len(gs.AllPieces())))
		if !ok {
			spot = from
		}
		g.Set(spot, core.PieceCell(piece.TeamID, piece.ID))
		piece.Position = spot
		out.RespawnedAt = &spot

	default:
		relocate(g, piece, m.To)
	}

	last := m
	gs.LastMove = &last
	gs.CurrentTeam = gs.NextTeam()
	return out, nil
}

func relocate(g *core.Grid, piece *core.Piece, to core.Coordinate) {
	g.Set(piece.Position, core.EmptyCell)
	g.Set(to, core.PieceCell(piece.TeamID, piece.ID))
	piece.Position = to
}

// RespawnRadius bounds how far from a base a piece may reappear
func RespawnRadius(pieceCount int) int {
	return pieceCount + 1
}

// RespawnCell searches rings of growing Chebyshev radius around center, row-major
// within a ring, for the first empty cell.
func RespawnCell(g *core.Grid, center core.Coordinate, maxRadius int) (core.Coordinate, bool) {
	for d := 1; d <= maxRadius; d++ {
		for r := center.Row - d; r <= center.Row+d; r++ {
			for c := center.Col - d; c <= center.Col+d; c++ {
				spot := core.NewCoordinate(r, c)
				if spot.ChebyshevTo(center) != d {
					continue
				}
				if g.IsEmptyAt(spot) {
					return spot, true
				}
			}
		}
	}
	return core.Coordinate{}, false
}
