// Package eval scores positions for search. Every function here is pure.
package eval

import (
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/common"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
)

// Max is the score of a decided position; scores stay within [-Max, Max]
const Max = 100

const (
	PieceWeight    = 10
	FlagWeight     = 25
	ProximityBonus = 5
	StrengthBonus  = 5
	CoverBonus     = 5
)

type term func(gs *core.GameState, me *core.Team) int

var terms = [...]term{pieceTerm, flagTerm, attackTerm, defenseTerm}

// Evaluate scores gs for teamID. A minimizing caller gets the negated score.
func Evaluate(gs *core.GameState, teamID int, maximizing bool) int {
	s := score(gs, teamID)
	if !maximizing {
		return -s
	}
	return s
}

func score(gs *core.GameState, teamID int) int {
	me := gs.Team(teamID)
	if me == nil {
		return 0
	}
	total := 0
	for _, t := range terms {
		total += t(gs, me)
		if common.Abs(total) >= Max {
			break
		}
	}
	return common.Clamp(total, -Max, Max)
}

func opponents(gs *core.GameState, me *core.Team) []*core.Team {
	out := make([]*core.Team, 0, len(gs.Teams)-1)
	for i := range gs.Teams {
		if gs.Teams[i].ID != me.ID {
			out = append(out, &gs.Teams[i])
		}
	}
	return out
}

// pieceTerm compares roster sizes against every opponent still on the board
func pieceTerm(gs *core.GameState, me *core.Team) int {
	if !me.HasPieces() {
		return -Max
	}
	total, alive := 0, 0
	for _, o := range opponents(gs, me) {
		if !o.HasPieces() {
			continue
		}
		alive++
		total += (len(me.Pieces) - len(o.Pieces)) * PieceWeight
	}
	if alive == 0 {
		return Max
	}
	return total
}

func flagTerm(gs *core.GameState, me *core.Team) int {
	if me.Flags == 0 {
		return -Max
	}
	total := 0
	for _, o := range opponents(gs, me) {
		if o.Flags == 0 {
			return Max
		}
		total += (me.Flags - o.Flags) * FlagWeight
	}
	return total
}

// attackTerm looks at the opposing base closest to any of our pieces
func attackTerm(gs *core.GameState, me *core.Team) int {
	var target *core.Team
	best := -1
	for _, o := range opponents(gs, me) {
		if o.Flags == 0 || !gs.Grid.InBounds(o.Base) {
			continue
		}
		if _, d := nearest(me.Pieces, o.Base); d >= 0 && (best < 0 || d < best) {
			target, best = o, d
		}
	}
	if target == nil {
		return 0
	}

	s := 0
	if _, defDist := nearest(target.Pieces, target.Base); defDist < 0 || best < defDist {
		s += ProximityBonus
	}
	r := reach(gs)
	if strongest(me.Pieces, target.Base, r) > strongest(target.Pieces, target.Base, r) {
		s += StrengthBonus
	}
	return s
}

// defenseTerm compares our cover of our base with the closest threat to it
func defenseTerm(gs *core.GameState, me *core.Team) int {
	if !gs.Grid.InBounds(me.Base) {
		return 0
	}
	var enemies []core.Piece
	for _, o := range opponents(gs, me) {
		enemies = append(enemies, o.Pieces...)
	}
	attacker, attDist := nearest(enemies, me.Base)
	if attacker == nil {
		return 0
	}

	s := 0
	defender, defDist := nearest(me.Pieces, me.Base)
	if defender != nil && defDist <= attDist {
		s += ProximityBonus
	} else {
		s -= ProximityBonus
	}

	r := reach(gs)
	if theirs := strongest(enemies, me.Base, r); theirs >= 0 {
		if strongest(me.Pieces, me.Base, r) >= theirs {
			s += StrengthBonus
		} else {
			s -= StrengthBonus
		}
	}

	if defender != nil {
		if between(me.Base, defender.Position, attacker.Position) {
			s -= CoverBonus
		} else {
			s += CoverBonus
		}
	}
	return s
}

// reach is the radius around a base considered "close"
func reach(gs *core.GameState) int {
	return max(1, max(gs.Grid.Rows, gs.Grid.Cols)/3)
}

// nearest returns the piece closest to at in Chebyshev distance, first one on ties,
// and the distance; nil and -1 for no pieces
func nearest(pieces []core.Piece, at core.Coordinate) (*core.Piece, int) {
	var best *core.Piece
	bestDist := -1
	for i := range pieces {
		d := pieces[i].Position.ChebyshevTo(at)
		if best == nil || d < bestDist {
			best, bestDist = &pieces[i], d
		}
	}
	return best, bestDist
}

// strongest returns the highest attack power within radius of at, or -1
func strongest(pieces []core.Piece, at core.Coordinate, radius int) int {
	power := -1
	for i := range pieces {
		if pieces[i].Position.ChebyshevTo(at) <= radius && pieces[i].AttackPower() > power {
			power = pieces[i].AttackPower()
		}
	}
	return power
}

// between reports whether p lies in the bounding box spanned by a and b
func between(p, a, b core.Coordinate) bool {
	return p.Row >= min(a.Row, b.Row) && p.Row <= max(a.Row, b.Row) &&
		p.Col >= min(a.Col, b.Col) && p.Col <= max(a.Col, b.Col)
}
