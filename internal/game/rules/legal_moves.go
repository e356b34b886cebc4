package rules

import "github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"

// IsValidMove checks a move against the current grid.
// It returns nil when legal, otherwise an error wrapping core.ErrInvalidMove and the reason.
// Whose turn it is does not matter here; ApplyMove checks that.
func IsValidMove(gs *core.GameState, m core.Move) error {
	piece := gs.Piece(m.TeamID, m.PieceID)
	if piece == nil {
		return core.InvalidMove(core.ErrNoSuchPiece, m)
	}
	if reason := checkMove(gs, piece, m.To); reason != nil {
		return core.InvalidMove(reason, m)
	}
	return nil
}

// checkMove returns the unwrapped reason piece cannot go to `to`, or nil
func checkMove(gs *core.GameState, piece *core.Piece, to core.Coordinate) error {
	g := gs.Grid
	if !g.InBounds(to) {
		return core.ErrOutOfBounds
	}
	if to.Equal(piece.Position) {
		return core.ErrMoveToSelf
	}
	if reason := checkTarget(gs, piece, g.At(to)); reason != nil {
		return reason
	}
	if piece.Description.Movement.IsLShape() {
		return checkLShape(g, piece.Position, to)
	}
	return checkDirectional(g, piece, to)
}

// checkTarget decides whether the content of the destination may be entered
func checkTarget(gs *core.GameState, piece *core.Piece, target core.Cell) error {
	switch target.Kind {
	case core.CellObstacle:
		return core.ErrTargetIsObstacle
	case core.CellBase:
		if target.Team == piece.TeamID {
			return core.ErrTargetIsOwn
		}
	case core.CellPiece:
		if target.Team == piece.TeamID {
			return core.ErrTargetIsOwn
		}
		if defender := gs.Piece(target.Team, target.Piece); defender != nil && defender.AttackPower() > piece.AttackPower() {
			return core.ErrDefenderTooStrong
		}
	}
	return nil
}

func checkLShape(g *core.Grid, from, to core.Coordinate) error {
	delta := to.Sub(from)
	matched := false
	for _, off := range core.KnightOffsets {
		if off.Equal(delta) {
			matched = true
			break
		}
	}
	if !matched {
		return core.ErrUnreachable
	}
	// The jump passes over the two cells along its long axis
	var unit core.Coordinate
	if delta.Row == 2 || delta.Row == -2 {
		unit = core.NewCoordinate(delta.Row/2, 0)
	} else {
		unit = core.NewCoordinate(0, delta.Col/2)
	}
	for k := 1; k <= 2; k++ {
		if !g.IsEmptyAt(from.Add(unit.Scale(k))) {
			return core.ErrPathBlocked
		}
	}
	return nil
}

func checkDirectional(g *core.Grid, piece *core.Piece, to core.Coordinate) error {
	dirs := piece.Description.Movement.Directions
	if dirs == nil {
		return core.ErrUnreachable
	}
	dir, steps, ok := core.DirectionOf(piece.TeamID, to.Sub(piece.Position))
	if !ok || steps > dirs.Steps(dir) {
		return core.ErrUnreachable
	}
	unit := dir.BoardVector(piece.TeamID)
	for k := 1; k < steps; k++ {
		if !g.IsEmptyAt(piece.Position.Add(unit.Scale(k))) {
			return core.ErrPathBlocked
		}
	}
	return nil
}

// PieceMoves enumerates every legal destination of piece as moves
func PieceMoves(gs *core.GameState, piece *core.Piece) []core.Move {
	var moves []core.Move
	add := func(to core.Coordinate) {
		moves = append(moves, core.Move{TeamID: piece.TeamID, PieceID: piece.ID, To: to})
	}

	if piece.Description.Movement.IsLShape() {
		for _, off := range core.KnightOffsets {
			to := piece.Position.Add(off)
			if checkMove(gs, piece, to) == nil {
				add(to)
			}
		}
		return moves
	}

	dirs := piece.Description.Movement.Directions
	if dirs == nil {
		return nil
	}
	for _, dir := range core.AllDirections {
		unit := dir.BoardVector(piece.TeamID)
		for k := 1; k <= dirs.Steps(dir); k++ {
			to := piece.Position.Add(unit.Scale(k))
			if !gs.Grid.InBounds(to) {
				break
			}
			cell := gs.Grid.At(to)
			if cell.IsEmpty() {
				add(to)
				continue
			}
			if checkTarget(gs, piece, cell) == nil {
				add(to)
			}
			break
		}
	}
	return moves
}

// LegalMoves lists every legal move of a team, piece by piece in roster order
func LegalMoves(gs *core.GameState, teamID int) []core.Move {
	team := gs.Team(teamID)
	if team == nil {
		return nil
	}
	var moves []core.Move
	for i := range team.Pieces {
		moves = append(moves, PieceMoves(gs, &team.Pieces[i])...)
	}
	return moves
}

// CanMove reports whether the team has at least one legal move
func CanMove(gs *core.GameState, teamID int) bool {
	team := gs.Team(teamID)
	if team == nil {
		return false
	}
	for i := range team.Pieces {
		if len(PieceMoves(gs, &team.Pieces[i])) > 0 {
			return true
		}
	}
	return false
}
