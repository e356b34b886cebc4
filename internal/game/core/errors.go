package core

import (
	"errors"
	"fmt"
)

var (
	ErrCapacity        = errors.New("not enough room on the board")
	ErrSlotsExhausted  = errors.New("no team slots left")
	ErrInvalidMove     = errors.New("invalid move")
	ErrGameOver        = errors.New("game is over")
	ErrInvalidTemplate = errors.New("invalid map template")
	ErrMalformedCell   = errors.New("malformed cell encoding")
	ErrGameNotStarted  = errors.New("game has not started")
	ErrInvalidTeam     = errors.New("invalid team ID")
	ErrGameNotFound    = errors.New("game not found")
	ErrTooManyGames    = errors.New("server at capacity")
)

// Reasons a move is rejected. They are always reported wrapped by ErrInvalidMove.
var (
	ErrNoSuchPiece       = errors.New("piece does not exist")
	ErrNotYourTurn       = errors.New("not this team's turn")
	ErrOutOfBounds       = errors.New("destination out of bounds")
	ErrMoveToSelf        = errors.New("destination equals current position")
	ErrTargetIsObstacle  = errors.New("destination is blocked")
	ErrTargetIsOwn       = errors.New("destination holds own piece or base")
	ErrDefenderTooStrong = errors.New("defender has higher attack power")
	ErrUnreachable       = errors.New("piece cannot reach destination")
	ErrPathBlocked       = errors.New("path is obstructed")
)

// InvalidMove wraps a rejection reason so that errors.Is matches both the reason and ErrInvalidMove
func InvalidMove(reason error, m Move) error {
	return fmt.Errorf("%w: %w (%s)", ErrInvalidMove, reason, m)
}
