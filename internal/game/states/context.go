package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// JoinedTeams is the number of team slots handed out so far
	JoinedTeams int

	// MaxTeams is the number of teams the template asks for
	MaxTeams int

	// StartTime is when the game started (PhaseInProgress entered)
	StartTime time.Time

	// EndTime is when PhaseOver was entered
	EndTime time.Time

	// Winners holds the winning team IDs once the game is over; several means a tie
	Winners []int

	// Reason says why the game ended
	Reason string
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, maxTeams int, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:   gameID,
		MaxTeams: maxTeams,
		Logger:   logger.With().Str("game_id", gameID).Logger(),
	}
}

// IsReady returns true once every team slot has been taken
func (gc *GameContext) IsReady() bool {
	return gc.MaxTeams >= 1 && gc.JoinedTeams == gc.MaxTeams
}

// GetElapsedTime returns the time spent in play, up to the end if the game is over
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}
