package states

import (
	"fmt"
	"time"
)

// AwaitingTeamsState is the lobby: the board exists and teams are joining
type AwaitingTeamsState struct{}

func NewAwaitingTeamsState() State {
	return &AwaitingTeamsState{}
}

func (s *AwaitingTeamsState) Phase() GamePhase {
	return PhaseAwaitingTeams
}

func (s *AwaitingTeamsState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Int("max_teams", ctx.MaxTeams).Msg("Waiting for teams")
	return nil
}

func (s *AwaitingTeamsState) Exit(ctx *GameContext) error {
	ctx.Logger.Info().
		Int("joined_teams", ctx.JoinedTeams).
		Msg("All teams joined")
	return nil
}

func (s *AwaitingTeamsState) Validate(ctx *GameContext) error {
	if ctx.MaxTeams < 1 {
		return fmt.Errorf("max teams must be at least 1, got %d", ctx.MaxTeams)
	}
	return nil
}

// InProgressState represents active gameplay
type InProgressState struct{}

func NewInProgressState() State {
	return &InProgressState{}
}

func (s *InProgressState) Phase() GamePhase {
	return PhaseInProgress
}

func (s *InProgressState) Enter(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().
		Time("start_time", ctx.StartTime).
		Msg("Game started")
	return nil
}

func (s *InProgressState) Exit(ctx *GameContext) error {
	ctx.Logger.Info().
		Dur("elapsed", ctx.GetElapsedTime()).
		Msg("Exiting in-progress state")
	return nil
}

func (s *InProgressState) Validate(ctx *GameContext) error {
	if !ctx.IsReady() {
		return fmt.Errorf("not all teams joined: have %d, need %d", ctx.JoinedTeams, ctx.MaxTeams)
	}
	return nil
}

// OverState represents a finished game
type OverState struct{}

func NewOverState() State {
	return &OverState{}
}

func (s *OverState) Phase() GamePhase {
	return PhaseOver
}

func (s *OverState) Enter(ctx *GameContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Ints("winners", ctx.Winners).
		Str("reason", ctx.Reason).
		Dur("game_duration", ctx.GetElapsedTime()).
		Msg("Game over")
	return nil
}

func (s *OverState) Exit(ctx *GameContext) error {
	return nil
}

func (s *OverState) Validate(ctx *GameContext) error {
	if ctx.Reason == "" {
		return fmt.Errorf("game over requires a reason")
	}
	return nil
}
