package rules

import (
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
	"github.com/rs/zerolog"
)

// EndReason says why a game finished
type EndReason string

const (
	ReasonNone          EndReason = ""
	ReasonFlagsDepleted EndReason = "flags_depleted"
	ReasonTimeExpired   EndReason = "time_expired"
	ReasonAttrition     EndReason = "attrition"
	ReasonStalemate     EndReason = "stalemate"
	ReasonSurrender     EndReason = "surrender"
)

// Verdict is the result of a game over check
type Verdict struct {
	Over    bool
	Reason  EndReason
	Winners []int
}

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckTick runs the checks made once per clock tick, in order:
// game time exhausted, a single team left with pieces, and a two-team stalemate.
func (wc *WinConditionChecker) CheckTick(gs *core.GameState, gameTimeExpired bool) Verdict {
	if gameTimeExpired {
		winners := MostPieces(gs)
		wc.logger.Info().Ints("winners", winners).Msg("Game time exhausted")
		return Verdict{Over: true, Reason: ReasonTimeExpired, Winners: winners}
	}
	if v := wc.CheckAttrition(gs); v.Over {
		return v
	}

	// Only decided for exactly two remaining teams; with three or more the turn is skipped
	active := gs.TeamsWithPieces()
	current := gs.Team(gs.CurrentTeam)
	if len(active) == 2 && current != nil && current.HasPieces() && !CanMove(gs, current.ID) {
		wc.logger.Info().Int("team", current.ID).Ints("teams", active).Msg("Stalemate, declaring a tie")
		return Verdict{Over: true, Reason: ReasonStalemate, Winners: active}
	}

	wc.logger.Debug().Ints("active_teams", active).Msg("Game over check complete")
	return Verdict{}
}

// CheckAttrition ends the game when exactly one team still has pieces
func (wc *WinConditionChecker) CheckAttrition(gs *core.GameState) Verdict {
	active := gs.TeamsWithPieces()
	if len(gs.Teams) > 1 && len(active) == 1 {
		wc.logger.Info().Int("winner_team_id", active[0]).Msg("Winner determined")
		return Verdict{Over: true, Reason: ReasonAttrition, Winners: active}
	}
	return Verdict{}
}

// MostPieces returns every team tied for the largest roster
func MostPieces(gs *core.GameState) []int {
	best := -1
	var winners []int
	for i := range gs.Teams {
		n := len(gs.Teams[i].Pieces)
		switch {
		case n > best:
			best = n
			winners = []int{gs.Teams[i].ID}
		case n == best:
			winners = append(winners, gs.Teams[i].ID)
		}
	}
	return winners
}
