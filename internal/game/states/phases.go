package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhaseAwaitingTeams - board generated, team slots being handed out
	PhaseAwaitingTeams GamePhase = iota

	// PhaseInProgress - moves are accepted and the clock runs
	PhaseInProgress

	// PhaseOver - winners decided, nothing changes any more
	PhaseOver
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseAwaitingTeams:
		return "AwaitingTeams"
	case PhaseInProgress:
		return "InProgress"
	case PhaseOver:
		return "Over"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseOver
}

// CanReceiveMoves returns true if the game can process moves in this phase
func (p GamePhase) CanReceiveMoves() bool {
	return p == PhaseInProgress
}

// CanAddTeams returns true if teams can join in this phase
func (p GamePhase) CanAddTeams() bool {
	return p == PhaseAwaitingTeams
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseAwaitingTeams:
		return []GamePhase{PhaseInProgress}
	case PhaseInProgress:
		return []GamePhase{PhaseOver}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}
