package events

import (
	"time"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
)

// Event type constants
const (
	TypeGameCreated     = "game.created"
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeTeamJoined      = "team.joined"
	TypeTeamSurrendered = "team.surrendered"
	TypeMoveApplied     = "move.applied"
	TypeMoveRejected    = "move.rejected"
	TypePieceCaptured   = "piece.captured"
	TypeBaseCaptured    = "base.captured"
	TypeTurnSkipped     = "turn.skipped"
	TypeStateTransition = "state.transition"
)

func newBase(eventType, gameID string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Game:      gameID,
	}
}

// GameCreatedEvent is published once the board has been generated
type GameCreatedEvent struct {
	BaseEvent
	NumTeams int
	Rows     int
	Cols     int
}

// NewGameCreatedEvent creates a new GameCreatedEvent
func NewGameCreatedEvent(gameID string, numTeams, rows, cols int) *GameCreatedEvent {
	return &GameCreatedEvent{
		BaseEvent: newBase(TypeGameCreated, gameID),
		NumTeams:  numTeams,
		Rows:      rows,
		Cols:      cols,
	}
}

// GameStartedEvent is published when the last team joins
type GameStartedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	NumTeams  int
	FirstTeam int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, numTeams, firstTeam int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: newBase(TypeGameStarted, gameID),
		Metadata:  EventMetadata{TeamID: firstTeam},
		NumTeams:  numTeams,
		FirstTeam: firstTeam,
	}
}

// GameEndedEvent is published when a game ends
type GameEndedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Winners  []int
	Reason   string
	Duration time.Duration
	Moves    int
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winners []int, reason string, duration time.Duration, moves int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Metadata:  EventMetadata{MoveNumber: moves},
		Winners:   winners,
		Reason:    reason,
		Duration:  duration,
		Moves:     moves,
	}
}

// TeamJoinedEvent is published each time a team slot is handed out
type TeamJoinedEvent struct {
	BaseEvent
	Metadata       EventMetadata
	TeamID         int
	RemainingSlots int
}

// NewTeamJoinedEvent creates a new TeamJoinedEvent
func NewTeamJoinedEvent(gameID string, teamID, remaining int) *TeamJoinedEvent {
	return &TeamJoinedEvent{
		BaseEvent:      newBase(TypeTeamJoined, gameID),
		Metadata:       EventMetadata{TeamID: teamID},
		TeamID:         teamID,
		RemainingSlots: remaining,
	}
}

// TeamSurrenderedEvent is published when a team gives up
type TeamSurrenderedEvent struct {
	BaseEvent
	Metadata      EventMetadata
	TeamID        int
	PiecesRemoved int
}

// NewTeamSurrenderedEvent creates a new TeamSurrenderedEvent
func NewTeamSurrenderedEvent(gameID string, teamID, piecesRemoved int) *TeamSurrenderedEvent {
	return &TeamSurrenderedEvent{
		BaseEvent:     newBase(TypeTeamSurrendered, gameID),
		Metadata:      EventMetadata{TeamID: teamID},
		TeamID:        teamID,
		PiecesRemoved: piecesRemoved,
	}
}

// MoveAppliedEvent is published after a move changed the board
type MoveAppliedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Move     core.Move
	From     core.Coordinate
}

// NewMoveAppliedEvent creates a new MoveAppliedEvent
func NewMoveAppliedEvent(gameID string, move core.Move, from core.Coordinate, moveNumber int) *MoveAppliedEvent {
	return &MoveAppliedEvent{
		BaseEvent: newBase(TypeMoveApplied, gameID),
		Metadata:  EventMetadata{TeamID: move.TeamID, MoveNumber: moveNumber},
		Move:      move,
		From:      from,
	}
}

// MoveRejectedEvent is published when a submitted move fails validation
type MoveRejectedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Move     core.Move
	Reason   string
}

// NewMoveRejectedEvent creates a new MoveRejectedEvent
func NewMoveRejectedEvent(gameID string, move core.Move, reason string) *MoveRejectedEvent {
	return &MoveRejectedEvent{
		BaseEvent: newBase(TypeMoveRejected, gameID),
		Metadata:  EventMetadata{TeamID: move.TeamID},
		Move:      move,
		Reason:    reason,
	}
}

// PieceCapturedEvent is published when a piece is taken off the board
type PieceCapturedEvent struct {
	BaseEvent
	Metadata      EventMetadata
	AttackerTeam  int
	AttackerPiece int
	VictimTeam    int
	VictimPiece   int
	Location      core.Coordinate
}

// NewPieceCapturedEvent creates a new PieceCapturedEvent
func NewPieceCapturedEvent(gameID string, attackerTeam, attackerPiece, victimTeam, victimPiece int, at core.Coordinate) *PieceCapturedEvent {
	return &PieceCapturedEvent{
		BaseEvent:     newBase(TypePieceCaptured, gameID),
		Metadata:      EventMetadata{TeamID: attackerTeam},
		AttackerTeam:  attackerTeam,
		AttackerPiece: attackerPiece,
		VictimTeam:    victimTeam,
		VictimPiece:   victimPiece,
		Location:      at,
	}
}

// BaseCapturedEvent is published when a piece reaches an opposing base
type BaseCapturedEvent struct {
	BaseEvent
	Metadata    EventMetadata
	TeamID      int
	BaseOwner   int
	FlagsLeft   int
	RespawnedAt *core.Coordinate
}

// NewBaseCapturedEvent creates a new BaseCapturedEvent
func NewBaseCapturedEvent(gameID string, teamID, baseOwner, flagsLeft int, respawnedAt *core.Coordinate) *BaseCapturedEvent {
	return &BaseCapturedEvent{
		BaseEvent:   newBase(TypeBaseCaptured, gameID),
		Metadata:    EventMetadata{TeamID: teamID},
		TeamID:      teamID,
		BaseOwner:   baseOwner,
		FlagsLeft:   flagsLeft,
		RespawnedAt: respawnedAt,
	}
}

// TurnSkippedEvent is published when the clock passes the turn on
type TurnSkippedEvent struct {
	BaseEvent
	Metadata EventMetadata
	TeamID   int
	Reason   string
}

// NewTurnSkippedEvent creates a new TurnSkippedEvent
func NewTurnSkippedEvent(gameID string, teamID int, reason string) *TurnSkippedEvent {
	return &TurnSkippedEvent{
		BaseEvent: newBase(TypeTurnSkipped, gameID),
		Metadata:  EventMetadata{TeamID: teamID},
		TeamID:    teamID,
		Reason:    reason,
	}
}

// StateTransitionEvent is published when the game state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
