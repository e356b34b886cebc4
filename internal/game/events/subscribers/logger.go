package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	// If no filter is set, interested in all events
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	// Create the base event log
	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	// Add event-specific fields based on type
	switch e := event.(type) {
	case *events.GameCreatedEvent:
		logEvent.
			Int("num_teams", e.NumTeams).
			Int("rows", e.Rows).
			Int("cols", e.Cols)

	case *events.GameStartedEvent:
		logEvent.
			Int("num_teams", e.NumTeams).
			Int("first_team", e.FirstTeam)

	case *events.GameEndedEvent:
		logEvent.
			Ints("winners", e.Winners).
			Str("reason", e.Reason).
			Dur("duration", e.Duration).
			Int("moves", e.Moves)

	case *events.TeamJoinedEvent:
		logEvent.
			Int("team_id", e.TeamID).
			Int("remaining_slots", e.RemainingSlots)

	case *events.TeamSurrenderedEvent:
		logEvent.
			Int("team_id", e.TeamID).
			Int("pieces_removed", e.PiecesRemoved)

	case *events.MoveAppliedEvent:
		logEvent.
			Int("team_id", e.Move.TeamID).
			Int("piece_id", e.Move.PieceID).
			Str("from", e.From.String()).
			Str("to", e.Move.To.String()).
			Int("move_number", e.Metadata.MoveNumber)

	case *events.MoveRejectedEvent:
		logEvent.
			Str("move", e.Move.String()).
			Str("reason", e.Reason)

	case *events.PieceCapturedEvent:
		logEvent.
			Int("attacker_team", e.AttackerTeam).
			Int("attacker_piece", e.AttackerPiece).
			Int("victim_team", e.VictimTeam).
			Int("victim_piece", e.VictimPiece).
			Str("location", e.Location.String())

	case *events.BaseCapturedEvent:
		logEvent.
			Int("team_id", e.TeamID).
			Int("base_owner", e.BaseOwner).
			Int("flags_left", e.FlagsLeft)
		if e.RespawnedAt != nil {
			logEvent.Str("respawned_at", e.RespawnedAt.String())
		}

	case *events.TurnSkippedEvent:
		logEvent.
			Int("team_id", e.TeamID).
			Str("reason", e.Reason)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	// Send the log
	logEvent.Msg("Game event")
}
