package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/events"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/rules"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/states"
	"github.com/rs/zerolog"
)

// DefaultTickInterval is how often the clock goroutine advances the game and move clocks
const DefaultTickInterval = time.Second

// GameConfig holds configuration for creating a new game
type GameConfig struct {
	Template core.MapTemplate
	Rng      *rand.Rand
	Logger   zerolog.Logger
	GameID   string

	// TickInterval is the wall-clock length of one clock second. Zero means DefaultTickInterval.
	TickInterval time.Duration

	// InitialState replaces the generated board when set. The engine takes ownership of it.
	InitialState *core.GameState
}

// Engine is the authoritative game session. All state changes go through mu, including
// the ones made by the clock goroutine.
type Engine struct {
	mu sync.Mutex

	id           string
	tmpl         core.MapTemplate
	gs           *core.GameState
	rng          *rand.Rand
	logger       zerolog.Logger
	eventBus     *events.EventBus
	stateMachine *states.StateMachine
	gameCtx      *states.GameContext
	winCondition *rules.WinConditionChecker
	tickInterval time.Duration

	gameSeconds int
	moveSeconds int
	moves       int

	stopClock context.CancelFunc
	clockDone chan struct{}
}

// Create builds a new game from cfg. Capacity errors from map generation are returned as is.
func Create(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// JoinGame hands out the next team slot and returns a copy of that team. Filling the
// last slot starts the game.
func (e *Engine) JoinGame() (core.Team, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.stateMachine.CurrentPhase().CanAddTeams() || e.gameCtx.JoinedTeams >= e.gameCtx.MaxTeams {
		return core.Team{}, core.ErrSlotsExhausted
	}

	e.gameCtx.JoinedTeams++
	teamID := e.gameCtx.JoinedTeams
	remaining := e.gameCtx.MaxTeams - e.gameCtx.JoinedTeams
	e.eventBus.Publish(events.NewTeamJoinedEvent(e.id, teamID, remaining))
	e.logger.Info().Int("team_id", teamID).Int("remaining_slots", remaining).Msg("Team joined")

	if e.gameCtx.IsReady() {
		if err := e.start(); err != nil {
			return core.Team{}, err
		}
	}
	return e.gs.Team(teamID).Clone(), nil
}

// Spectate returns the identity used by observers. It never owns pieces.
func (e *Engine) Spectate() int {
	return core.SpectatorTeamID
}

// start must be called with mu held
func (e *Engine) start() error {
	e.gs.CurrentTeam = e.rng.Intn(len(e.gs.Teams)) + 1
	if err := e.stateMachine.TransitionTo(states.PhaseInProgress, "all teams joined"); err != nil {
		e.logger.Error().Err(err).Msg("Failed to start game")
		return err
	}

	e.eventBus.Publish(events.NewGameStartedEvent(e.id, len(e.gs.Teams), e.gs.CurrentTeam))
	e.logger.Info().Int("first_team", e.gs.CurrentTeam).Msg("Game started")

	if e.tmpl.HasTimeLimit() {
		e.startClock()
	}
	return nil
}

func (e *Engine) startClock() {
	ctx, cancel := context.WithCancel(context.Background())
	e.stopClock = cancel
	e.clockDone = make(chan struct{})
	go e.runClock(ctx, e.clockDone)
}

func (e *Engine) runClock(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.Debug().Msg("Clock stopped")
			return
		case <-ticker.C:
			e.Tick()
		}
	}
}

// MakeMove checks and applies m in one critical section
func (e *Engine) MakeMove(m core.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch phase := e.stateMachine.CurrentPhase(); {
	case phase.IsTerminal():
		return core.ErrGameOver
	case !phase.CanReceiveMoves():
		return core.InvalidMove(core.ErrGameNotStarted, m)
	}

	out, err := rules.ApplyMove(e.gs, m)
	if err != nil {
		e.logger.Debug().Err(err).Int("team_id", m.TeamID).Int("piece_id", m.PieceID).Msg("Move rejected")
		e.eventBus.Publish(events.NewMoveRejectedEvent(e.id, m, err.Error()))
		return err
	}

	e.moves++
	e.moveSeconds = 0
	e.eventBus.Publish(events.NewMoveAppliedEvent(e.id, m, out.From, e.moves))

	if c := out.Captured; c != nil {
		e.eventBus.Publish(events.NewPieceCapturedEvent(e.id, m.TeamID, m.PieceID, c.TeamID, c.ID, m.To))
	}
	if out.BaseOwner != 0 {
		e.eventBus.Publish(events.NewBaseCapturedEvent(e.id, m.TeamID, out.BaseOwner, out.FlagsLeft, out.RespawnedAt))
	}
	if out.GameOver {
		e.endGame([]int{out.Winner}, rules.ReasonFlagsDepleted)
	}
	return nil
}

// Tick advances the clocks by one second and runs the per-tick checks. The clock
// goroutine calls it; games without time limits rely on their owner to call it.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.stateMachine.CurrentPhase().CanReceiveMoves() {
		return
	}

	e.gameSeconds++
	e.moveSeconds++

	expired := e.tmpl.TotalTimeLimitSeconds != core.Unlimited && e.gameSeconds >= e.tmpl.TotalTimeLimitSeconds
	if v := e.winCondition.CheckTick(e.gs, expired); v.Over {
		e.endGame(v.Winners, v.Reason)
		return
	}

	team := e.gs.Team(e.gs.CurrentTeam)
	var reason string
	switch {
	case e.tmpl.MoveTimeLimitSeconds != core.Unlimited && e.moveSeconds >= e.tmpl.MoveTimeLimitSeconds:
		reason = "move time expired"
	case !team.HasPieces():
		reason = "no pieces"
	case !rules.CanMove(e.gs, team.ID):
		reason = "no legal moves"
	}
	if reason != "" {
		e.skipTurn(reason)
	}
}

// skipTurn passes the turn on without counting a move. Must be called with mu held.
func (e *Engine) skipTurn(reason string) {
	skipped := e.gs.CurrentTeam
	e.gs.CurrentTeam = e.gs.NextTeam()
	e.moveSeconds = 0
	e.eventBus.Publish(events.NewTurnSkippedEvent(e.id, skipped, reason))
	e.logger.Debug().Int("team_id", skipped).Int("next_team", e.gs.CurrentTeam).Str("reason", reason).Msg("Turn skipped")
}

// GiveUp removes every piece of teamID from the board. If a single team is left
// with pieces it wins.
func (e *Engine) GiveUp(teamID int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch phase := e.stateMachine.CurrentPhase(); {
	case phase.IsTerminal():
		return core.ErrGameOver
	case !phase.CanReceiveMoves():
		return core.ErrGameNotStarted
	}

	team := e.gs.Team(teamID)
	if team == nil {
		return core.ErrInvalidTeam
	}

	removed := len(team.Pieces)
	for _, p := range team.Pieces {
		e.gs.Grid.Set(p.Position, core.EmptyCell)
	}
	team.Pieces = nil

	e.eventBus.Publish(events.NewTeamSurrenderedEvent(e.id, teamID, removed))
	e.logger.Info().Int("team_id", teamID).Int("pieces_removed", removed).Msg("Team gave up")

	if v := e.winCondition.CheckAttrition(e.gs); v.Over {
		e.endGame(v.Winners, rules.ReasonSurrender)
	}
	return nil
}

// endGame moves the game to PhaseOver and stops the clock. Must be called with mu held.
func (e *Engine) endGame(winners []int, reason rules.EndReason) {
	e.gameCtx.Winners = winners
	e.gameCtx.Reason = string(reason)
	if err := e.stateMachine.TransitionTo(states.PhaseOver, string(reason)); err != nil {
		e.logger.Error().Err(err).Msg("Failed to end game")
		return
	}
	if e.stopClock != nil {
		e.stopClock()
	}

	e.eventBus.Publish(events.NewGameEndedEvent(e.id, winners, string(reason), e.gameCtx.GetElapsedTime(), e.moves))
	e.logger.Info().
		Ints("winners", winners).
		Str("reason", string(reason)).
		Int("moves", e.moves).
		Msg("Game over")
}

// Close stops the clock goroutine and waits for it to exit. Safe to call more than once.
func (e *Engine) Close() {
	e.mu.Lock()
	stop, done := e.stopClock, e.clockDone
	e.mu.Unlock()

	if stop == nil {
		return
	}
	stop()
	<-done
}

// IsValidMove reports whether m is legal for the piece it names on the current board
func (e *Engine) IsValidMove(m core.Move) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return rules.IsValidMove(e.gs, m) == nil
}

// CurrentState returns a deep copy of the board that callers may mutate freely
func (e *Engine) CurrentState() *core.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gs.Clone()
}

// Snapshot returns the wire view of the current board
func (e *Engine) Snapshot() core.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gs.Snapshot()
}

func (e *Engine) RemainingTeamSlots() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameCtx.MaxTeams - e.gameCtx.JoinedTeams
}

// RemainingGameTimeSeconds returns -1 for an unlimited game and 0 once it is over
func (e *Engine) RemainingGameTimeSeconds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remaining(e.tmpl.TotalTimeLimitSeconds, e.gameSeconds)
}

// RemainingMoveTimeSeconds follows the same convention as RemainingGameTimeSeconds
func (e *Engine) RemainingMoveTimeSeconds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remaining(e.tmpl.MoveTimeLimitSeconds, e.moveSeconds)
}

func (e *Engine) remaining(limit, elapsed int) int {
	if e.stateMachine.CurrentPhase().IsTerminal() {
		return 0
	}
	if limit == core.Unlimited {
		return core.Unlimited
	}
	return max(0, limit-elapsed)
}

func (e *Engine) IsStarted() bool {
	return e.stateMachine.CurrentPhase() != states.PhaseAwaitingTeams
}

func (e *Engine) IsGameOver() bool {
	return e.stateMachine.CurrentPhase().IsTerminal()
}

// Phase returns the current lifecycle phase
func (e *Engine) Phase() states.GamePhase {
	return e.stateMachine.CurrentPhase()
}

// Winners returns the winning team IDs; more than one means a tie. Empty until the game is over.
func (e *Engine) Winners() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]int(nil), e.gameCtx.Winners...)
}

// OverReason says why the game ended, or "" while it is running
func (e *Engine) OverReason() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameCtx.Reason
}

func (e *Engine) StartedAt() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameCtx.StartTime
}

func (e *Engine) EndedAt() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameCtx.EndTime
}

// MoveCount returns the number of moves applied so far
func (e *Engine) MoveCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.moves
}

// History returns the lifecycle transitions so far
func (e *Engine) History() []states.Transition {
	return e.stateMachine.GetHistory()
}

func (e *Engine) ID() string { return e.id }

func (e *Engine) Template() core.MapTemplate { return e.tmpl }

// EventBus returns the bus the engine publishes on. Handlers run synchronously while
// the engine lock is held and must not call back into the Engine.
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }
