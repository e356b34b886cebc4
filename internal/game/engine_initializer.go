package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/events"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/mapgen"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/rules"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/states"
	"github.com/rs/zerolog"
)

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates and initializes a new game engine
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	ei.setupDefaults()

	gs, err := ei.buildState()
	if err != nil {
		return nil, fmt.Errorf("map generation failed: %w", err)
	}

	engine := ei.createEngine(gs)
	ei.setupEventHandling(engine)

	engine.eventBus.Publish(events.NewGameCreatedEvent(
		engine.id,
		len(gs.Teams),
		gs.Grid.Rows,
		gs.Grid.Cols,
	))

	ei.logger.Info().
		Str("game_id", engine.id).
		Int("rows", gs.Grid.Rows).
		Int("cols", gs.Grid.Cols).
		Int("teams", len(gs.Teams)).
		Str("placement", string(ei.config.Template.Placement)).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ei.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if ei.config.GameID == "" {
		ei.config.GameID = uuid.NewString()
	}

	if ei.config.TickInterval <= 0 {
		ei.config.TickInterval = DefaultTickInterval
	}
}

// buildState generates the board, or adopts the one supplied in the config
func (ei *EngineInitializer) buildState() (*core.GameState, error) {
	if gs := ei.config.InitialState; gs != nil {
		if len(gs.Teams) == 0 || gs.Grid == nil {
			return nil, fmt.Errorf("%w: initial state has no teams or grid", core.ErrInvalidTemplate)
		}
		// the template still drives team slots and clocks
		if err := ei.config.Template.Validate(); err != nil {
			return nil, err
		}
		if ei.config.Template.Teams != len(gs.Teams) {
			return nil, fmt.Errorf("%w: template has %d teams, initial state has %d",
				core.ErrInvalidTemplate, ei.config.Template.Teams, len(gs.Teams))
		}
		return gs, nil
	}
	return mapgen.NewGenerator(ei.config.Template, ei.config.Rng).GenerateMap()
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine(gs *core.GameState) *Engine {
	logger := ei.logger.With().Str("game_id", ei.config.GameID).Logger()
	eventBus := events.NewEventBus()

	gameContext := states.NewGameContext(ei.config.GameID, len(gs.Teams), ei.logger)
	stateMachine := states.NewStateMachine(gameContext, eventBus)

	return &Engine{
		id:           ei.config.GameID,
		tmpl:         ei.config.Template,
		gs:           gs,
		rng:          ei.config.Rng,
		logger:       logger,
		eventBus:     eventBus,
		stateMachine: stateMachine,
		gameCtx:      gameContext,
		winCondition: rules.NewWinConditionChecker(logger),
		tickInterval: ei.config.TickInterval,
	}
}

// setupEventHandling subscribes the structured event logger to the engine's bus
func (ei *EngineInitializer) setupEventHandling(engine *Engine) {
	logSub := subscribers.NewLoggerSubscriber("event-logger-"+engine.id, ei.logger, zerolog.DebugLevel)
	engine.eventBus.Subscribe(logSub)
}
