package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/ai/mcts"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/ai/minimax"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/config"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/template"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/monitoring"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/session"
)

// player picks a move for the team to move in gs
type player struct {
	name     string
	bestMove func(gs *core.GameState) (core.Move, bool)
}

func main() {
	configPath := flag.String("config", "", "Path to config file")
	templatePath := flag.String("template", "", "Map template file, or \"default\" (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	seed := flag.Int64("seed", 0, "Random seed (0 to use config default)")
	maxMoves := flag.Int("max-moves", 1000, "Stop after this many moves")
	color := flag.Bool("color", true, "Render the board with ANSI colors")
	quiet := flag.Bool("quiet", false, "Only print the final board")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(os.Getenv("APP_ENV")); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}

	cfg := *config.Get()
	if *templatePath == "" {
		*templatePath = cfg.Game.DefaultTemplate
	}
	if *logLevel == "" {
		*logLevel = cfg.Server.LogLevel
	}
	if *seed == 0 {
		*seed = cfg.Game.Seed
	}

	setupLogging(*logLevel, cfg.Server.LogFormat)

	if config.ConfigFilePath() != "" {
		config.WatchConfig(func(c *config.Config, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid config change")
				return
			}
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded; changes apply to the next game")
		})
	}

	tmpl, err := template.Load(*templatePath)
	if err != nil {
		log.Fatal().Err(err).Str("template", *templatePath).Msg("Failed to load map template")
	}
	cfg.Game.ApplyTo(&tmpl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := session.NewManager(session.Config{
		MaxGames:        cfg.Server.MaxGames,
		CleanupInterval: cfg.Server.CleanupEvery(),
		Seed:            *seed,
		Logger:          log.Logger,
	})
	defer manager.Close()

	monitor := monitoring.NewGoroutineMonitor(manager, log.Logger)
	go monitor.Run(ctx)

	engine, err := manager.CreateGame(ctx, tmpl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game")
	}
	for engine.RemainingTeamSlots() > 0 {
		if _, err := engine.JoinGame(); err != nil {
			log.Fatal().Err(err).Msg("Failed to join game")
		}
	}

	players := newPlayers(cfg.AI, *seed)
	log.Info().
		Str("game_id", engine.ID()).
		Str("template", *templatePath).
		Int("teams", tmpl.Teams).
		Int64("seed", *seed).
		Msg("Starting AI match")

	if !*quiet {
		fmt.Println(engine.Board(*color))
	}
	play(ctx, engine, players, *maxMoves, *color, *quiet)

	fmt.Println(engine.Board(*color))
	if engine.IsGameOver() {
		fmt.Printf("Game over (%s) after %d moves. Winners: %v\n", engine.OverReason(), engine.MoveCount(), engine.Winners())
	} else {
		fmt.Printf("Stopped after %d moves without a result\n", engine.MoveCount())
	}
}

// newPlayers alternates minimax and MCTS across team IDs, starting with minimax for team 1
func newPlayers(cfg config.AIConfig, seed int64) map[int]player {
	searcher := minimax.New(cfg.Minimax.MaxDepth, log.Logger)
	minimaxLimit := cfg.Minimax.TimeLimit()

	mctsOpts := []mcts.Option{
		mcts.WithDuration(cfg.MCTS.TimeLimit()),
		mcts.WithRolloutLimit(cfg.MCTS.RolloutLimit),
		mcts.WithLogger(log.Logger),
	}
	if seed != 0 {
		mctsOpts = append(mctsOpts, mcts.WithRand(rand.New(rand.NewSource(uint64(seed)))))
	}
	monteCarlo := mcts.New(mctsOpts...)

	players := make(map[int]player, core.MaxTeams)
	for team := 1; team <= core.MaxTeams; team++ {
		if team%2 == 1 {
			players[team] = player{name: "minimax", bestMove: func(gs *core.GameState) (core.Move, bool) {
				return searcher.BestMove(gs, minimaxLimit)
			}}
		} else {
			players[team] = player{name: "mcts", bestMove: monteCarlo.BestMove}
		}
	}
	return players
}

// play runs the match until it ends, the context is cancelled or maxMoves is reached.
// Untimed games have no clock goroutine, so the loop advances the clock itself.
func play(ctx context.Context, engine *game.Engine, players map[int]player, maxMoves int, color, quiet bool) {
	tmpl := engine.Template()
	ticking := !tmpl.HasTimeLimit()

	for !engine.IsGameOver() && engine.MoveCount() < maxMoves {
		if ctx.Err() != nil {
			log.Warn().Msg("Interrupted")
			return
		}

		gs := engine.CurrentState()
		p := players[gs.CurrentTeam]
		start := time.Now()
		move, ok := p.bestMove(gs)
		if !ok {
			if ticking {
				engine.Tick()
			} else {
				time.Sleep(10 * time.Millisecond)
			}
			continue
		}

		if err := engine.MakeMove(move); err != nil {
			// the clock may have moved the turn on while the search ran
			log.Debug().Err(err).Str("move", move.String()).Msg("Move rejected")
			if ticking {
				engine.Tick()
			}
			continue
		}
		log.Info().
			Int("team", gs.CurrentTeam).
			Str("player", p.name).
			Str("move", move.String()).
			Dur("think", time.Since(start)).
			Msg("Move played")

		if ticking {
			engine.Tick()
		}
		if !quiet {
			fmt.Println(engine.Board(color))
		}
	}
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}
