// Package session keeps the set of live games and removes them once they are done.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
	"github.com/rs/zerolog"
)

const (
	DefaultFinishedGameTTL  = 5 * time.Minute
	DefaultAbandonedTimeout = 30 * time.Minute
)

// Config holds the manager settings. Zero durations select the defaults, except
// CleanupInterval where zero disables the background sweep.
type Config struct {
	MaxGames         int // 0 means unlimited
	CleanupInterval  time.Duration
	FinishedGameTTL  time.Duration
	AbandonedTimeout time.Duration
	// Seed of 0 gives every game a clock-seeded generator
	Seed         int64
	TickInterval time.Duration
	Logger       zerolog.Logger
}

type gameEntry struct {
	engine    *game.Engine
	createdAt time.Time
}

// Manager manages all live game instances
type Manager struct {
	mu      sync.RWMutex
	games   map[string]*gameEntry
	created int64
	cfg     Config
	logger  zerolog.Logger

	stopCleanup context.CancelFunc
	cleanupDone chan struct{}
	closeOnce   sync.Once
}

// NewManager creates a manager and starts the cleanup goroutine when an interval is set
func NewManager(cfg Config) *Manager {
	if cfg.FinishedGameTTL <= 0 {
		cfg.FinishedGameTTL = DefaultFinishedGameTTL
	}
	if cfg.AbandonedTimeout <= 0 {
		cfg.AbandonedTimeout = DefaultAbandonedTimeout
	}
	m := &Manager{
		games:  make(map[string]*gameEntry),
		cfg:    cfg,
		logger: cfg.Logger.With().Str("component", "SessionManager").Logger(),
	}

	if cfg.CleanupInterval > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		m.stopCleanup = cancel
		m.cleanupDone = make(chan struct{})
		go m.runCleanup(ctx, cfg.CleanupInterval)
	}
	return m
}

// CreateGame builds a new game from tmpl and registers it under a fresh ID
func (m *Manager) CreateGame(ctx context.Context, tmpl core.MapTemplate) (*game.Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg.MaxGames > 0 && len(m.games) >= m.cfg.MaxGames {
		m.logger.Warn().
			Int("current_games", len(m.games)).
			Int("max_games", m.cfg.MaxGames).
			Msg("Rejecting game creation - server at capacity")
		return nil, fmt.Errorf("%w: %d/%d games active", core.ErrTooManyGames, len(m.games), m.cfg.MaxGames)
	}

	gameID := uuid.NewString()
	engine, err := game.Create(ctx, game.GameConfig{
		Template:     tmpl,
		Rng:          m.nextRng(),
		Logger:       m.cfg.Logger,
		GameID:       gameID,
		TickInterval: m.cfg.TickInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	m.created++
	m.games[gameID] = &gameEntry{engine: engine, createdAt: time.Now()}

	m.logger.Info().
		Str("game_id", gameID).
		Int("current_games", len(m.games)).
		Int("max_games", m.cfg.MaxGames).
		Int("rows", tmpl.Rows).
		Int("cols", tmpl.Cols).
		Int("teams", tmpl.Teams).
		Msg("Successfully created new game")

	return engine, nil
}

// nextRng derives a per-game generator from the configured seed. Callers hold m.mu.
func (m *Manager) nextRng() *rand.Rand {
	if m.cfg.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(m.cfg.Seed + m.created))
}

// Get retrieves a game by ID
func (m *Manager) Get(gameID string) (*game.Engine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	return entry.engine, nil
}

// Remove stops a game and forgets it
func (m *Manager) Remove(gameID string) error {
	m.mu.Lock()
	entry, ok := m.games[gameID]
	delete(m.games, gameID)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	entry.engine.Close()
	return nil
}

// ActiveGames returns the number of registered games
func (m *Manager) ActiveGames() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// GameIDs returns the registered IDs in sorted order
func (m *Manager) GameIDs() []string {
	m.mu.RLock()
	ids := make([]string, 0, len(m.games))
	for id := range m.games {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// runCleanup periodically removes finished and abandoned games
func (m *Manager) runCleanup(ctx context.Context, interval time.Duration) {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.cleanupGames(now)
		}
	}
}

// cleanupGames removes games that finished more than FinishedGameTTL ago and games that
// never filled their team slots within AbandonedTimeout. It returns the number removed.
func (m *Manager) cleanupGames(now time.Time) int {
	// Collect references first so engine locks are never taken under m.mu
	m.mu.RLock()
	refs := make(map[string]*gameEntry, len(m.games))
	for id, entry := range m.games {
		refs[id] = entry
	}
	m.mu.RUnlock()

	var toDelete []string
	for id, entry := range refs {
		reason := ""
		switch {
		case entry.engine.IsGameOver():
			if now.Sub(entry.engine.EndedAt()) > m.cfg.FinishedGameTTL {
				reason = "finished game TTL expired"
			}
		case !entry.engine.IsStarted():
			if now.Sub(entry.createdAt) > m.cfg.AbandonedTimeout {
				reason = "game abandoned (team slots never filled)"
			}
		}
		if reason == "" {
			continue
		}
		toDelete = append(toDelete, id)
		m.logger.Info().
			Str("game_id", id).
			Str("reason", reason).
			Dur("age", now.Sub(entry.createdAt)).
			Msg("Cleaning up game")
	}

	if len(toDelete) == 0 {
		return 0
	}

	m.mu.Lock()
	for _, id := range toDelete {
		delete(m.games, id)
	}
	remaining := len(m.games)
	m.mu.Unlock()

	for _, id := range toDelete {
		refs[id].engine.Close()
	}

	m.logger.Info().
		Int("cleaned", len(toDelete)).
		Int("remaining", remaining).
		Msg("Game cleanup completed")
	return len(toDelete)
}

// Close stops the cleanup goroutine and every registered game
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		if m.stopCleanup != nil {
			m.stopCleanup()
			<-m.cleanupDone
		}

		m.mu.Lock()
		games := m.games
		m.games = make(map[string]*gameEntry)
		m.mu.Unlock()

		for _, entry := range games {
			entry.engine.Close()
		}
		m.logger.Info().Int("closed", len(games)).Msg("Session manager closed")
	})
}
