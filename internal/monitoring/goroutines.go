package monitoring

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultCheckInterval = 30 * time.Second
	DefaultAlertCooldown = 5 * time.Minute
	// DefaultSlack is how many goroutines above baseline+games are tolerated
	DefaultSlack = 50
)

// GameCounter reports how many games are live. Each live game may own one clock goroutine.
type GameCounter interface {
	ActiveGames() int
}

// GoroutineMonitor watches for goroutines outliving the games that started them
type GoroutineMonitor struct {
	mu            sync.RWMutex
	games         GameCounter
	logger        zerolog.Logger
	baseline      int
	current       int
	peak          int
	lastGames     int
	checkInterval time.Duration
	slack         int
	lastAlert     time.Time
	alertCooldown time.Duration
	alerts        int
	now           func() time.Time
	numGoroutine  func() int
}

// GoroutineMetrics contains goroutine statistics
type GoroutineMetrics struct {
	Current  int `json:"current"`
	Baseline int `json:"baseline"`
	Peak     int `json:"peak"`
	Games    int `json:"games"`
	Excess   int `json:"excess"`
	Alerts   int `json:"alerts"`
}

// NewGoroutineMonitor records the current goroutine count as the baseline
func NewGoroutineMonitor(games GameCounter, logger zerolog.Logger) *GoroutineMonitor {
	baseline := runtime.NumGoroutine()
	return &GoroutineMonitor{
		games:         games,
		logger:        logger.With().Str("component", "GoroutineMonitor").Logger(),
		baseline:      baseline,
		current:       baseline,
		peak:          baseline,
		checkInterval: DefaultCheckInterval,
		slack:         DefaultSlack,
		alertCooldown: DefaultAlertCooldown,
		now:           time.Now,
		numGoroutine:  runtime.NumGoroutine,
	}
}

// Run checks on every interval until ctx is cancelled
func (gm *GoroutineMonitor) Run(ctx context.Context) {
	gm.logger.Info().Int("baseline", gm.baseline).Msg("Started goroutine monitoring")

	ticker := time.NewTicker(gm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			gm.Check()
		case <-ctx.Done():
			return
		}
	}
}

// Check samples the goroutine count and warns when it exceeds what the live games explain
func (gm *GoroutineMonitor) Check() {
	current := gm.numGoroutine()
	games := gm.games.ActiveGames()

	gm.mu.Lock()
	gm.current = current
	gm.lastGames = games
	gm.peak = max(gm.peak, current)
	excess := gm.excessLocked()
	shouldAlert := excess > gm.slack &&
		(gm.lastAlert.IsZero() || gm.now().Sub(gm.lastAlert) > gm.alertCooldown)
	if shouldAlert {
		gm.lastAlert = gm.now()
		gm.alerts++
	}
	peak := gm.peak
	gm.mu.Unlock()

	gm.logger.Debug().
		Int("current", current).
		Int("baseline", gm.baseline).
		Int("peak", peak).
		Int("games", games).
		Msg("Goroutine metrics")

	if shouldAlert {
		gm.logger.Warn().
			Int("current", current).
			Int("games", games).
			Int("excess", excess).
			Msg("Goroutines outnumber live games - possible clock leak")
	}
}

func (gm *GoroutineMonitor) excessLocked() int {
	return max(0, gm.current-gm.baseline-gm.lastGames)
}

// GetMetrics returns the values from the last check
func (gm *GoroutineMonitor) GetMetrics() GoroutineMetrics {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return GoroutineMetrics{
		Current:  gm.current,
		Baseline: gm.baseline,
		Peak:     gm.peak,
		Games:    gm.lastGames,
		Excess:   gm.excessLocked(),
		Alerts:   gm.alerts,
	}
}
