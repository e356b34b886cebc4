package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/testutil"
	"github.com/stretchr/testify/assert"
)

type fixedGames int

func (f *fixedGames) ActiveGames() int { return int(*f) }

func newTestMonitor(games *fixedGames, goroutines *int, clock *time.Time) *GoroutineMonitor {
	gm := NewGoroutineMonitor(games, testutil.NopLogger())
	gm.baseline = 10
	gm.current = 10
	gm.peak = 10
	gm.slack = 5
	gm.numGoroutine = func() int { return *goroutines }
	gm.now = func() time.Time { return *clock }
	return gm
}

func TestCheck_GamesExplainGoroutines(t *testing.T) {
	games := fixedGames(20)
	goroutines := 30
	clock := time.Now()
	gm := newTestMonitor(&games, &goroutines, &clock)

	gm.Check()

	m := gm.GetMetrics()
	assert.Equal(t, 30, m.Current)
	assert.Equal(t, 30, m.Peak)
	assert.Equal(t, 20, m.Games)
	assert.Equal(t, 0, m.Excess)
	assert.Equal(t, 0, m.Alerts)
}

func TestCheck_AlertsOnLeakWithCooldown(t *testing.T) {
	games := fixedGames(0)
	goroutines := 40
	clock := time.Now()
	gm := newTestMonitor(&games, &goroutines, &clock)

	gm.Check()
	assert.Equal(t, 30, gm.GetMetrics().Excess)
	assert.Equal(t, 1, gm.GetMetrics().Alerts)

	// Still leaking but within the cooldown
	clock = clock.Add(time.Minute)
	gm.Check()
	assert.Equal(t, 1, gm.GetMetrics().Alerts)

	clock = clock.Add(DefaultAlertCooldown)
	gm.Check()
	assert.Equal(t, 2, gm.GetMetrics().Alerts)
}

func TestCheck_PeakIsKept(t *testing.T) {
	games := fixedGames(0)
	goroutines := 14
	clock := time.Now()
	gm := newTestMonitor(&games, &goroutines, &clock)

	gm.Check()
	goroutines = 11
	gm.Check()

	m := gm.GetMetrics()
	assert.Equal(t, 11, m.Current)
	assert.Equal(t, 14, m.Peak)
	assert.Equal(t, 1, m.Excess)
}

func TestRun_StopsOnCancel(t *testing.T) {
	games := fixedGames(0)
	gm := NewGoroutineMonitor(&games, testutil.NopLogger())
	gm.checkInterval = time.Millisecond
	gm.current = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		gm.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return gm.GetMetrics().Current > 0 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}
