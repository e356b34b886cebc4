// Package mcts picks moves with Monte Carlo tree search and random rollouts.
package mcts

import (
	"time"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/ai/sim"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/rules"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

const (
	DefaultDuration     = time.Second
	DefaultRolloutLimit = 500
)

type Option func(m *MCTS)

// MCTS holds search settings. Searches are sequential; one MCTS must not run two at once
// because they share the random source.
type MCTS struct {
	duration     time.Duration
	iterations   int
	rolloutLimit int
	rng          *rand.Rand
	logger       zerolog.Logger
}

// WithDuration bounds a search by wall-clock time
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithIterations runs exactly n iterations instead of watching the clock
func WithIterations(n int) Option {
	return func(m *MCTS) {
		if n > 0 {
			m.iterations = n
		}
	}
}

// WithRolloutLimit caps the number of moves in one rollout; a rollout cut short is a loss
func WithRolloutLimit(limit int) Option {
	return func(m *MCTS) {
		if limit > 0 {
			m.rolloutLimit = limit
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *MCTS) {
		m.logger = logger.With().Str("component", "MCTS").Logger()
	}
}

func New(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		duration:     DefaultDuration,
		rolloutLimit: DefaultRolloutLimit,
		logger:       zerolog.Nop(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

// BestMove runs a search of the given duration with default settings
func BestMove(gs *core.GameState, timeLimit time.Duration) (core.Move, bool) {
	return New(WithDuration(timeLimit)).BestMove(gs)
}

// BestMove returns the root child with the highest win rate for the team to move.
// ok is false when that team has no legal move. gs is never modified.
func (m *MCTS) BestMove(gs *core.GameState) (core.Move, bool) {
	if !rules.CanMove(gs, gs.CurrentTeam) {
		return core.Move{}, false
	}
	root := newNode(nil, core.Move{}, sim.New(gs))
	if root.state.IsTerminal() {
		return core.Move{}, false
	}
	team := root.state.CurrentTeam()

	iterations := 0
	deadline := time.Now().Add(m.duration)
	for m.keepGoing(iterations, deadline) {
		m.iterate(root, team)
		iterations++
	}

	if len(root.children) == 0 {
		return core.Move{}, false
	}
	best := root.children[0]
	for _, c := range root.children[1:] {
		if c.winRate() > best.winRate() {
			best = c
		}
	}

	m.logger.Debug().
		Int("team", team).
		Int("iterations", iterations).
		Str("move", best.move.String()).
		Float64("win_rate", best.winRate()).
		Int("visits", best.visits).
		Msg("Search complete")
	return best.move, true
}

// keepGoing always allows the first iteration so the root gets expanded
func (m *MCTS) keepGoing(done int, deadline time.Time) bool {
	if m.iterations > 0 {
		return done < m.iterations
	}
	return done == 0 || time.Now().Before(deadline)
}

func (m *MCTS) iterate(root *node, team int) {
	leaf := root.selectLeaf()
	if !leaf.state.IsTerminal() {
		leaf.expand()
	}
	if len(leaf.children) > 0 {
		leaf = leaf.children[m.rng.Intn(len(leaf.children))]
	}
	leaf.backpropagate(m.rollout(leaf.state, team))
}

// rollout plays random moves from s until the game ends or the limit is hit
func (m *MCTS) rollout(s *sim.Simulator, team int) float64 {
	if !s.IsTerminal() {
		s = s.Clone()
	}
	for depth := 0; !s.IsTerminal() && depth < m.rolloutLimit; depth++ {
		moves := s.LegalMoves()
		if len(moves) == 0 {
			break
		}
		if err := s.Apply(moves[m.rng.Intn(len(moves))]); err != nil {
			m.logger.Warn().Err(err).Msg("Rollout move failed to apply")
			return loss
		}
	}
	if s.IsTerminal() && s.Wins(team) {
		return win
	}
	return loss
}
