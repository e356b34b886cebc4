// Package minimax picks moves with a fixed-depth alpha-beta search.
package minimax

import (
	"math"
	"slices"
	"time"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/ai/eval"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/ai/sim"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/common"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/rules"
	"github.com/rs/zerolog"
)

// DefaultMaxDepth is the search depth used when none is configured
const DefaultMaxDepth = 3

// Searcher is safe for concurrent use; it keeps no state between searches
type Searcher struct {
	MaxDepth int
	Logger   zerolog.Logger
}

// Stats describes one search
type Stats struct {
	Nodes    int
	TimedOut bool
	Score    int
}

// New creates a searcher. A non-positive depth means DefaultMaxDepth.
func New(maxDepth int, logger zerolog.Logger) *Searcher {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Searcher{
		MaxDepth: maxDepth,
		Logger:   logger.With().Str("component", "Minimax").Logger(),
	}
}

// BestMove returns the move for the team to move in gs with the highest root value.
// ok is false when that team has no legal move. gs is never modified.
func BestMove(gs *core.GameState, timeLimit time.Duration) (core.Move, bool) {
	return New(DefaultMaxDepth, zerolog.Nop()).BestMove(gs, timeLimit)
}

// BestMove searches gs until MaxDepth or until timeLimit runs out, whichever comes first
func (s *Searcher) BestMove(gs *core.GameState, timeLimit time.Duration) (core.Move, bool) {
	m, _, ok := s.Search(gs, timeLimit)
	return m, ok
}

// Search is BestMove plus statistics
func (s *Searcher) Search(gs *core.GameState, timeLimit time.Duration) (core.Move, Stats, bool) {
	// a stuck team passes through the engine's turn skipping, not through a search
	if !rules.CanMove(gs, gs.CurrentTeam) {
		return core.Move{}, Stats{}, false
	}
	root := sim.New(gs)
	moves := root.LegalMoves()
	switch len(moves) {
	case 0:
		return core.Move{}, Stats{}, false
	case 1:
		return moves[0], Stats{Nodes: 1}, true
	}

	w := &walk{
		team:     root.CurrentTeam(),
		deadline: time.Now().Add(timeLimit),
	}

	best := moves[0]
	bestScore := math.MinInt
	alpha := math.MinInt
	for _, m := range moves {
		child := root.Clone()
		if err := child.Apply(m); err != nil {
			s.Logger.Warn().Err(err).Str("move", m.String()).Msg("Legal move failed to apply")
			continue
		}
		v := w.alphaBeta(child, s.MaxDepth-1, alpha, math.MaxInt)
		if v > bestScore {
			best, bestScore = m, v
		}
		alpha = max(alpha, v)
	}

	stats := Stats{Nodes: w.nodes, TimedOut: w.timedOut, Score: bestScore}
	s.Logger.Debug().
		Int("team", w.team).
		Str("move", best.String()).
		Int("score", bestScore).
		Int("nodes", w.nodes).
		Bool("timed_out", w.timedOut).
		Msg("Search complete")
	return best, stats, true
}

// walk carries the per-search state through the recursion
type walk struct {
	team     int
	deadline time.Time
	nodes    int
	timedOut bool
}

func (w *walk) alphaBeta(node *sim.Simulator, depth, alpha, beta int) int {
	w.nodes++

	if node.IsTerminal() {
		return w.terminalScore(node)
	}
	score := eval.Evaluate(node.State(), w.team, true)
	if depth <= 0 || common.Abs(score) >= eval.Max {
		return score
	}
	if time.Now().After(w.deadline) {
		w.timedOut = true
		return score
	}

	maximizing := node.CurrentTeam() == w.team
	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}
	for _, m := range node.LegalMoves() {
		child := node.Clone()
		if err := child.Apply(m); err != nil {
			continue
		}
		v := w.alphaBeta(child, depth-1, alpha, beta)
		if maximizing {
			best = max(best, v)
			alpha = max(alpha, best)
		} else {
			best = min(best, v)
			beta = min(beta, best)
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

func (w *walk) terminalScore(node *sim.Simulator) int {
	winners := node.Winners()
	switch {
	case node.Wins(w.team):
		return eval.Max
	case len(winners) > 1 && slices.Contains(winners, w.team):
		return 0
	default:
		return -eval.Max
	}
}
