package mcts

import (
	"math"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/ai/sim"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
)

const (
	win  = 1.0
	loss = 0.0
)

type node struct {
	parent   *node
	move     core.Move // move that led here from parent
	state    *sim.Simulator
	children []*node
	visits   int
	wins     float64
}

func newNode(parent *node, move core.Move, state *sim.Simulator) *node {
	return &node{parent: parent, move: move, state: state}
}

// selectLeaf follows the best UCB1 child until it reaches a node without children
func (n *node) selectLeaf() *node {
	for len(n.children) > 0 {
		best := n.children[0]
		bestScore := math.Inf(-1)
		for _, c := range n.children {
			if s := ucb1(c.wins, c.visits, n.visits); s > bestScore {
				best, bestScore = c, s
			}
		}
		n = best
	}
	return n
}

// expand adds one child per legal move
func (n *node) expand() {
	moves := n.state.LegalMoves()
	n.children = make([]*node, 0, len(moves))
	for _, m := range moves {
		next := n.state.Clone()
		if err := next.Apply(m); err != nil {
			continue
		}
		n.children = append(n.children, newNode(n, m, next))
	}
}

func (n *node) backpropagate(reward float64) {
	for ; n != nil; n = n.parent {
		n.visits++
		n.wins += reward
	}
}

func (n *node) winRate() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.wins / float64(n.visits)
}

func ucb1(wins float64, visits, parentVisits int) float64 {
	if visits == 0 {
		return math.Inf(1)
	}
	return wins/float64(visits) + math.Sqrt2*math.Sqrt(math.Log(float64(parentVisits))/float64(visits))
}
