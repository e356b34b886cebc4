// Package sim plays games forward for search without clocks, events or team slots.
package sim

import (
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/rules"
	"github.com/rs/zerolog"
)

// checker is shared by every simulator; it only logs, and logs nowhere
var checker = rules.NewWinConditionChecker(zerolog.Nop())

// Simulator owns a private copy of a game state. After every move the turn passes to
// the next team able to move, and the game ends when the engine's clock would end it:
// last flag taken, a single team left with pieces, a two-team stalemate, or nobody able
// to move.
type Simulator struct {
	gs      *core.GameState
	over    bool
	winners []int
}

// New copies gs; nothing the simulator does is visible through gs
func New(gs *core.GameState) *Simulator {
	s := &Simulator{gs: gs.Clone()}
	s.settle()
	return s
}

// Apply plays m. The move must be legal for the team to move.
func (s *Simulator) Apply(m core.Move) error {
	if s.over {
		return core.ErrGameOver
	}
	out, err := rules.ApplyMove(s.gs, m)
	if err != nil {
		return err
	}
	if out.GameOver {
		s.finish([]int{out.Winner})
		return nil
	}
	s.settle()
	return nil
}

// settle ends the game or hands the turn to the first team, starting with the
// current one, that has a legal move
func (s *Simulator) settle() {
	for range s.gs.Teams {
		if v := checker.CheckTick(s.gs, false); v.Over {
			s.finish(v.Winners)
			return
		}
		if rules.CanMove(s.gs, s.gs.CurrentTeam) {
			return
		}
		s.gs.CurrentTeam = s.gs.NextTeam()
	}
	s.finish(s.gs.TeamsWithPieces())
}

func (s *Simulator) finish(winners []int) {
	s.over = true
	s.winners = winners
}

// LegalMoves lists the moves of the team to move; nil once the game is over
func (s *Simulator) LegalMoves() []core.Move {
	if s.over {
		return nil
	}
	return rules.LegalMoves(s.gs, s.gs.CurrentTeam)
}

func (s *Simulator) IsTerminal() bool { return s.over }

// Winners returns the winning teams of a finished game; several means a tie
func (s *Simulator) Winners() []int { return s.winners }

// Wins reports whether teamID is the sole winner
func (s *Simulator) Wins(teamID int) bool {
	return len(s.winners) == 1 && s.winners[0] == teamID
}

func (s *Simulator) CurrentTeam() int { return s.gs.CurrentTeam }

// State exposes the simulated board. Callers must not modify it.
func (s *Simulator) State() *core.GameState { return s.gs }

// Clone returns an independent simulator at the same position
func (s *Simulator) Clone() *Simulator {
	return &Simulator{
		gs:      s.gs.Clone(),
		over:    s.over,
		winners: append([]int(nil), s.winners...),
	}
}
