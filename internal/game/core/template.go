package core

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Unlimited marks a time limit that never runs out
const Unlimited = -1

// MaxTeams is the number of distinct orientations a board supports
const MaxTeams = 4

// Placement selects how a team's pieces are laid out at setup
type Placement string

const (
	PlacementSymmetrical Placement = "symmetrical"
	PlacementSpacedOut   Placement = "spaced_out"
	PlacementDefensive   Placement = "defensive"
)

func (p Placement) IsValid() bool {
	switch p {
	case PlacementSymmetrical, PlacementSpacedOut, PlacementDefensive:
		return true
	}
	return false
}

// MapTemplate describes how to build a game. It is never modified once a game uses it.
type MapTemplate struct {
	Rows                  int                `yaml:"rows"`
	Cols                  int                `yaml:"cols"`
	Teams                 int                `yaml:"teams"`
	Flags                 int                `yaml:"flags"`
	Pieces                []PieceDescription `yaml:"pieces"`
	Blocks                int                `yaml:"blocks"`
	Placement             Placement          `yaml:"placement"`
	TotalTimeLimitSeconds int                `yaml:"total_time_limit_seconds"`
	MoveTimeLimitSeconds  int                `yaml:"move_time_limit_seconds"`
}

// PiecesPerTeam is the sum of all description counts
func (t *MapTemplate) PiecesPerTeam() int {
	n := 0
	for _, d := range t.Pieces {
		n += d.Count
	}
	return n
}

// HasTimeLimit reports whether either clock is bounded
func (t *MapTemplate) HasTimeLimit() bool {
	return t.TotalTimeLimitSeconds != Unlimited || t.MoveTimeLimitSeconds != Unlimited
}

// Validate checks the template and reports every problem found, not just the first
func (t *MapTemplate) Validate() error {
	var result *multierror.Error

	if t.Rows <= 0 || t.Cols <= 0 {
		result = multierror.Append(result, fmt.Errorf("grid must be at least 1x1, got %dx%d", t.Rows, t.Cols))
	}
	if t.Teams < 1 || t.Teams > MaxTeams {
		result = multierror.Append(result, fmt.Errorf("teams must be between 1 and %d, got %d", MaxTeams, t.Teams))
	}
	if t.Flags < 1 {
		result = multierror.Append(result, fmt.Errorf("flags must be positive, got %d", t.Flags))
	}
	if t.Blocks < 0 {
		result = multierror.Append(result, fmt.Errorf("blocks must be non-negative, got %d", t.Blocks))
	}
	if !t.Placement.IsValid() {
		result = multierror.Append(result, fmt.Errorf("unknown placement %q", t.Placement))
	}
	if err := validateTimeLimit("total_time_limit_seconds", t.TotalTimeLimitSeconds); err != nil {
		result = multierror.Append(result, err)
	}
	if err := validateTimeLimit("move_time_limit_seconds", t.MoveTimeLimitSeconds); err != nil {
		result = multierror.Append(result, err)
	}
	if len(t.Pieces) == 0 {
		result = multierror.Append(result, fmt.Errorf("at least one piece description is required"))
	}
	for i, d := range t.Pieces {
		if err := d.validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("pieces[%d] %q: %w", i, d.Type, err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	return nil
}

func validateTimeLimit(name string, v int) error {
	if v != Unlimited && v <= 0 {
		return fmt.Errorf("%s must be %d or positive, got %d", name, Unlimited, v)
	}
	return nil
}

func (d PieceDescription) validate() error {
	if d.Count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", d.Count)
	}
	if d.AttackPower < 0 {
		return fmt.Errorf("attack power must be non-negative, got %d", d.AttackPower)
	}
	hasDirs := d.Movement.Directions != nil
	switch {
	case hasDirs && d.Movement.Shape != "":
		return fmt.Errorf("movement has both directions and shape")
	case !hasDirs && d.Movement.Shape == "":
		return fmt.Errorf("movement needs directions or a shape")
	case !hasDirs && !d.Movement.IsLShape():
		return fmt.Errorf("unknown shape %q", d.Movement.Shape)
	}
	if hasDirs {
		for _, dir := range AllDirections {
			if d.Movement.Directions.Steps(dir) < 0 {
				return fmt.Errorf("%s steps must be non-negative", dir)
			}
		}
	}
	return nil
}
