// Package template reads and writes map templates as YAML documents.
package template

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
	"gopkg.in/yaml.v3"
)

// DefaultName is the name the default template is registered under
const DefaultName = "default"

// Default returns the built-in two-team template
func Default() core.MapTemplate {
	return core.MapTemplate{
		Rows:  10,
		Cols:  10,
		Teams: 2,
		Flags: 2,
		Pieces: []core.PieceDescription{
			{
				Type:        "Scout",
				AttackPower: 1,
				Count:       2,
				Movement: core.Movement{Directions: &core.Directions{
					Left: 3, Right: 3, Up: 3, Down: 1,
				}},
			},
			{
				Type:        "Guard",
				AttackPower: 3,
				Count:       2,
				Movement: core.Movement{Directions: &core.Directions{
					Left: 1, Right: 1, Up: 1, Down: 1,
					UpLeft: 1, UpRight: 1, DownLeft: 1, DownRight: 1,
				}},
			},
			{
				Type:        "Knight",
				AttackPower: 2,
				Count:       1,
				Movement:    core.Movement{Shape: core.ShapeLShape},
			},
		},
		Blocks:                6,
		Placement:             core.PlacementSymmetrical,
		TotalTimeLimitSeconds: core.Unlimited,
		MoveTimeLimitSeconds:  core.Unlimited,
	}
}

// Load reads and validates the template stored at path. The name DefaultName loads the
// built-in template.
func Load(path string) (core.MapTemplate, error) {
	if path == DefaultName {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return core.MapTemplate{}, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	tmpl, err := Parse(data)
	if err != nil {
		return core.MapTemplate{}, fmt.Errorf("template %s: %w", path, err)
	}
	return tmpl, nil
}

// Parse decodes a YAML template. Omitted time limits default to unlimited and an omitted
// placement to symmetrical; unknown keys are rejected.
func Parse(data []byte) (core.MapTemplate, error) {
	tmpl := core.MapTemplate{
		Placement:             core.PlacementSymmetrical,
		TotalTimeLimitSeconds: core.Unlimited,
		MoveTimeLimitSeconds:  core.Unlimited,
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tmpl); err != nil {
		if errors.Is(err, io.EOF) {
			return core.MapTemplate{}, fmt.Errorf("%w: empty document", core.ErrInvalidTemplate)
		}
		return core.MapTemplate{}, fmt.Errorf("%w: %w", core.ErrInvalidTemplate, err)
	}

	if err := tmpl.Validate(); err != nil {
		return core.MapTemplate{}, err
	}
	return tmpl, nil
}

// Marshal encodes tmpl in the format Parse reads
func Marshal(tmpl core.MapTemplate) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(tmpl); err != nil {
		return nil, fmt.Errorf("failed to encode template: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode template: %w", err)
	}
	return buf.Bytes(), nil
}
