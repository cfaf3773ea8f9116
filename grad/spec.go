// Package grad turns natural-language gradient instructions into SVG patches.
//
// The pipeline is three deterministic stages: Parse resolves an instruction
// into a Specification, Apply rewrites a document to reference synthesized
// gradient definitions, and Validate reports structural defects in the result.
// All stages are pure text-in/text-out; nothing here touches network or disk.
package grad

import "fmt"

// Kind selects the gradient element emitted by the synthesizer.
type Kind string

const (
	Linear Kind = "linear"
	Radial Kind = "radial"
)

// Direction orients a linear gradient. Radial gradients record but ignore it.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
	Diagonal   Direction = "diagonal"
)

// Target names the elements a gradient applies to. Selector is one of
// "#id", ".class" or a bare tag name; an empty selector is unresolved and
// falls back to the patcher's default tag. Description is informational only.
type Target struct {
	Selector    string `json:"selector"`
	Description string `json:"description"`
}

// Stop anchors a color at a percentage offset within a gradient.
type Stop struct {
	Offset int    `json:"offset"`
	Color  string `json:"color"`
}

// Gradient describes one gradient definition before synthesis.
type Gradient struct {
	Kind      Kind      `json:"type"`
	Direction Direction `json:"direction"`
	Stops     []Stop    `json:"stops"`
}

// GradientStep pairs one gradient with the targets that share its id.
type GradientStep struct {
	Targets  []Target `json:"targets"`
	Gradient Gradient `json:"gradient"`
}

// Specification is the contract object between the parser (or an upstream
// producer) and the patcher. It is replaced wholesale on re-parse, never
// mutated in place.
type Specification struct {
	Steps []GradientStep `json:"steps"`
}

// Check verifies that an externally supplied Specification conforms to the
// shapes the patcher and synthesizer assume. The deterministic parser always
// produces conforming output; this guards specifications decoded from an
// upstream producer.
func (s Specification) Check() error {
	for i, step := range s.Steps {
		if len(step.Targets) == 0 {
			return fmt.Errorf("step %d: no targets", i+1)
		}
		g := step.Gradient
		if g.Kind != Linear && g.Kind != Radial {
			return fmt.Errorf("step %d: unknown gradient type %q", i+1, g.Kind)
		}
		if len(g.Stops) < 2 {
			return fmt.Errorf("step %d: gradient needs at least 2 stops, got %d", i+1, len(g.Stops))
		}
		for j, stop := range g.Stops {
			if stop.Offset < 0 || stop.Offset > 100 {
				return fmt.Errorf("step %d: stop %d offset %d out of range", i+1, j+1, stop.Offset)
			}
			if stop.Color == "" {
				return fmt.Errorf("step %d: stop %d has no color", i+1, j+1)
			}
		}
	}
	return nil
}
