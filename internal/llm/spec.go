package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"svgrad/grad"
)

// systemPrompt pins the model to the Specification JSON shape. The field
// names match grad's JSON tags exactly so the decoded result is
// interchangeable with parser output.
const systemPrompt = `You convert natural-language SVG gradient instructions to JSON:
{
  "steps": [
    {
      "targets": [{"selector": "css_selector", "description": "element description"}],
      "gradient": {
        "type": "linear|radial",
        "direction": "horizontal|vertical|diagonal",
        "stops": [
          {"offset": 0, "color": "#color1"},
          {"offset": 100, "color": "#color2"}
        ]
      }
    }
  ]
}
Selectors are "#id", ".class" or a bare tag name. Respond with JSON only.`

// Completer is the slice of Client the producer needs; tests substitute a
// canned implementation.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ProduceSpecification asks the model for a Specification and verifies the
// result conforms to the shapes the pipeline assumes. Any failure (transport,
// status, missing JSON, malformed shape) comes back as an error, and the
// caller treats it as "no specification available" and runs grad.Parse
// instead. The pipeline never depends on this path succeeding.
func ProduceSpecification(ctx context.Context, c Completer, instruction string) (grad.Specification, error) {
	var spec grad.Specification

	text, err := c.Complete(ctx, systemPrompt, instruction)
	if err != nil {
		return spec, err
	}

	payload, ok := extractJSON(text)
	if !ok {
		return spec, fmt.Errorf("no JSON object in model response")
	}
	if err := json.Unmarshal([]byte(payload), &spec); err != nil {
		return spec, fmt.Errorf("decode specification: %w", err)
	}
	canonicalize(&spec)
	if err := spec.Check(); err != nil {
		return spec, fmt.Errorf("specification rejected: %w", err)
	}
	return spec, nil
}

// canonicalize lower-cases the enum-like fields, since models are loose
// about capitalization even when the schema is explicit.
func canonicalize(spec *grad.Specification) {
	for i := range spec.Steps {
		g := &spec.Steps[i].Gradient
		g.Kind = grad.Kind(strings.ToLower(string(g.Kind)))
		g.Direction = grad.Direction(strings.ToLower(string(g.Direction)))
	}
}

// extractJSON cuts the first-to-last-brace span out of the response, since
// models tend to wrap the object in prose or code fences.
func extractJSON(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
