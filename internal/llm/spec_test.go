package llm

import (
	"context"
	"fmt"
	"testing"

	"svgrad/grad"
)

type cannedCompleter struct {
	text string
	err  error
}

func (c cannedCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	return c.text, c.err
}

const validJSON = `{"steps":[{"targets":[{"selector":"#hero","description":"element with id 'hero'"}],` +
	`"gradient":{"type":"radial","direction":"horizontal","stops":[{"offset":0,"color":"#ff0000"},{"offset":100,"color":"#ffffff"}]}}]}`

func TestProduceSpecification(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		text    string
		err     error
		wantErr bool
	}{
		{"bare json", validJSON, nil, false},
		{"json wrapped in prose", "Here is the configuration:\n```json\n" + validJSON + "\n```\nDone.", nil, false},
		{"transport error", "", fmt.Errorf("connection refused"), true},
		{"no json at all", "cannot help with that", nil, true},
		{"malformed json", "{steps: oops}", nil, true},
		{"shape violation one stop", `{"steps":[{"targets":[{"selector":"#a"}],"gradient":{"type":"linear","stops":[{"offset":0,"color":"red"}]}}]}`, nil, true},
		{"shape violation no targets", `{"steps":[{"targets":[],"gradient":{"type":"linear","stops":[{"offset":0,"color":"red"},{"offset":100,"color":"blue"}]}}]}`, nil, true},
		{"shape violation offset range", `{"steps":[{"targets":[{"selector":"#a"}],"gradient":{"type":"linear","stops":[{"offset":0,"color":"red"},{"offset":150,"color":"blue"}]}}]}`, nil, true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			spec, err := ProduceSpecification(context.Background(), cannedCompleter{tc.text, tc.err}, "instruction")
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got spec %+v", spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(spec.Steps) != 1 || spec.Steps[0].Targets[0].Selector != "#hero" {
				t.Fatalf("unexpected spec: %+v", spec)
			}
			if spec.Steps[0].Gradient.Kind != grad.Radial {
				t.Fatalf("kind = %q, want radial", spec.Steps[0].Gradient.Kind)
			}
		})
	}
}

func TestProduceSpecificationCanonicalizesCase(t *testing.T) {
	t.Parallel()
	text := `{"steps":[{"targets":[{"selector":"circle"}],"gradient":{"type":"Linear","direction":"Diagonal",` +
		`"stops":[{"offset":0,"color":"#123456"},{"offset":100,"color":"#abcdef"}]}}]}`
	spec, err := ProduceSpecification(context.Background(), cannedCompleter{text: text}, "instruction")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g := spec.Steps[0].Gradient
	if g.Kind != grad.Linear || g.Direction != grad.Diagonal {
		t.Fatalf("canonicalization failed: %+v", g)
	}
}
