package grad

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/image/colornames"
)

// Result carries a parsed Specification together with notes describing every
// point where the parser fell back to a documented default. An empty Notes
// slice means the instruction was fully recognized.
type Result struct {
	Spec  Specification
	Notes []string
}

var (
	// Compound instructions split on commas and the connector words.
	reSplit = regexp.MustCompile(`(?i)\s*,\s*|\s+(?:and|then)\s+`)

	reTargetID    = regexp.MustCompile("(?i)\\bid\\s*[`'\"]?(\\w+)")
	reTargetClass = regexp.MustCompile("(?i)\\bclass\\s*[`'\"]?([\\w-]+)")
	reAllCircles  = regexp.MustCompile(`(?i)\ball circles?\b`)
	reAllRects    = regexp.MustCompile(`(?i)\ball rectangles?\b`)
	reCircle      = regexp.MustCompile(`(?i)\bcircle\b`)
	reRect        = regexp.MustCompile(`(?i)\b(?:rect|rectangle)\b`)

	reColor = buildColorPattern()
)

func buildColorPattern() *regexp.Regexp {
	seen := map[string]bool{}
	names := make([]string, 0, len(coreColors)+len(colornames.Names))
	for name := range coreColors {
		seen[name] = true
		names = append(names, name)
	}
	for _, name := range colornames.Names {
		if !seen[name] {
			names = append(names, name)
		}
	}
	// Longer names first so "indianred" never half-matches as "red".
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return regexp.MustCompile(`(?i)(#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{3})|\b(?:` + strings.Join(names, "|") + `)\b)`)
}

// Parse resolves a natural-language instruction into a Specification. It
// never fails: each ambiguity degrades to a default (unresolved target,
// red-to-blue stops, linear kind, horizontal direction) and is recorded in
// Result.Notes so callers can tell a confident parse from a defaulted one.
func Parse(instruction string) Result {
	var res Result
	for _, raw := range reSplit.Split(instruction, -1) {
		cmd := strings.TrimSpace(raw)
		if cmd == "" {
			continue
		}
		sel, desc := identifyTarget(cmd)
		if sel == "" {
			res.Notes = append(res.Notes, fmt.Sprintf("command %q: no target recognized, will default to tag %q", cmd, DefaultTag))
		}

		lower := strings.ToLower(cmd)
		kind := Linear
		if strings.Contains(lower, "radial") {
			kind = Radial
		}
		dir := Horizontal
		switch {
		case strings.Contains(lower, "vertical"):
			dir = Vertical
		case strings.Contains(lower, "diagonal"):
			dir = Diagonal
		}

		colors := extractColors(cmd)
		if len(colors) < 2 {
			res.Notes = append(res.Notes, fmt.Sprintf("command %q: fewer than two colors, using red to blue", cmd))
			colors = []string{"#ff0000", "#0000ff"}
		}

		res.Spec.Steps = append(res.Spec.Steps, GradientStep{
			Targets: []Target{{Selector: sel, Description: desc}},
			Gradient: Gradient{
				Kind:      kind,
				Direction: dir,
				Stops: []Stop{
					{Offset: 0, Color: colors[0]},
					{Offset: 100, Color: colors[1]},
				},
			},
		})
	}
	return res
}

// identifyTarget resolves the selector for one command. Explicit id and class
// references outrank shape keywords so "the circle with id 'hero'" targets
// #hero, not every circle. An empty selector means unresolved.
func identifyTarget(cmd string) (selector, description string) {
	if m := reTargetID.FindStringSubmatch(cmd); m != nil {
		return "#" + m[1], fmt.Sprintf("element with id '%s'", m[1])
	}
	if m := reTargetClass.FindStringSubmatch(cmd); m != nil {
		return "." + m[1], fmt.Sprintf("element with class '%s'", m[1])
	}
	switch {
	case reAllCircles.MatchString(cmd):
		return "circle", "all circles"
	case reAllRects.MatchString(cmd):
		return "rect", "all rectangles"
	case reCircle.MatchString(cmd):
		return "circle", "circle"
	case reRect.MatchString(cmd):
		return "rect", "rectangle"
	}
	return "", "element"
}

func extractColors(cmd string) []string {
	matches := reColor.FindAllString(cmd, -1)
	colors := make([]string, 0, len(matches))
	for _, m := range matches {
		colors = append(colors, Normalize(m))
	}
	return colors
}
