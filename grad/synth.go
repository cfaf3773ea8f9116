package grad

import (
	"fmt"
	"strings"
)

// Synthesize renders one gradient definition fragment under the given id.
// Stop colors are re-normalized even though Parse already did, since a
// Specification may be constructed directly by a caller.
//
// A gradient with fewer than two stops or an unknown kind is a programming
// error, not input the pipeline can degrade on, and panics.
func Synthesize(id string, g Gradient) string {
	if len(g.Stops) < 2 {
		panic(fmt.Sprintf("grad: gradient %q needs at least 2 stops, got %d", id, len(g.Stops)))
	}

	var b strings.Builder
	switch g.Kind {
	case Linear:
		x2, y2 := "100%", "0%"
		switch g.Direction {
		case Vertical:
			x2, y2 = "0%", "100%"
		case Diagonal:
			x2, y2 = "100%", "100%"
		}
		fmt.Fprintf(&b, `<linearGradient id="%s" x1="0%%" y1="0%%" x2="%s" y2="%s">`, id, x2, y2)
	case Radial:
		fmt.Fprintf(&b, `<radialGradient id="%s" cx="50%%" cy="50%%" r="50%%" fx="50%%" fy="50%%">`, id)
	default:
		panic(fmt.Sprintf("grad: unknown gradient kind %q", g.Kind))
	}

	for _, s := range g.Stops {
		fmt.Fprintf(&b, `<stop offset="%d%%" style="stop-color:%s;stop-opacity:1" />`, s.Offset, Normalize(s.Color))
	}

	if g.Kind == Linear {
		b.WriteString("</linearGradient>")
	} else {
		b.WriteString("</radialGradient>")
	}
	return b.String()
}
