package grad

import (
	"fmt"
	"strings"

	"golang.org/x/image/colornames"
)

// coreColors carries the canonical name→hex mapping. Values follow the common
// web palette except green, which stays the full-brightness #00ff00 this tool
// has always produced. Extending the table is additive; removing or changing
// an entry is a compatibility break.
var coreColors = map[string]string{
	"red":     "#ff0000",
	"green":   "#00ff00",
	"blue":    "#0000ff",
	"white":   "#ffffff",
	"black":   "#000000",
	"yellow":  "#ffff00",
	"purple":  "#800080",
	"orange":  "#ffa500",
	"gray":    "#808080",
	"grey":    "#808080",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"lime":    "#00ff00",
	"maroon":  "#800000",
	"navy":    "#000080",
	"olive":   "#808000",
	"teal":    "#008080",
	"silver":  "#c0c0c0",
	"gold":    "#ffd700",
	"pink":    "#ffc0cb",
	"brown":   "#a52a2a",
}

// Normalize maps a case-insensitive color name to its canonical hex code.
// Names outside the core table fall back to the SVG 1.1 palette; anything
// still unrecognized (hex codes included) passes through unchanged, so
// Normalize is idempotent and never fails.
func Normalize(token string) string {
	lower := strings.ToLower(token)
	if hex, ok := coreColors[lower]; ok {
		return hex
	}
	if c, ok := colornames.Map[lower]; ok {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return token
}
