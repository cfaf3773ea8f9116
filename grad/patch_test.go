package grad

import (
	"strings"
	"testing"
)

const demoSVG = `<svg width="300" height="300" xmlns="http://www.w3.org/2000/svg">
  <rect id="hero" x="50" y="50" width="200" height="100" fill="red"/>
  <circle cx="150" cy="200" r="40" fill="green"/>
  <rect x="20" y="20" width="50" height="50" fill="blue" class="small-box"/>
</svg>`

func oneStep(selector string, kind Kind) Specification {
	return Specification{Steps: []GradientStep{{
		Targets: []Target{{Selector: selector, Description: "test target"}},
		Gradient: Gradient{Kind: kind, Direction: Horizontal, Stops: []Stop{
			{Offset: 0, Color: "#ff0000"},
			{Offset: 100, Color: "#0000ff"},
		}},
	}}}
}

func TestApplyByID(t *testing.T) {
	t.Parallel()
	out := Apply(demoSVG, oneStep("#hero", Linear))
	if !strings.Contains(out, `<rect id="hero" x="50" y="50" width="200" height="100" fill="url(#grad1)"/>`) {
		t.Fatalf("hero rect not patched:\n%s", out)
	}
	if !strings.Contains(out, `fill="green"`) || !strings.Contains(out, `fill="blue"`) {
		t.Fatalf("untargeted elements were modified:\n%s", out)
	}
	if got := strings.Count(out, `url(#grad1)`); got != 1 {
		t.Fatalf("expected exactly 1 reference, found %d:\n%s", got, out)
	}
}

func TestApplyByTagPatchesAllMatches(t *testing.T) {
	t.Parallel()
	out := Apply(demoSVG, oneStep("rect", Linear))
	if got := strings.Count(out, `url(#grad1)`); got != 2 {
		t.Fatalf("expected both rects patched, found %d references:\n%s", got, out)
	}
	if !strings.Contains(out, `fill="green"`) {
		t.Fatalf("circle fill should be untouched:\n%s", out)
	}
}

func TestApplyByClass(t *testing.T) {
	t.Parallel()
	out := Apply(demoSVG, oneStep(".small-box", Linear))
	if !strings.Contains(out, `fill="url(#grad1)" class="small-box"`) {
		t.Fatalf("small-box rect not patched:\n%s", out)
	}
	if !strings.Contains(out, `fill="red"`) || !strings.Contains(out, `fill="green"`) {
		t.Fatalf("other elements were modified:\n%s", out)
	}
}

func TestApplyUnresolvedSelectorDefaultsToRect(t *testing.T) {
	t.Parallel()
	out := Apply(demoSVG, oneStep("", Linear))
	if got := strings.Count(out, `url(#grad1)`); got != 2 {
		t.Fatalf("expected default-tag patch of both rects, found %d:\n%s", got, out)
	}
}

func TestApplySharedIDAcrossTargets(t *testing.T) {
	t.Parallel()
	spec := Specification{Steps: []GradientStep{{
		Targets: []Target{{Selector: "#hero"}, {Selector: "circle"}},
		Gradient: Gradient{Kind: Radial, Stops: []Stop{{0, "red"}, {100, "white"}}},
	}}}
	out := Apply(demoSVG, spec)
	if got := strings.Count(out, `url(#grad1)`); got != 2 {
		t.Fatalf("targets of one step must share grad1, found %d references:\n%s", got, out)
	}
	if strings.Contains(out, "grad2") {
		t.Fatalf("single step must not advance the id counter:\n%s", out)
	}
}

func TestApplyCounterIncrementsPerStep(t *testing.T) {
	t.Parallel()
	spec := Specification{Steps: []GradientStep{
		oneStep("#hero", Linear).Steps[0],
		oneStep("circle", Radial).Steps[0],
	}}
	out := Apply(demoSVG, spec)
	if !strings.Contains(out, `url(#grad1)`) || !strings.Contains(out, `url(#grad2)`) {
		t.Fatalf("expected grad1 and grad2 references:\n%s", out)
	}
	if !strings.Contains(out, `<linearGradient id="grad1"`) || !strings.Contains(out, `<radialGradient id="grad2"`) {
		t.Fatalf("definitions missing per-step ids:\n%s", out)
	}
}

func TestApplyInsertsDefsAfterRootTag(t *testing.T) {
	t.Parallel()
	out := Apply(demoSVG, oneStep("#hero", Linear))
	rootEnd := strings.Index(out, ">") + 1
	if !strings.HasPrefix(out[rootEnd:], "<defs>") {
		t.Fatalf("defs block not placed directly after root tag:\n%s", out)
	}
	if strings.Count(out, "<defs>") != 1 || strings.Count(out, "</defs>") != 1 {
		t.Fatalf("expected exactly one defs block:\n%s", out)
	}
}

func TestApplyReplacesExistingDefsWholesale(t *testing.T) {
	t.Parallel()
	doc := `<svg width="10" height="10"><defs><linearGradient id="stale"><stop offset="0%" style="stop-color:#000000;stop-opacity:1" /></linearGradient></defs><rect id="hero" fill="black"/></svg>`
	out := Apply(doc, oneStep("#hero", Linear))
	if strings.Contains(out, "stale") {
		t.Fatalf("old definitions must be discarded, not merged:\n%s", out)
	}
	if strings.Count(out, "<defs>") != 1 {
		t.Fatalf("expected a single defs block:\n%s", out)
	}
	if !strings.Contains(out, `<linearGradient id="grad1"`) {
		t.Fatalf("new definition missing:\n%s", out)
	}
}

func TestApplySkipsElementsWithoutFill(t *testing.T) {
	t.Parallel()
	doc := `<svg><rect id="hero" x="1" y="1"/></svg>`
	out := Apply(doc, oneStep("#hero", Linear))
	if strings.Contains(out, "url(#grad1)") {
		t.Fatalf("element without fill must not be rewritten:\n%s", out)
	}
	// The definition still lands; the validator is where the dangling side
	// of this shows up, and an unused definition is not an error.
	if !strings.Contains(out, `<linearGradient id="grad1"`) {
		t.Fatalf("definition should still be emitted:\n%s", out)
	}
}

func TestApplyUnmatchedSelectorIsSilent(t *testing.T) {
	t.Parallel()
	out := Apply(demoSVG, oneStep("#nope", Linear))
	if strings.Contains(out, "url(#grad1)") {
		t.Fatalf("nothing should be patched for an unmatched selector:\n%s", out)
	}
	if !strings.Contains(out, `<defs><linearGradient id="grad1"`) {
		t.Fatalf("definition block should still be inserted:\n%s", out)
	}
}

func TestApplyEmptySpecInsertsEmptyDefs(t *testing.T) {
	t.Parallel()
	out := Apply(demoSVG, Specification{})
	if !strings.Contains(out, "<defs></defs>") {
		t.Fatalf("empty specification should yield an empty defs block:\n%s", out)
	}
}
