package grad

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// Report is the advisory outcome of Validate. Valid holds exactly when
// Errors is empty.
type Report struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

var (
	reRoot   = regexp.MustCompile(`^\s*<svg[^>]*>`)
	reURLRef = regexp.MustCompile(`url\(#([^)]+)\)`)

	selFill  = cascadia.MustCompile("[fill]")
	selStyle = cascadia.MustCompile("[style]")
	selID    = cascadia.MustCompile("[id]")
)

// Validate checks the patched document for a root element, a well-formed and
// well-placed definitions block, and that every gradient reference used as a
// fill resolves to a defined id. All checks run; none short-circuits. The
// document is never mutated and validation never fails; defects accumulate
// in the report.
//
// The reference check is one-sided: a defined-but-unused gradient passes,
// a referenced-but-undefined one is an error.
func Validate(document string) Report {
	var errs []string

	if !reRoot.MatchString(document) {
		errs = append(errs, "missing valid root element")
	}

	if ds := strings.Index(document, "<defs>"); ds >= 0 {
		de := strings.Index(document, "</defs>")
		if de <= ds {
			errs = append(errs, "definitions section improperly structured")
		} else if si := strings.Index(document, "<svg"); si >= 0 {
			if gt := strings.Index(document[si:], ">"); gt >= 0 && ds < si+gt {
				errs = append(errs, "definitions section must follow the root tag")
			}
		}
	}

	refs, ids := collectReferences(document)
	for _, ref := range refs {
		if !ids[ref] {
			errs = append(errs, fmt.Sprintf("gradient reference '%s' lacks corresponding definition", ref))
		}
	}

	return Report{Valid: len(errs) == 0, Errors: errs}
}

// collectReferences parses the document into nodes and walks them, matching
// the compiled attribute selectors against each element. References come from
// fill attributes and from fill declarations inside style attributes; ids
// come from any element.
func collectReferences(document string) (refs []string, ids map[string]bool) {
	ids = map[string]bool{}
	nodes, err := html.ParseFragment(strings.NewReader(document), &html.Node{Type: html.ElementNode})
	if err != nil {
		return nil, ids
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if selID.Match(n) {
				ids[nodeAttr(n, "id")] = true
			}
			if selFill.Match(n) {
				refs = append(refs, extractRefs(nodeAttr(n, "fill"))...)
			}
			if selStyle.Match(n) {
				refs = append(refs, styleFillRefs(nodeAttr(n, "style"))...)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return refs, ids
}

func extractRefs(value string) []string {
	var out []string
	for _, m := range reURLRef.FindAllStringSubmatch(value, -1) {
		out = append(out, m[1])
	}
	return out
}

// styleFillRefs pulls url(#...) references out of the fill declarations of an
// inline style attribute.
func styleFillRefs(style string) []string {
	if strings.TrimSpace(style) == "" {
		return nil
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return nil
	}
	var out []string
	for _, d := range decls {
		if d == nil {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(d.Property), "fill") {
			out = append(out, extractRefs(d.Value)...)
		}
	}
	return out
}

func nodeAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
