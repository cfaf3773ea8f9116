package grad

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// DefaultTag receives gradients whose target the parser could not resolve.
const DefaultTag = "rect"

// reFill anchors the rewrite inside a matched start tag. An element without
// a fill attribute is left alone; no fill attribute is ever inserted. Known
// limitation of the substitution rule.
var reFill = regexp.MustCompile(`fill\s*=\s*"[^"]*"`)

// tagSpan is one raw tag occurrence in the document: its parsed name and
// attributes plus the byte range of the original text. Rewrites splice new
// text into these ranges so every byte outside a matched tag survives
// untouched.
type tagSpan struct {
	name    string
	attrs   []html.Attribute
	start   int
	end     int
	closing bool
}

func (t tagSpan) attr(name string) (string, bool) {
	for _, a := range t.attrs {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// scanTags indexes every tag in the document with byte offsets. The
// tokenizer does no tree building, so malformed documents simply yield fewer
// spans instead of failing.
func scanTags(doc string) []tagSpan {
	z := html.NewTokenizer(strings.NewReader(doc))
	offset := 0
	var spans []tagSpan
	for {
		tt := z.Next()
		rawLen := len(z.Raw())
		switch tt {
		case html.ErrorToken:
			return spans
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			spans = append(spans, tagSpan{name: tok.Data, attrs: tok.Attr, start: offset, end: offset + rawLen})
		case html.EndTagToken:
			tok := z.Token()
			spans = append(spans, tagSpan{name: tok.Data, start: offset, end: offset + rawLen, closing: true})
		}
		offset += rawLen
	}
}

// matchesSelector applies the resolution rules: "#id" requires an exact id
// attribute value, ".class" requires the class attribute to contain the name,
// anything else is a tag name match.
func matchesSelector(sel string, t tagSpan) bool {
	switch {
	case strings.HasPrefix(sel, "#"):
		v, ok := t.attr("id")
		return ok && v == sel[1:]
	case strings.HasPrefix(sel, "."):
		v, ok := t.attr("class")
		return ok && strings.Contains(v, sel[1:])
	default:
		return t.name == strings.ToLower(sel)
	}
}

// Apply rewrites the document per the Specification and returns the result.
// Each step gets one generated id (grad1, grad2, ...) shared by all of its
// targets; the counter lives and dies with this call. After all elements are
// patched, the collected definitions replace any existing <defs> block
// wholesale, or are inserted right after the opening <svg> tag.
//
// An unmatched selector is silent here; the validator's reference check is
// where it becomes visible.
func Apply(document string, spec Specification) string {
	doc := document
	var defs []string
	for i, step := range spec.Steps {
		id := fmt.Sprintf("grad%d", i+1)
		defs = append(defs, Synthesize(id, step.Gradient))
		for _, tgt := range step.Targets {
			sel := tgt.Selector
			if sel == "" {
				sel = DefaultTag
			}
			doc = patchTarget(doc, sel, id)
		}
	}
	return placeDefs(doc, "<defs>"+strings.Join(defs, "")+"</defs>")
}

// patchTarget rewrites the fill attribute of every start tag matching the
// selector to reference the gradient, in one pass over the document.
func patchTarget(doc, sel, gradientID string) string {
	replacement := fmt.Sprintf(`fill="url(#%s)"`, gradientID)
	var b strings.Builder
	last := 0
	for _, t := range scanTags(doc) {
		if t.closing || !matchesSelector(sel, t) {
			continue
		}
		raw := doc[t.start:t.end]
		loc := reFill.FindStringIndex(raw)
		if loc == nil {
			continue
		}
		b.WriteString(doc[last : t.start+loc[0]])
		b.WriteString(replacement)
		last = t.start + loc[1]
	}
	if last == 0 {
		return doc
	}
	b.WriteString(doc[last:])
	return b.String()
}

// placeDefs swaps the whole existing definitions block for the new one, or
// inserts the new block after the root start tag. Old definitions are
// discarded, never merged: every run regenerates everything the current
// Specification references. With no existing block and no root tag there is
// no insertion point and the document is returned as patched so far.
func placeDefs(doc, block string) string {
	spans := scanTags(doc)
	openIdx := -1
	for i, t := range spans {
		if t.name == "defs" && !t.closing {
			openIdx = i
			break
		}
	}
	if openIdx >= 0 {
		for _, t := range spans[openIdx+1:] {
			if t.name == "defs" && t.closing {
				return doc[:spans[openIdx].start] + block + doc[t.end:]
			}
		}
		return doc
	}
	for _, t := range spans {
		if t.name == "svg" && !t.closing {
			return doc[:t.end] + block + doc[t.end:]
		}
	}
	return doc
}
