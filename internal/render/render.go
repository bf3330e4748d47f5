// Package render turns diff segments into styled runs. Runs are UI-agnostic;
// HTML and terminal output are thin adapters over them.
package render

import (
	"html"
	"strings"

	"proofdiff/internal/textdiff"
)

// Class is the presentation class of a run.
type Class string

const (
	ClassNone      Class = ""
	ClassEqual     Class = "highlight-equal"
	ClassMissing   Class = "highlight-missing"
	ClassAdded     Class = "highlight-added"
	ClassDifferent Class = "highlight-different"
)

// Run is a piece of displayed text with its class.
type Run struct {
	Text  string
	Class Class
}

// ClassFor maps a segment status to its class. Unknown or empty statuses
// fall back to ClassEqual.
func ClassFor(st textdiff.Status) Class {
	switch st {
	case textdiff.Delete:
		return ClassMissing
	case textdiff.Insert:
		return ClassAdded
	case textdiff.Replace:
		return ClassDifferent
	default:
		return ClassEqual
	}
}

// Runs converts segments to runs, one per non-empty segment, in order.
func Runs(segs []textdiff.Segment) []Run {
	out := make([]Run, 0, len(segs))
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		out = append(out, Run{Text: s.Text, Class: ClassFor(s.Status)})
	}
	return out
}

// Text concatenates the text of runs.
func Text(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// HTML renders runs as escaped spans. Runs without a class are written as
// bare escaped text.
func HTML(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		if r.Class == ClassNone {
			b.WriteString(html.EscapeString(r.Text))
			continue
		}
		b.WriteString(`<span class="`)
		b.WriteString(string(r.Class))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(r.Text))
		b.WriteString(`</span>`)
	}
	return b.String()
}
