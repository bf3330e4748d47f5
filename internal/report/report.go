// Package report writes the result of a one-shot comparison as a standalone
// HTML page, highlighted terminal text, or marked plain text.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"proofdiff/internal/render"
	"proofdiff/internal/textdiff"
)

//go:embed templates/report.html.tmpl
var templates embed.FS

var pageTmpl = template.Must(template.ParseFS(templates, "templates/report.html.tmpl"))

// Side is one document of the report.
type Side struct {
	ID     string
	Name   string
	Runs   []render.Run
	Counts textdiff.Counts
	// Original is the loaded text with punctuation and line breaks kept,
	// highlighted like Runs. Empty when it could not be mapped.
	Original []render.Run
}

// HTML is the side's highlighted content. Runs are escaped by render.HTML.
func (s Side) HTML() template.HTML { return template.HTML(render.HTML(s.Runs)) } // #nosec G203

// OriginalHTML is Original rendered like HTML.
func (s Side) OriginalHTML() template.HTML { return template.HTML(render.HTML(s.Original)) } // #nosec G203

type Report struct {
	Title     string
	Engine    string
	Generated time.Time
	Sides     [2]Side
}

// New assembles a report for a comparison of name1 against name2.
func New(name1, name2, engine string, res textdiff.Result) Report {
	return Report{
		Title:     fmt.Sprintf("%s ↔ %s", name1, name2),
		Engine:    engine,
		Generated: time.Now(),
		Sides: [2]Side{
			{ID: "pane1", Name: name1, Runs: render.Runs(res.Left), Counts: textdiff.Count(res.Left)},
			{ID: "pane2", Name: name2, Runs: render.Runs(res.Right), Counts: textdiff.Count(res.Right)},
		},
	}
}

// WithOriginals highlights the original texts of both sides using the
// comparison of their normalized forms. A side whose original does not
// normalize to the compared text is left without one.
func (r Report) WithOriginals(res textdiff.Result, original1, original2 string) Report {
	for i, pair := range []struct {
		text string
		segs []textdiff.Segment
	}{{original1, res.Left}, {original2, res.Right}} {
		if segs, ok := textdiff.MapOriginal(pair.text, pair.segs); ok {
			r.Sides[i].Original = render.Runs(segs)
		}
	}
	return r
}

// WriteHTML renders the standalone page.
func (r Report) WriteHTML(w io.Writer) error {
	if err := pageTmpl.Execute(w, r); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}

// WriteANSI prints each side under a heading, highlighted with st and
// hard-wrapped at width cells (0 disables wrapping).
func (r Report) WriteANSI(w io.Writer, st render.Styles, width int) error {
	head := lipgloss.NewStyle().Bold(true)
	for i, s := range r.Sides {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		body := render.ANSI(s.Runs, st)
		if width > 0 {
			body = wrap.String(body, width)
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n%s\n", head.Render(s.Name), summary(s.Counts), body); err != nil {
			return err
		}
	}
	return nil
}

// WriteText prints each side with inline {-missing-} {+added+}
// {~different~} markers.
func (r Report) WriteText(w io.Writer) error {
	var b strings.Builder
	for i, s := range r.Sides {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "== %s  %s\n%s\n", s.Name, summary(s.Counts), render.Marked(s.Runs))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func summary(c textdiff.Counts) string {
	return fmt.Sprintf("(%d chars, +%d -%d ~%d)", c.Total(), c.Insert, c.Delete, c.Replace)
}
