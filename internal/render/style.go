package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles maps run classes to terminal styles.
type Styles struct {
	Equal     lipgloss.Style
	Missing   lipgloss.Style
	Added     lipgloss.Style
	Different lipgloss.Style
	Plain     lipgloss.Style
}

var (
	missingColor   = lipgloss.AdaptiveColor{Light: "160", Dark: "203"}
	addedColor     = lipgloss.AdaptiveColor{Light: "28", Dark: "114"}
	differentColor = lipgloss.AdaptiveColor{Light: "130", Dark: "221"}
)

// DefaultStyles returns colored styles: missing red, added green, different
// amber, equal unstyled.
func DefaultStyles() Styles {
	return Styles{
		Equal:     lipgloss.NewStyle(),
		Missing:   lipgloss.NewStyle().Foreground(missingColor).Underline(true),
		Added:     lipgloss.NewStyle().Foreground(addedColor).Underline(true),
		Different: lipgloss.NewStyle().Foreground(differentColor).Bold(true),
		Plain:     lipgloss.NewStyle(),
	}
}

// MonoStyles distinguishes classes with attributes only, for NO_COLOR.
func MonoStyles() Styles {
	return Styles{
		Equal:     lipgloss.NewStyle(),
		Missing:   lipgloss.NewStyle().Strikethrough(true),
		Added:     lipgloss.NewStyle().Underline(true),
		Different: lipgloss.NewStyle().Reverse(true),
		Plain:     lipgloss.NewStyle(),
	}
}

// For returns the style of a class.
func (s Styles) For(c Class) lipgloss.Style {
	switch c {
	case ClassMissing:
		return s.Missing
	case ClassAdded:
		return s.Added
	case ClassDifferent:
		return s.Different
	case ClassEqual:
		return s.Equal
	default:
		return s.Plain
	}
}

// ANSI renders runs with terminal styles.
func ANSI(runs []Run, st Styles) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(st.For(r.Class).Render(r.Text))
	}
	return b.String()
}

// Marked renders runs as plain text with inline markers:
// {-missing-}, {+added+}, {~different~}.
func Marked(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		switch r.Class {
		case ClassMissing:
			b.WriteString("{-" + r.Text + "-}")
		case ClassAdded:
			b.WriteString("{+" + r.Text + "+}")
		case ClassDifferent:
			b.WriteString("{~" + r.Text + "~}")
		default:
			b.WriteString(r.Text)
		}
	}
	return b.String()
}
