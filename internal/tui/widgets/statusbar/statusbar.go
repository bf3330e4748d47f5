package statusbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"proofdiff/internal/tui/state"
	"proofdiff/internal/tui/util"
)

// Severity of the current status message.
type Severity int

const (
	Info Severity = iota
	Success
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Message is the single line shown at the bottom of the screen. A new
// message replaces the previous one.
type Message struct {
	Severity Severity
	Text     string
}

// Reporter holds the current status message.
type Reporter struct {
	cur Message
}

func (r *Reporter) Info(text string)    { r.cur = Message{Info, text} }
func (r *Reporter) Success(text string) { r.cur = Message{Success, text} }
func (r *Reporter) Error(text string)   { r.cur = Message{Error, text} }
func (r *Reporter) Current() Message    { return r.cur }

type StatusBar struct {
	NoColor bool
}

func NewStatusBar(noColor bool) StatusBar { return StatusBar{NoColor: util.NoColor(noColor)} }

// View composes the status line: mode and toggles on the left, the
// message after them, truncated to width. busy is prefixed when non-empty
// (the spinner frame).
func (b StatusBar) View(s state.UIState, msg Message, busy string, width int) string {
	mode := "[CMD]"
	if s.Mode == state.INSERT {
		mode = "[INSERT]"
	}
	wrap := "Wrap: Off"
	if s.Wrap {
		wrap = "Wrap: On"
	}
	sync := "Sync: Off"
	if s.SyncScroll {
		sync = "Sync: On"
	}

	parts := []string{mode, wrap, sync}
	if s.Notice != "" && s.Notice != mode {
		parts = append(parts, s.Notice)
	}
	left := strings.Join(parts, "  ")

	text := msg.Text
	if busy != "" {
		text = busy + " " + text
	}
	if !b.NoColor && text != "" {
		text = severityStyle(msg.Severity).Render(text)
	}
	line := left
	if text != "" {
		line += "  " + text
	}
	if width > 0 {
		line = truncate.StringWithTail(line, uint(width), "…")
	}
	return line
}

func severityStyle(s Severity) lipgloss.Style {
	p := util.DefaultPalette()
	switch s {
	case Success:
		return lipgloss.NewStyle().Foreground(p.Added)
	case Error:
		return lipgloss.NewStyle().Foreground(p.Missing).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(p.Muted)
	}
}
