package tui

import (
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"proofdiff/internal/debounce"
	"proofdiff/internal/ingest"
	"proofdiff/internal/session"
	"proofdiff/internal/textdiff"
)

type loadedMsg struct {
	slot int
	name string
	out  ingest.Outcome
	err  error
}

type comparedMsg struct {
	pair session.Pair
	res  textdiff.Result
	err  error
}

// compareDueMsg fires when a debounce ticket's delay has elapsed.
type compareDueMsg struct{ ticket debounce.Ticket }

// frameMsg releases the scroll-sync guard one frame after a mirrored write.
type frameMsg struct{}

type copiedMsg struct {
	slot int
	err  error
}

type pastedMsg struct {
	text string
	err  error
}

func (m *model) loadCmd(slot int, path string) tea.Cmd {
	ctx, in := m.ctx, m.ingest
	return func() tea.Msg {
		out, err := in.Path(ctx, slot, path)
		return loadedMsg{slot: slot, name: filepath.Base(path), out: out, err: err}
	}
}

// compareCmd runs the comparator off the UI goroutine. Session state is
// only touched again when comparedMsg is handled.
func (m *model) compareCmd(p session.Pair) tea.Cmd {
	ctx, orch := m.ctx, m.orch
	return func() tea.Msg {
		res, err := orch.Run(ctx, p)
		return comparedMsg{pair: p, res: res, err: err}
	}
}

func scheduleCmd(s session.Schedule) tea.Cmd {
	if !s.OK {
		return nil
	}
	t := s.Ticket
	return tea.Tick(s.Delay, func(time.Time) tea.Msg { return compareDueMsg{ticket: t} })
}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return frameMsg{} })
}

func copyCmd(slot int, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{slot: slot, err: clipboard.WriteAll(text)}
	}
}

func pasteCmd() tea.Msg {
	s, err := clipboard.ReadAll()
	return pastedMsg{text: s, err: err}
}
