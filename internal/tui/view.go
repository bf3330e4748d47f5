package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"proofdiff/internal/tui/state"
	"proofdiff/internal/tui/util"
	"proofdiff/internal/tui/widgets/tagchips"
)

// ===== Views =====

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
	alertStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Bold(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(util.DefaultPalette().Border)
	focusStyle = boxStyle.BorderForeground(util.DefaultPalette().Focus)
)

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	if m.ui.Width == 0 {
		return "starting…"
	}
	if m.ui.ShowHelp {
		return m.overlay.View(m.ui)
	}

	var body string
	if m.ui.Layout == state.SideBySide {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.viewPane(1), m.viewPane(2))
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, m.viewPane(1), m.viewPane(2))
	}

	busy := ""
	if m.busy() {
		busy = m.spin.View()
	}
	status := m.bar.View(m.ui, m.status.Current(), busy, m.ui.Width)
	return body + "\n" + m.footer() + "\n" + status
}

func (m *model) viewPane(i int) string {
	p := m.panes[i-1]
	w, _ := p.Size()
	header := fitWidth(m.header(i), w)
	style := boxStyle
	if m.ui.Focus == i {
		style = focusStyle
	}
	return style.Render(header + "\n" + p.View())
}

func (m *model) header(i int) string {
	name := m.names[i-1]
	switch {
	case m.loading[i-1]:
		name = "loading…"
	case name == "":
		name = faintStyle.Render("empty: o to open")
	}
	title := titleStyle.Render(fmt.Sprintf("%d %s", i, name))
	if m.ui.Focus == i && m.ui.Mode == state.INSERT {
		title += " [INSERT]"
	}
	p := m.panes[i-1]
	chips := tagchips.View(util.ComputeTags(m.counts[i-1], p.Text(), m.dirty[i-1]), m.noColor)
	return title + "  " + chips
}

// footer is the dialog line when one is open, else the key help.
func (m *model) footer() string {
	var line string
	switch {
	case m.alert != "":
		line = alertStyle.Render("! "+m.alert) + faintStyle.Render("  (enter to dismiss)")
	case m.confirming:
		line = alertStyle.Render("Clear both documents?") + " (y/n)"
	case m.prompt != nil:
		line = fmt.Sprintf("Open into pane %d: %s", m.prompt.slot, m.prompt.buf)
		if len(m.prompt.suggest) > 0 {
			line += faintStyle.Render("  tab: " + strings.Join(m.prompt.suggest, " · "))
		}
	default:
		line = m.help.ShortHelpView(keys.short(m.ui.Mode))
	}
	return fitWidth(line, m.ui.Width)
}

// fitWidth truncates or pads s to exactly w cells.
func fitWidth(s string, w int) string {
	if w <= 0 {
		return s
	}
	s = truncate.StringWithTail(s, uint(w), "…")
	if n := lipgloss.Width(s); n < w {
		s += strings.Repeat(" ", w-n)
	}
	return s
}
