// Package tui is the interactive proofreading screen: two editable panes
// showing the normalized documents with diff highlights.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"proofdiff/internal/config"
	"proofdiff/internal/ingest"
	"proofdiff/internal/render"
	"proofdiff/internal/scrollsync"
	"proofdiff/internal/session"
	"proofdiff/internal/textdiff"
	"proofdiff/internal/tui/state"
	"proofdiff/internal/tui/util"
	"proofdiff/internal/tui/widgets/helpoverlay"
	"proofdiff/internal/tui/widgets/pane"
	"proofdiff/internal/tui/widgets/statusbar"
)

// Options wire the screen to the document session.
type Options struct {
	Orchestrator *session.Orchestrator
	Ingester     *ingest.Ingester
	UI           config.UIConfig
	// Frame is how long the scroll-sync guard stays up after a mirrored
	// scroll.
	Frame time.Duration
	// Files are loaded into pane 1 and 2 on start.
	Files  []string
	Logger zerolog.Logger
}

// Run shows the screen until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	m := newModel(ctx, opts)
	popts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.UI.AltScreen {
		popts = append(popts, tea.WithAltScreen())
	}
	if opts.UI.Mouse {
		popts = append(popts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, popts...)
	_, err := p.Run()
	return err
}

// ===== Model =====

type model struct {
	ctx    context.Context
	orch   *session.Orchestrator
	ingest *ingest.Ingester
	log    zerolog.Logger
	files  []string
	frame  time.Duration

	ui      state.UIState
	panes   [2]*pane.Pane
	names   [2]string
	counts  [2]textdiff.Counts
	dirty   [2]bool
	loading [2]bool
	sync    *scrollsync.Synchronizer

	status   statusbar.Reporter
	bar      statusbar.StatusBar
	overlay  helpoverlay.HelpOverlay
	help     help.Model
	spin     spinner.Model
	spinning bool
	noColor  bool

	// dialogs; at most one is open
	prompt     *pathPrompt
	confirming bool
	alert      string

	// geometry of the two pane boxes, set by layout
	boxW, boxH [2]int

	quitting bool
}

func newModel(ctx context.Context, opts Options) *model {
	noColor := util.NoColor(opts.UI.NoColor)
	styles := render.DefaultStyles()
	if noColor {
		styles = render.MonoStyles()
	}
	frame := opts.Frame
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	minCol := opts.UI.MinColumn
	if minCol <= 0 {
		minCol = config.Default().UI.MinColumn
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &model{
		ctx:     ctx,
		orch:    opts.Orchestrator,
		ingest:  opts.Ingester,
		log:     opts.Logger.With().Str("component", "tui").Logger(),
		files:   opts.Files,
		frame:   frame,
		ui:      state.New(opts.UI.Wrap, opts.UI.SyncScroll, minCol),
		sync:    scrollsync.New(opts.UI.SyncScroll),
		bar:     statusbar.NewStatusBar(noColor),
		overlay: helpoverlay.NewHelpOverlay(),
		help:    help.New(),
		spin:    spin,
		noColor: noColor,
	}
	for i := range m.panes {
		m.panes[i] = pane.New(styles)
		m.panes[i].SetWrap(m.ui.Wrap)
	}
	m.status.Info("press o to open a document, or paste a file path")
	return m
}

func (m *model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for i, f := range m.files {
		if i > 1 {
			break
		}
		cmds = append(cmds, m.open(i+1, f))
	}
	return tea.Batch(cmds...)
}

func (m *model) focused() *pane.Pane { return m.panes[m.ui.Focus-1] }

func (m *model) busy() bool {
	return m.loading[0] || m.loading[1] || m.orch.Session().Comparing()
}

// withSpinner starts the spinner alongside cmd if it is not running yet.
func (m *model) withSpinner(cmd tea.Cmd) tea.Cmd {
	if m.spinning || !m.busy() {
		return cmd
	}
	m.spinning = true
	return tea.Batch(cmd, m.spin.Tick)
}

// refreshCursor shows the cursor only in the focused pane while editing.
func (m *model) refreshCursor() {
	for i, p := range m.panes {
		p.SetCursorVisible(m.ui.Mode == state.INSERT && m.ui.Focus == i+1)
	}
}

// layout sizes the panes for the terminal. Two lines are kept for the
// footer and status bar; each box spends two rows and columns on its
// border and one row on its header.
func (m *model) layout() {
	w, h := m.ui.Width, m.ui.Height
	bodyH := max(h-2, 8)
	if m.ui.Layout == state.SideBySide {
		m.boxW = [2]int{w / 2, w - w/2}
		m.boxH = [2]int{bodyH, bodyH}
	} else {
		m.boxW = [2]int{w, w}
		m.boxH = [2]int{bodyH / 2, bodyH - bodyH/2}
	}
	for i, p := range m.panes {
		p.SetSize(m.boxW[i]-2, m.boxH[i]-3)
	}
	m.help.Width = w
}

// paneAt returns the pane under screen cell (x, y).
func (m *model) paneAt(x, y int) int {
	if m.ui.Layout == state.SideBySide {
		if x < m.boxW[0] {
			return 1
		}
		return 2
	}
	if y < m.boxH[0] {
		return 1
	}
	return 2
}
