package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"proofdiff/internal/failure"
	"proofdiff/internal/ingest"
	"proofdiff/internal/render"
	"proofdiff/internal/session"
	"proofdiff/internal/textdiff"
	"proofdiff/internal/tui/state"
)

// Update handles all TUI interactions.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui = state.Resize(m.ui, msg.Width, msg.Height)
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case loadedMsg:
		return m, m.onLoaded(msg)

	case comparedMsg:
		return m, m.onCompared(msg)

	case compareDueMsg:
		if !m.orch.Due(msg.ticket) {
			return m, nil
		}
		return m, m.startCompare(true)

	case frameMsg:
		m.sync.Release()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status.Error(fmt.Sprintf("copy failed: %v", msg.err))
		} else {
			m.status.Success(fmt.Sprintf("pane %d copied to clipboard", msg.slot))
		}
		return m, nil

	case pastedMsg:
		if msg.err != nil {
			m.status.Error(fmt.Sprintf("paste failed: %v", msg.err))
			return m, nil
		}
		return m, m.insert([]rune(msg.text))

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.ForceQuit) {
		m.quitting = true
		return tea.Quit
	}

	switch {
	case m.alert != "":
		if key.Matches(msg, keys.Dismiss) {
			m.alert = ""
		}
		return nil
	case m.confirming:
		switch {
		case key.Matches(msg, keys.Yes):
			m.confirming = false
			m.clear()
		case key.Matches(msg, keys.No):
			m.confirming = false
			m.status.Info("clear cancelled")
		}
		return nil
	case m.prompt != nil:
		return m.promptKey(msg)
	case m.ui.ShowHelp:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return tea.Quit
		case key.Matches(msg, keys.Help, keys.Normal):
			m.ui = state.ToggleHelp(m.ui)
		}
		return nil
	}

	if m.ui.Mode == state.INSERT {
		return m.insertKey(msg)
	}
	if msg.Paste {
		return m.dropped(string(msg.Runes))
	}
	return m.cmdKey(msg)
}

// cmdKey handles CMD mode: navigation and actions, no text changes.
func (m *model) cmdKey(msg tea.KeyMsg) tea.Cmd {
	p := m.focused()
	top, left := p.ScrollTop(), p.ScrollLeft()
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, keys.Help):
		m.ui = state.ToggleHelp(m.ui)
	case key.Matches(msg, keys.Focus):
		m.ui = state.FocusNext(m.ui)
	case key.Matches(msg, keys.Pane1):
		m.ui = state.FocusSlot(m.ui, 1)
	case key.Matches(msg, keys.Pane2):
		m.ui = state.FocusSlot(m.ui, 2)
	case key.Matches(msg, keys.Insert):
		m.ui = state.EnterInsert(m.ui)
		m.refreshCursor()
	case key.Matches(msg, keys.Open):
		m.prompt = newPathPrompt(m.ui.Focus)
	case key.Matches(msg, keys.Compare):
		cmd = m.startCompare(false)
	case key.Matches(msg, keys.Clear):
		if m.orch.Session().Loaded(1) || m.orch.Session().Loaded(2) || m.panes[0].Len() > 0 || m.panes[1].Len() > 0 {
			m.confirming = true
		} else {
			m.status.Info("nothing to clear")
		}
	case key.Matches(msg, keys.Wrap):
		m.ui = state.ToggleWrap(m.ui)
		for _, pp := range m.panes {
			pp.SetWrap(m.ui.Wrap)
		}
	case key.Matches(msg, keys.Sync):
		m.ui = state.ToggleSyncScroll(m.ui)
		m.sync.SetEnabled(m.ui.SyncScroll)
	case key.Matches(msg, keys.Copy):
		cmd = copyCmd(m.ui.Focus, p.Text())
	case key.Matches(msg, keys.Down):
		p.ScrollBy(1)
	case key.Matches(msg, keys.Up):
		p.ScrollBy(-1)
	case key.Matches(msg, keys.PageDown):
		p.PageBy(1)
	case key.Matches(msg, keys.PageUp):
		p.PageBy(-1)
	case key.Matches(msg, keys.Home):
		p.ScrollHome()
	case key.Matches(msg, keys.End):
		p.ScrollEnd()
	case key.Matches(msg, keys.Left):
		p.ScrollColumns(-4)
	case key.Matches(msg, keys.Right):
		p.ScrollColumns(4)
	}

	if p.ScrollTop() != top || p.ScrollLeft() != left {
		return tea.Batch(cmd, m.scrolled(m.ui.Focus))
	}
	return cmd
}

// insertKey edits the focused pane.
func (m *model) insertKey(msg tea.KeyMsg) tea.Cmd {
	p := m.focused()
	top, left := p.ScrollTop(), p.ScrollLeft()
	changed := false

	switch msg.Type {
	case tea.KeyEsc:
		m.ui = state.EnterCmd(m.ui)
		m.refreshCursor()
		return nil
	case tea.KeyCtrlV:
		return pasteCmd
	case tea.KeyTab:
		m.ui = state.FocusNext(m.ui)
		m.refreshCursor()
		return nil
	case tea.KeyRunes:
		return m.insert(msg.Runes)
	case tea.KeySpace:
		return m.insert([]rune{' '})
	case tea.KeyEnter:
		return m.insert([]rune{'\n'})
	case tea.KeyBackspace, tea.KeyCtrlH:
		changed = p.Backspace()
	case tea.KeyDelete:
		changed = p.Delete()
	case tea.KeyLeft:
		p.MoveLeft()
	case tea.KeyRight:
		p.MoveRight()
	case tea.KeyUp:
		p.MoveUp()
	case tea.KeyDown:
		p.MoveDown()
	case tea.KeyHome:
		p.LineStart()
	case tea.KeyEnd:
		p.LineEnd()
	case tea.KeyPgUp:
		p.PageBy(-1)
	case tea.KeyPgDown:
		p.PageBy(1)
	}

	var cmds []tea.Cmd
	if changed {
		cmds = append(cmds, m.edited(m.ui.Focus))
	}
	if p.ScrollTop() != top || p.ScrollLeft() != left {
		cmds = append(cmds, m.scrolled(m.ui.Focus))
	}
	return tea.Batch(cmds...)
}

// insert types rs into the focused pane.
func (m *model) insert(rs []rune) tea.Cmd {
	p := m.focused()
	top, left := p.ScrollTop(), p.ScrollLeft()
	if !p.Insert(rs) {
		return nil
	}
	cmds := []tea.Cmd{m.edited(m.ui.Focus)}
	if p.ScrollTop() != top || p.ScrollLeft() != left {
		cmds = append(cmds, m.scrolled(m.ui.Focus))
	}
	return tea.Batch(cmds...)
}

// edited syncs pane i into its slot and (re)schedules the comparison.
func (m *model) edited(i int) tea.Cmd {
	m.dirty[i-1] = true
	return scheduleCmd(m.orch.Edited(i, m.panes[i-1].Text()))
}

// scrolled mirrors pane i's position onto the other pane.
func (m *model) scrolled(i int) tea.Cmd {
	other := 2
	if i == 2 {
		other = 1
	}
	if !m.sync.Sync(m.panes[i-1], m.panes[other-1]) {
		return nil
	}
	return frameCmd(m.frame)
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || m.alert != "" || m.confirming || m.prompt != nil {
		return nil
	}
	i := m.paneAt(msg.X, msg.Y)
	p := m.panes[i-1]
	top, left := p.ScrollTop(), p.ScrollLeft()
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.ScrollBy(-3)
	case tea.MouseButtonWheelDown:
		p.ScrollBy(3)
	case tea.MouseButtonWheelLeft:
		p.ScrollColumns(-4)
	case tea.MouseButtonWheelRight:
		p.ScrollColumns(4)
	case tea.MouseButtonLeft:
		m.ui = state.FocusSlot(m.ui, i)
		m.refreshCursor()
		return nil
	default:
		return nil
	}
	if p.ScrollTop() != top || p.ScrollLeft() != left {
		return m.scrolled(i)
	}
	return nil
}

// dropped opens a path pasted into the terminal (how terminals deliver a
// file dragged onto them) in the focused pane.
func (m *model) dropped(text string) tea.Cmd {
	path, err := ingest.DroppedPath(text)
	if err != nil {
		m.fail(err)
		return nil
	}
	return m.open(m.ui.Focus, path)
}

// open starts loading path into slot. Unsupported extensions fail here
// without touching the slot.
func (m *model) open(slot int, path string) tea.Cmd {
	path = expandPath(path)
	if err := ingest.CheckExtension(path); err != nil {
		m.fail(err)
		return nil
	}
	m.loading[slot-1] = true
	m.status.Info(fmt.Sprintf("loading %s…", filepath.Base(path)))
	return m.withSpinner(m.loadCmd(slot, path))
}

func (m *model) onLoaded(msg loadedMsg) tea.Cmd {
	m.loading[msg.slot-1] = false
	if msg.err != nil {
		m.fail(msg.err)
		return nil
	}
	sched, err := m.orch.Loaded(msg.slot, session.Slot{
		SourceName:     msg.out.SourceName,
		OriginalText:   msg.out.OriginalText,
		NormalizedText: msg.out.NormalizedText,
	})
	if err != nil {
		m.fail(err)
		return nil
	}
	i := msg.slot - 1
	m.panes[i].SetText(msg.out.NormalizedText)
	m.names[i] = msg.out.SourceName
	m.counts[i] = textdiff.Counts{}
	m.dirty[i] = false
	m.status.Success(fmt.Sprintf("loaded %s into pane %d (%d chars)", msg.name, msg.slot, utf8.RuneCountInString(msg.out.NormalizedText)))
	return scheduleCmd(sched)
}

// startCompare runs a comparison of the live pane texts. auto is set when
// the debouncer fired it; a busy comparator is then not reported.
func (m *model) startCompare(auto bool) tea.Cmd {
	pair, err := m.orch.Start(m.panes[0].Text(), m.panes[1].Text())
	if errors.Is(err, session.ErrBusy) {
		if !auto {
			m.status.Info("a comparison is already running")
		}
		return nil
	}
	if err != nil {
		m.fail(err)
		return nil
	}
	m.status.Info("comparing…")
	return m.withSpinner(m.compareCmd(pair))
}

func (m *model) onCompared(msg comparedMsg) tea.Cmd {
	m.orch.Finish()
	if msg.err != nil {
		m.fail(msg.err)
		if !m.orch.Session().BothLoaded() {
			return nil
		}
		sched, _ := m.resync(msg.pair)
		return scheduleCmd(sched)
	}
	if !m.orch.Session().BothLoaded() {
		// cleared while comparing
		return nil
	}

	// A pane edited while the comparison ran would lose those edits if the
	// result were rendered; sync it and compare again instead.
	if sched, stale := m.resync(msg.pair); stale {
		m.log.Debug().Msg("discarding stale comparison")
		m.status.Info("text changed during comparison, comparing again")
		return scheduleCmd(sched)
	}

	m.panes[0].SetRuns(render.Runs(msg.res.Left))
	m.panes[1].SetRuns(render.Runs(msg.res.Right))
	m.counts[0] = textdiff.Count(msg.res.Left)
	m.counts[1] = textdiff.Count(msg.res.Right)
	m.dirty = [2]bool{}
	if m.counts[0].Changed() == 0 && m.counts[1].Changed() == 0 {
		m.status.Success("comparison complete: documents match")
		return nil
	}
	m.status.Success(fmt.Sprintf("comparison complete: %d missing, %d added, %d different",
		m.counts[0].Delete, m.counts[1].Insert, m.counts[0].Replace))
	return nil
}

// resync pushes pane text that drifted from pair into the session and
// schedules a new comparison for it.
func (m *model) resync(pair session.Pair) (session.Schedule, bool) {
	var sched session.Schedule
	stale := false
	for i := 1; i <= 2; i++ {
		if live := m.panes[i-1].Text(); live != pair.Live(i) {
			stale = true
			sched = m.orch.Edited(i, live)
		}
	}
	return sched, stale
}

func (m *model) clear() {
	m.orch.Reset()
	for i, p := range m.panes {
		p.SetText("")
		m.names[i] = ""
		m.counts[i] = textdiff.Counts{}
		m.dirty[i] = false
	}
	m.status.Info("cleared both documents")
}

// fail reports err on the status line; failures that need acknowledgment
// also open the alert.
func (m *model) fail(err error) {
	text := failure.Message(err)
	kind := failure.KindOf(err)
	m.log.Warn().Err(err).Str("kind", kind.String()).Msg("operation failed")
	m.status.Error(text)
	if kind.NeedsAck() {
		m.alert = text
	}
}
