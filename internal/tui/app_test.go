package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofdiff/internal/backend"
	"proofdiff/internal/config"
	"proofdiff/internal/debounce"
	"proofdiff/internal/document"
	"proofdiff/internal/failure"
	"proofdiff/internal/ingest"
	"proofdiff/internal/render"
	"proofdiff/internal/session"
	"proofdiff/internal/tui/state"
	"proofdiff/internal/tui/widgets/statusbar"
)

type countingBackend struct {
	backend.Backend
	compares int
	err      error
}

func (c *countingBackend) Compare(ctx context.Context, req backend.CompareRequest) (*backend.CompareResponse, error) {
	c.compares++
	if c.err != nil {
		return nil, c.err
	}
	return c.Backend.Compare(ctx, req)
}

func newTestModel(t *testing.T, width, height int) (*model, *countingBackend) {
	t.Helper()
	be := &countingBackend{Backend: backend.NewLocal(nil, document.Decoder{}, zerolog.Nop())}
	orch := session.NewOrchestrator(session.New(), be, debounce.New(time.Millisecond), 0, zerolog.Nop())
	ui := config.Default().UI
	ui.NoColor = true
	m := newModel(context.Background(), Options{
		Orchestrator: orch,
		Ingester:     ingest.New(be, zerolog.Nop()),
		UI:           ui,
		Frame:        time.Millisecond,
		Logger:       zerolog.Nop(),
	})
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m, be
}

// drain runs cmd and feeds the model's own messages back into Update until
// no commands remain. Spinner ticks and other foreign messages are dropped.
func drain(t *testing.T, m *model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 200, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case loadedMsg, comparedMsg, compareDueMsg, frameMsg:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func press(m *model, s string) tea.Cmd {
	var msg tea.KeyMsg
	switch s {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func loadBoth(t *testing.T, m *model, text1, text2 string) {
	t.Helper()
	drain(t, m, m.open(1, writeFile(t, "a.txt", text1)))
	drain(t, m, m.open(2, writeFile(t, "b.txt", text2)))
}

func TestLoadBothComparesOnce(t *testing.T) {
	m, be := newTestModel(t, 100, 30)
	loadBoth(t, m, "hello world!", "hello, wurld")

	assert.Equal(t, 1, be.compares)
	assert.Equal(t, "helloworld", m.panes[0].Text())
	assert.Equal(t, "hellowurld", m.panes[1].Text())
	assert.Equal(t, 1, m.counts[0].Replace)
	assert.Equal(t, []render.Run{
		{Text: "hellow", Class: render.ClassEqual},
		{Text: "u", Class: render.ClassDifferent},
		{Text: "rld", Class: render.ClassEqual},
	}, m.panes[1].Runs())
	assert.Equal(t, statusbar.Success, m.status.Current().Severity)
	assert.False(t, m.busy())
	assert.Equal(t, "a.txt", m.names[0])
}

func TestEditsCoalesceIntoOneCompare(t *testing.T) {
	m, be := newTestModel(t, 100, 30)
	loadBoth(t, m, "helloworld", "hellowurld")
	require.Equal(t, 1, be.compares)

	press(m, "i")
	require.Equal(t, state.INSERT, m.ui.Mode)
	var cmds []tea.Cmd
	for _, r := range []string{"X", "Y", "Z"} {
		cmds = append(cmds, press(m, r))
	}
	for _, c := range cmds {
		drain(t, m, c)
	}

	assert.Equal(t, 2, be.compares)
	slot, _ := m.orch.Session().Slot(1)
	assert.Equal(t, "XYZhelloworld", slot.NormalizedText)
	assert.False(t, m.dirty[0], "edited chip cleared by the new render")
}

func TestStaleResultIsNotRendered(t *testing.T) {
	m, be := newTestModel(t, 100, 30)
	loadBoth(t, m, "helloworld", "hellowurld")

	inflight := press(m, "c")
	require.True(t, m.orch.Session().Comparing())

	press(m, "i")
	assert.Nil(t, press(m, "Q"), "edits during a comparison schedule nothing")
	assert.Equal(t, "Qhelloworld", m.panes[0].Text())

	drain(t, m, inflight)
	assert.Equal(t, 3, be.compares, "stale result replaced by a fresh comparison")
	assert.Equal(t, "Qhelloworld", m.panes[0].Text())
	assert.Equal(t, render.ClassMissing, m.panes[0].Runs()[0].Class)
	assert.False(t, m.orch.Session().Comparing())
}

func TestFailedCompareKeepsEditsMadeMeanwhile(t *testing.T) {
	m, be := newTestModel(t, 100, 30)
	loadBoth(t, m, "helloworld", "hellowurld")
	be.err = failure.New(failure.TransportFailure, "backend unreachable")

	inflight := press(m, "c")
	press(m, "i")
	press(m, "Q")
	drain(t, m, inflight)

	assert.Equal(t, 3, be.compares, "edits made during the failed comparison are compared again")
	slot, _ := m.orch.Session().Slot(1)
	assert.Equal(t, "Qhelloworld", slot.NormalizedText)
	assert.Equal(t, "backend unreachable", m.alert)
	assert.False(t, m.orch.Session().Comparing())
}

func TestIdenticalDocumentsReportMatch(t *testing.T) {
	m, _ := newTestModel(t, 100, 30)
	loadBoth(t, m, "same text.", "same, text")

	assert.Equal(t, statusbar.Success, m.status.Current().Severity)
	assert.Contains(t, m.status.Current().Text, "documents match")
}

func TestClearNeedsConfirmation(t *testing.T) {
	m, _ := newTestModel(t, 100, 30)
	loadBoth(t, m, "abc", "abd")

	press(m, "x")
	require.True(t, m.confirming)
	press(m, "n")
	assert.False(t, m.confirming)
	assert.True(t, m.orch.Session().BothLoaded())
	assert.Equal(t, "abc", m.panes[0].Text())

	press(m, "x")
	press(m, "y")
	assert.False(t, m.orch.Session().Loaded(1))
	assert.False(t, m.orch.Session().Loaded(2))
	assert.Equal(t, "", m.panes[0].Text())
	assert.Equal(t, "", m.names[1])
}

func TestDroppedUnsupportedFileChangesNothing(t *testing.T) {
	m, be := newTestModel(t, 100, 30)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("'/tmp/my notes.pdf'"), Paste: true})

	assert.Nil(t, cmd)
	assert.Equal(t, statusbar.Error, m.status.Current().Severity)
	assert.Contains(t, m.status.Current().Text, ".pdf")
	assert.Empty(t, m.alert, "format errors are status-only")
	assert.False(t, m.orch.Session().Loaded(1))
	assert.False(t, m.loading[0])
	assert.Equal(t, 0, be.compares)
}

func TestDroppedFileLoadsIntoFocusedPane(t *testing.T) {
	m, _ := newTestModel(t, 100, 30)
	p := writeFile(t, "dropped.txt", "drag and drop")
	press(m, "2")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("file://" + p), Paste: true})
	drain(t, m, cmd)

	assert.True(t, m.orch.Session().Loaded(2))
	assert.Equal(t, "draganddrop", m.panes[1].Text())
	assert.False(t, m.orch.Session().Loaded(1))
}

func TestCompareWithoutDocumentsNeedsAck(t *testing.T) {
	m, be := newTestModel(t, 100, 30)
	assert.Nil(t, press(m, "c"))
	assert.NotEmpty(t, m.alert)
	assert.Equal(t, statusbar.Error, m.status.Current().Severity)

	press(m, "c")
	assert.Equal(t, 0, be.compares)
	press(m, "enter")
	assert.Empty(t, m.alert)
}

func TestScrollSyncMirrorsProportionally(t *testing.T) {
	// 100x12: each pane is 48 cells wide and 7 lines tall
	m, _ := newTestModel(t, 100, 12)
	loadBoth(t, m, strings.Repeat("a", 48*20), strings.Repeat("b", 48*10))
	require.Equal(t, 20, m.panes[0].ScrollHeight())
	require.Equal(t, 10, m.panes[1].ScrollHeight())

	release := press(m, "G")
	assert.Equal(t, 13, m.panes[0].ScrollTop())
	assert.Equal(t, 3, m.panes[1].ScrollTop())
	require.NotNil(t, release)

	// guard still up: the mirrored pane is not moved again
	press(m, "k")
	assert.Equal(t, 12, m.panes[0].ScrollTop())
	assert.Equal(t, 3, m.panes[1].ScrollTop())

	drain(t, m, release)
	press(m, "g")
	assert.Equal(t, 0, m.panes[0].ScrollTop())
	assert.Equal(t, 0, m.panes[1].ScrollTop())
}

func TestNarrowTerminalStacksPanes(t *testing.T) {
	m, _ := newTestModel(t, 40, 20)
	assert.Equal(t, state.Stacked, m.ui.Layout)
	w, h := m.panes[0].Size()
	assert.Equal(t, 38, w)
	assert.Equal(t, 6, h)
	assert.Equal(t, 2, m.paneAt(0, 15))
	assert.NotEmpty(t, m.View())
}

func TestPromptOpensFile(t *testing.T) {
	m, _ := newTestModel(t, 100, 30)
	p := writeFile(t, "typed.txt", "typed path")
	press(m, "o")
	require.NotNil(t, m.prompt)
	press(m, p)
	cmd := press(m, "enter")
	assert.Nil(t, m.prompt)
	drain(t, m, cmd)
	assert.Equal(t, "typedpath", m.panes[0].Text())
}
