package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"proofdiff/internal/tui/state"
)

type keyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Help      key.Binding
	Focus     key.Binding
	Pane1     key.Binding
	Pane2     key.Binding
	Insert    key.Binding
	Normal    key.Binding
	Open      key.Binding
	Compare   key.Binding
	Clear     key.Binding
	Wrap      key.Binding
	Sync      key.Binding
	Copy      key.Binding
	Paste     key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Left      key.Binding
	Right     key.Binding
	Dismiss   key.Binding
	Yes       key.Binding
	No        key.Binding
}

var keys = keyMap{
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Pane1:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "pane 1")),
	Pane2:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "pane 2")),
	Insert:    key.NewBinding(key.WithKeys("i", "enter"), key.WithHelp("i", "edit")),
	Normal:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done editing")),
	Open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
	Compare:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare")),
	Clear:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
	Wrap:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wrap")),
	Sync:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync scroll")),
	Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
	Paste:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
	Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	PageUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Home:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	End:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Left:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "scroll left")),
	Right:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "scroll right")),
	Dismiss:   key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "dismiss")),
	Yes:       key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:        key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
}

// short is the one-line help for the current mode.
func (k keyMap) short(mode state.EditorMode) []key.Binding {
	if mode == state.INSERT {
		return []key.Binding{k.Normal, k.Paste, k.Focus, k.ForceQuit}
	}
	return []key.Binding{k.Open, k.Compare, k.Insert, k.Focus, k.Wrap, k.Sync, k.Clear, k.Help, k.Quit}
}
