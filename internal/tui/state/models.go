package state

// EditorMode represents the current input mode.
type EditorMode int

const (
	CMD EditorMode = iota
	INSERT
)

// Layout controls how the two panes are arranged.
type Layout int

const (
	SideBySide Layout = iota
	Stacked
)

// UIState holds cross-widget UI state used by the status bar, panes and
// help overlay.
type UIState struct {
	Mode   EditorMode
	Wrap   bool
	Layout Layout

	// Layout & focus
	Width      int
	Height     int
	MinCol     int
	Focus      int // 1 or 2
	SyncScroll bool
	ShowHelp   bool

	// Notices and ephemeral messages
	Notice string
}

// New returns the initial state.
func New(wrap, syncScroll bool, minCol int) UIState {
	return UIState{Wrap: wrap, SyncScroll: syncScroll, MinCol: minCol, Focus: 1}
}
