package state

// ToggleWrap flips the Wrap flag and returns a new state copy.
func ToggleWrap(s UIState) UIState {
	s.Wrap = !s.Wrap
	if s.Wrap {
		s.Notice = "wrap on"
	} else {
		s.Notice = "wrap off"
	}
	return s
}

// ToggleMode switches between CMD and INSERT modes and sets a brief notice.
func ToggleMode(s UIState) UIState {
	if s.Mode == CMD {
		return EnterInsert(s)
	}
	return EnterCmd(s)
}

func EnterInsert(s UIState) UIState {
	s.Mode = INSERT
	s.Notice = "[INSERT]"
	return s
}

func EnterCmd(s UIState) UIState {
	s.Mode = CMD
	s.Notice = "[CMD]"
	return s
}

// Resize records the terminal size and picks the layout. Side-by-side
// needs at least 2*MinCol plus 3 cells for borders and the gutter.
func Resize(s UIState, width, height int) UIState {
	s.Width = width
	s.Height = height
	threshold := 2*s.MinCol + 3
	switch {
	case s.Width < threshold && s.Layout == SideBySide:
		s.Layout = Stacked
		s.Notice = "narrow terminal: panes stacked"
	case s.Width >= threshold && s.Layout == Stacked:
		s.Layout = SideBySide
		s.Notice = ""
	}
	return s
}

// FocusNext moves focus to the other pane.
func FocusNext(s UIState) UIState {
	if s.Focus == 1 {
		s.Focus = 2
	} else {
		s.Focus = 1
	}
	return s
}

// FocusSlot focuses pane i; other values are ignored.
func FocusSlot(s UIState, i int) UIState {
	if i == 1 || i == 2 {
		s.Focus = i
	}
	return s
}

// Other returns the index of the pane without focus.
func Other(s UIState) int {
	if s.Focus == 1 {
		return 2
	}
	return 1
}

// ToggleSyncScroll toggles synchronized pane scrolling.
func ToggleSyncScroll(s UIState) UIState {
	s.SyncScroll = !s.SyncScroll
	if s.SyncScroll {
		s.Notice = "scroll sync on"
	} else {
		s.Notice = "scroll sync off"
	}
	return s
}

func ToggleHelp(s UIState) UIState {
	s.ShowHelp = !s.ShowHelp
	return s
}
