package helpoverlay

import (
	"fmt"
	"strings"

	"proofdiff/internal/tui/state"
)

type HelpOverlay struct{}

func NewHelpOverlay() HelpOverlay { return HelpOverlay{} }

// View returns grouped keys help with the current mode indicated.
func (HelpOverlay) View(s state.UIState) string {
	mode := "CMD"
	if s.Mode == state.INSERT {
		mode = "INSERT"
	}
	sections := []struct {
		title string
		keys  []string
	}{
		{"Documents", []string{"o: open file into focused pane", "paste/drop a path: open it", "c: compare now", "x: clear both panes"}},
		{"Navigation", []string{"tab or 1/2: focus pane", "j/k or ↑/↓: scroll", "PgUp/PgDn: page", "Home/End: edges", "h/l or ←/→: scroll H (wrap off)", "mouse wheel: scroll pane"}},
		{"View", []string{"w: wrap on/off", "s: scroll sync on/off", "y: copy pane text"}},
		{"Editor", []string{"i: INSERT mode", "Esc: CMD mode", "ctrl+v: paste clipboard"}},
		{"Highlights", []string{"red: missing from the other text", "green: added", "yellow: different"}},
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Help (Mode: %s)\n", mode)
	for _, sec := range sections {
		fmt.Fprintf(&b, "\n%s:\n", sec.title)
		for _, k := range sec.keys {
			fmt.Fprintf(&b, "  %s\n", k)
		}
	}
	b.WriteString("\n?: close help  q: quit\n")
	return b.String()
}
