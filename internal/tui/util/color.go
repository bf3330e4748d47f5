package util

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// NoColor reports whether styling should fall back to attributes only:
// when asked explicitly, when NO_COLOR is set, or on a dumb terminal.
func NoColor(explicit bool) bool {
	if explicit {
		return true
	}
	return os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb"
}

// Palette names the colors of the proofreading screen. The diff classes
// match the highlight colors of the panes so a chip reads as a legend.
type Palette struct {
	Focus     lipgloss.TerminalColor
	Border    lipgloss.TerminalColor
	Edited    lipgloss.TerminalColor
	Added     lipgloss.TerminalColor
	Missing   lipgloss.TerminalColor
	Different lipgloss.TerminalColor
	Muted     lipgloss.TerminalColor
	OnChip    lipgloss.TerminalColor
	OnWarning lipgloss.TerminalColor
}

// DefaultPalette adapts to light and dark terminal backgrounds.
func DefaultPalette() Palette {
	return Palette{
		Focus:     lipgloss.AdaptiveColor{Light: "#2F5BEA", Dark: "#6C8CFF"},
		Border:    lipgloss.AdaptiveColor{Light: "#A0A0A0", Dark: "#5A5A5A"},
		Edited:    lipgloss.AdaptiveColor{Light: "#2F5BEA", Dark: "#3D6DFF"},
		Added:     lipgloss.AdaptiveColor{Light: "#1E8A5F", Dark: "#2AA876"},
		Missing:   lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#D9534F"},
		Different: lipgloss.AdaptiveColor{Light: "#D68910", Dark: "#F0AD4E"},
		Muted:     lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#8A8F94"},
		OnChip:    lipgloss.Color("#FFFFFF"),
		OnWarning: lipgloss.Color("#111111"),
	}
}
