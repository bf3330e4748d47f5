package tagchips

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"proofdiff/internal/tui/state"
	"proofdiff/internal/tui/util"
)

// View renders pane tags in a stable order using colored chips when
// possible and ASCII fallbacks when color is disabled or not desired.
func View(tags []state.Tag, noColor bool) string {
	if len(tags) == 0 {
		return ""
	}
	noColor = util.NoColor(noColor)

	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, renderChip(t, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(t state.Tag, noColor bool) string {
	label := chipLabel(t)
	if noColor {
		return fmt.Sprintf("[%s]", label)
	}
	return chipStyle(t).Render(label)
}

func chipLabel(t state.Tag) string {
	switch t.Kind {
	case state.EDITED:
		return "Edited"
	case state.ADDED:
		return fmt.Sprintf("+%d", t.Value)
	case state.MISSING:
		return fmt.Sprintf("-%d", t.Value)
	case state.DIFFERENT:
		return fmt.Sprintf("~%d", t.Value)
	case state.LEN:
		return fmt.Sprintf("Len %d", t.Value)
	default:
		return "Tag"
	}
}

func chipStyle(t state.Tag) lipgloss.Style {
	p := util.DefaultPalette()
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	switch t.Kind {
	case state.EDITED:
		return base.Background(p.Edited).Foreground(p.OnChip)
	case state.ADDED:
		return base.Background(p.Added).Foreground(p.OnChip)
	case state.MISSING:
		return base.Background(p.Missing).Foreground(p.OnChip)
	case state.DIFFERENT:
		return base.Background(p.Different).Foreground(p.OnWarning)
	case state.LEN:
		return base.Background(p.Border).Foreground(p.OnChip)
	default:
		return base
	}
}
