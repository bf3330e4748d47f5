package tui

import (
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"proofdiff/internal/document"
	"proofdiff/internal/ingest"
)

// pathPrompt is the one-line "open file" input with directory completion.
type pathPrompt struct {
	slot    int
	buf     string
	suggest []string
}

func newPathPrompt(slot int) *pathPrompt { return &pathPrompt{slot: slot} }

func (m *model) promptKey(msg tea.KeyMsg) tea.Cmd {
	pr := m.prompt
	switch msg.Type {
	case tea.KeyEnter:
		m.prompt = nil
		if strings.TrimSpace(pr.buf) == "" {
			return nil
		}
		return m.open(pr.slot, pr.buf)
	case tea.KeyEsc:
		m.prompt = nil
		m.status.Info("open cancelled")
		return nil
	case tea.KeyTab:
		if len(pr.suggest) > 0 {
			pr.buf = pr.suggest[0]
			if fi, err := os.Stat(expandPath(pr.buf)); err == nil && fi.IsDir() && !strings.HasSuffix(pr.buf, string(filepath.Separator)) {
				pr.buf += string(filepath.Separator)
			}
		}
	case tea.KeyBackspace, tea.KeyCtrlH:
		if n := len([]rune(pr.buf)); n > 0 {
			r := []rune(pr.buf)
			pr.buf = string(r[:n-1])
		}
	case tea.KeySpace:
		pr.buf += " "
	case tea.KeyRunes:
		if msg.Paste {
			if p, err := ingest.DroppedPath(string(msg.Runes)); err == nil {
				pr.buf = p
				break
			}
		}
		pr.buf += string(msg.Runes)
	default:
		return nil
	}
	pr.computeSuggestions()
	return nil
}

// computeSuggestions lists directories and openable documents matching the
// last path element of the input.
func (pr *pathPrompt) computeSuggestions() {
	in := pr.buf
	if strings.TrimSpace(in) == "" {
		pr.suggest = nil
		return
	}
	expanded := expandPath(in)
	dir := expanded
	base := ""
	if fi, err := os.Stat(expanded); err != nil || !fi.IsDir() || !strings.HasSuffix(in, string(filepath.Separator)) {
		dir = filepath.Dir(expanded)
		base = filepath.Base(expanded)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		pr.suggest = nil
		return
	}
	home, _ := os.UserHomeDir()
	var out []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && !document.Supported(document.Extension(name)) {
			continue
		}
		if base == "" || strings.Contains(strings.ToLower(name), strings.ToLower(base)) {
			cand := filepath.Join(dir, name)
			// Present with ~/ when within home
			if home != "" && strings.HasPrefix(cand, home) {
				cand = "~" + strings.TrimPrefix(cand, home)
			}
			out = append(out, cand)
		}
		if len(out) >= 8 {
			break
		}
	}
	pr.suggest = out
}

func expandPath(p string) string {
	p = strings.TrimSpace(p)
	if strings.HasPrefix(p, "~/") {
		if h, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(h, p[2:])
		}
	}
	p = os.ExpandEnv(p)
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return p
}
