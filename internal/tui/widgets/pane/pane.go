// Package pane is the editable, highlighted text widget shown for each
// document. Every rune carries the highlight class of the diff segment it
// came from; runes typed by the user are unclassed until the next compare.
package pane

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"proofdiff/internal/render"
)

var cursorStyle = lipgloss.NewStyle().Reverse(true)

// span is one display line: runes [start, end). A hard line break rune
// sits at end and is not part of the line.
type span struct{ start, end int }

// Pane holds the buffer, cursor and scroll offsets. Vertical offsets are in
// display lines, horizontal offsets in terminal cells.
type Pane struct {
	runes []rune
	class []render.Class

	cursor     int
	top, left  int
	width      int
	height     int
	wrap       bool
	showCursor bool

	styles render.Styles
	lines  []span
	dirty  bool
}

func New(styles render.Styles) *Pane {
	return &Pane{styles: styles, wrap: true, width: 1, height: 1, dirty: true}
}

// SetSize sets the content area in cells.
func (p *Pane) SetSize(width, height int) {
	p.width = max(width, 1)
	p.height = max(height, 1)
	p.dirty = true
	p.clamp()
}

func (p *Pane) Size() (width, height int) { return p.width, p.height }

func (p *Pane) SetWrap(on bool) {
	p.wrap = on
	if on {
		p.left = 0
	}
	p.dirty = true
	p.clamp()
}

// SetCursorVisible shows the cursor; only the focused pane in INSERT mode
// does.
func (p *Pane) SetCursorVisible(on bool) { p.showCursor = on }

// SetText replaces the buffer with unhighlighted text and resets cursor and
// scroll.
func (p *Pane) SetText(s string) {
	p.runes = []rune(s)
	p.class = make([]render.Class, len(p.runes))
	p.cursor, p.top, p.left = 0, 0, 0
	p.dirty = true
}

// SetRuns replaces the whole buffer with highlighted runs in one step. The
// scroll offset is kept (clamped to the new content); the cursor is kept by
// rune index when it still fits.
func (p *Pane) SetRuns(runs []render.Run) {
	n := 0
	for _, r := range runs {
		n += len(r.Text)
	}
	rs := make([]rune, 0, n)
	cl := make([]render.Class, 0, n)
	for _, r := range runs {
		for _, c := range r.Text {
			rs = append(rs, c)
			cl = append(cl, r.Class)
		}
	}
	p.runes, p.class = rs, cl
	p.cursor = min(p.cursor, len(p.runes))
	p.dirty = true
	p.clamp()
}

// Runs returns the buffer grouped into runs of equal class.
func (p *Pane) Runs() []render.Run {
	var out []render.Run
	start := 0
	for i := 1; i <= len(p.runes); i++ {
		if i == len(p.runes) || p.class[i] != p.class[start] {
			out = append(out, render.Run{Text: string(p.runes[start:i]), Class: p.class[start]})
			start = i
		}
	}
	return out
}

// Text is the live content.
func (p *Pane) Text() string { return string(p.runes) }

func (p *Pane) Len() int    { return len(p.runes) }
func (p *Pane) Cursor() int { return p.cursor }

// Insert types rs at the cursor. Carriage returns are dropped. It reports
// whether the buffer changed.
func (p *Pane) Insert(rs []rune) bool {
	clean := make([]rune, 0, len(rs))
	for _, r := range rs {
		if r != '\r' {
			clean = append(clean, r)
		}
	}
	if len(clean) == 0 {
		return false
	}
	at := p.cursor
	p.runes = append(p.runes[:at], append(clean, p.runes[at:]...)...)
	cl := make([]render.Class, len(clean))
	p.class = append(p.class[:at], append(cl, p.class[at:]...)...)
	p.cursor += len(clean)
	p.dirty = true
	p.ensureVisible()
	return true
}

func (p *Pane) Backspace() bool {
	if p.cursor == 0 {
		return false
	}
	p.cursor--
	p.remove(p.cursor)
	return true
}

func (p *Pane) Delete() bool {
	if p.cursor >= len(p.runes) {
		return false
	}
	p.remove(p.cursor)
	return true
}

func (p *Pane) remove(at int) {
	p.runes = append(p.runes[:at], p.runes[at+1:]...)
	p.class = append(p.class[:at], p.class[at+1:]...)
	p.dirty = true
	p.clamp()
	p.ensureVisible()
}

func (p *Pane) MoveLeft() {
	if p.cursor > 0 {
		p.cursor--
	}
	p.ensureVisible()
}

func (p *Pane) MoveRight() {
	if p.cursor < len(p.runes) {
		p.cursor++
	}
	p.ensureVisible()
}

func (p *Pane) MoveUp()   { p.moveLine(-1) }
func (p *Pane) MoveDown() { p.moveLine(1) }

func (p *Pane) moveLine(delta int) {
	l := p.lineOf(p.cursor)
	target := l + delta
	if target < 0 || target >= len(p.lines) {
		return
	}
	p.cursor = p.posAt(target, p.colOf(p.cursor))
	p.ensureVisible()
}

// LineStart and LineEnd move to the edges of the current display line.
func (p *Pane) LineStart() {
	l := p.lineOf(p.cursor)
	p.cursor = p.lines[l].start
	p.ensureVisible()
}

func (p *Pane) LineEnd() {
	l := p.lineOf(p.cursor)
	p.cursor = p.lines[l].end
	p.ensureVisible()
}

// ScrollBy scrolls n lines without moving the cursor.
func (p *Pane) ScrollBy(n int) { p.SetScrollTop(p.top + n) }

// PageBy scrolls n pages.
func (p *Pane) PageBy(n int) { p.ScrollBy(n * p.height) }

func (p *Pane) ScrollHome() { p.SetScrollTop(0) }
func (p *Pane) ScrollEnd()  { p.SetScrollTop(p.ScrollHeight()) }

// ScrollColumns scrolls horizontally by n cells; a no-op while wrapping.
func (p *Pane) ScrollColumns(n int) { p.SetScrollLeft(p.left + n) }

func (p *Pane) ScrollTop() int    { return p.top }
func (p *Pane) ClientHeight() int { return p.height }
func (p *Pane) ScrollLeft() int   { return p.left }

func (p *Pane) ScrollHeight() int {
	p.layout()
	return len(p.lines)
}

func (p *Pane) SetScrollTop(v int) {
	p.top = v
	p.clamp()
}

func (p *Pane) SetScrollLeft(v int) {
	if p.wrap {
		p.left = 0
		return
	}
	p.left = v
	p.clamp()
}

func (p *Pane) clamp() {
	p.layout()
	p.top = min(p.top, max(len(p.lines)-p.height, 0))
	p.top = max(p.top, 0)
	if p.wrap {
		p.left = 0
		return
	}
	widest := 0
	for i := range p.lines {
		widest = max(widest, p.lineWidth(i))
	}
	p.left = min(p.left, max(widest-p.width+1, 0))
	p.left = max(p.left, 0)
}

func (p *Pane) ensureVisible() {
	l := p.lineOf(p.cursor)
	if l < p.top {
		p.top = l
	} else if l >= p.top+p.height {
		p.top = l - p.height + 1
	}
	if !p.wrap {
		c := p.colOf(p.cursor)
		if c < p.left {
			p.left = c
		} else if c >= p.left+p.width {
			p.left = c - p.width + 1
		}
	}
}

func (p *Pane) layout() {
	if !p.dirty {
		return
	}
	p.dirty = false
	p.lines = p.lines[:0]
	start, col := 0, 0
	for i, r := range p.runes {
		if r == '\n' {
			p.lines = append(p.lines, span{start, i})
			start, col = i+1, 0
			continue
		}
		if p.wrap {
			_, w := cell(r)
			if col+w > p.width && i > start {
				p.lines = append(p.lines, span{start, i})
				start, col = i, 0
			}
			col += w
		}
	}
	p.lines = append(p.lines, span{start, len(p.runes)})
}

// lineOf maps a cursor position to its display line. A position at a soft
// wrap boundary belongs to the following line.
func (p *Pane) lineOf(pos int) int {
	p.layout()
	for i, l := range p.lines {
		if pos < l.end {
			return i
		}
		if pos == l.end && (i == len(p.lines)-1 || p.lines[i+1].start > pos) {
			return i
		}
	}
	return len(p.lines) - 1
}

func (p *Pane) colOf(pos int) int {
	i := p.lineOf(pos)
	l := p.lines[i]
	col := 0
	for _, r := range p.runes[l.start:pos] {
		_, w := cell(r)
		col += w
	}
	return col
}

func (p *Pane) posAt(line, col int) int {
	l := p.lines[line]
	c := 0
	for pos := l.start; pos < l.end; pos++ {
		_, w := cell(p.runes[pos])
		if c+w > col {
			return pos
		}
		c += w
	}
	return l.end
}

func (p *Pane) lineWidth(i int) int {
	l := p.lines[i]
	w := 0
	for _, r := range p.runes[l.start:l.end] {
		_, cw := cell(r)
		w += cw
	}
	return w
}

func cell(r rune) (rune, int) {
	if r == '\t' {
		return ' ', 1
	}
	return r, runewidth.RuneWidth(r)
}

// View renders exactly height lines, each padded to width cells.
func (p *Pane) View() string {
	p.layout()
	out := make([]string, 0, p.height)
	for row := 0; row < p.height; row++ {
		i := p.top + row
		if i >= len(p.lines) {
			out = append(out, strings.Repeat(" ", p.width))
			continue
		}
		out = append(out, p.renderLine(i))
	}
	return strings.Join(out, "\n")
}

func (p *Pane) renderLine(i int) string {
	l := p.lines[i]
	cur := -1
	if p.showCursor && p.lineOf(p.cursor) == i {
		cur = p.cursor
	}

	var b strings.Builder
	var chunk []rune
	chunkClass := render.ClassNone
	flush := func() {
		if len(chunk) > 0 {
			b.WriteString(p.styles.For(chunkClass).Render(string(chunk)))
			chunk = chunk[:0]
		}
	}

	left := 0
	if !p.wrap {
		left = p.left
	}
	col, used := 0, 0
	for pos := l.start; pos < l.end; pos++ {
		r, w := cell(p.runes[pos])
		if col < left {
			col += w
			if col > left {
				// wide rune cut by the left edge
				b.WriteString(strings.Repeat(" ", col-left))
				used += col - left
			}
			continue
		}
		if used+w > p.width {
			break
		}
		if pos == cur {
			flush()
			b.WriteString(cursorStyle.Render(string(r)))
		} else {
			if p.class[pos] != chunkClass {
				flush()
				chunkClass = p.class[pos]
			}
			chunk = append(chunk, r)
		}
		col += w
		used += w
	}
	flush()
	if cur == l.end && used < p.width {
		b.WriteString(cursorStyle.Render(" "))
		used++
	}
	if used < p.width {
		b.WriteString(strings.Repeat(" ", p.width-used))
	}
	return b.String()
}
