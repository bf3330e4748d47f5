package pane

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofdiff/internal/render"
	"proofdiff/internal/textdiff"
)

func newPane(w, h int) *Pane {
	p := New(render.MonoStyles())
	p.SetSize(w, h)
	return p
}

func plainLines(p *Pane) []string {
	return strings.Split(ansi.Strip(p.View()), "\n")
}

func TestWrapLayout(t *testing.T) {
	p := newPane(4, 3)
	p.SetText("abcdefghij")
	assert.Equal(t, 3, p.ScrollHeight())
	assert.Equal(t, []string{"abcd", "efgh", "ij  "}, plainLines(p))
}

func TestWideRunesWrapByCells(t *testing.T) {
	p := newPane(5, 2)
	p.SetText("校对文本")
	// two wide runes fill four cells; the third would overflow
	assert.Equal(t, []string{"校对 ", "文本 "}, plainLines(p))
}

func TestNoWrapHorizontalScroll(t *testing.T) {
	p := newPane(3, 1)
	p.SetWrap(false)
	p.SetText("abcdef")
	assert.Equal(t, 1, p.ScrollHeight())
	p.ScrollColumns(2)
	assert.Equal(t, 2, p.ScrollLeft())
	assert.Equal(t, []string{"cde"}, plainLines(p))

	p.SetWrap(true)
	assert.Equal(t, 0, p.ScrollLeft())
}

func TestRenderIsIdempotent(t *testing.T) {
	res := textdiff.Difflib{}.Compare("helloworld", "hello<X>world")
	p := newPane(20, 2)
	p.SetRuns(render.Runs(res.Right))
	first := p.View()
	runs := p.Runs()
	p.SetRuns(render.Runs(res.Right))
	assert.Equal(t, first, p.View())
	assert.Equal(t, runs, p.Runs())
	assert.Equal(t, "hello<X>world", p.Text())
	assert.Equal(t, render.Runs(res.Right), p.Runs())
}

func TestSetRunsKeepsScrollAndClampsCursor(t *testing.T) {
	p := newPane(2, 2)
	p.SetText("aabbccddee")
	p.SetScrollTop(3)
	for i := 0; i < 10; i++ {
		p.MoveRight()
	}
	p.SetScrollTop(2)
	p.SetRuns([]render.Run{{Text: "aabbccdd", Class: render.ClassEqual}})
	assert.Equal(t, 2, p.ScrollTop())
	assert.Equal(t, 8, p.Cursor())

	p.SetRuns([]render.Run{{Text: "ab", Class: render.ClassAdded}})
	assert.Equal(t, 0, p.ScrollTop())
	assert.Equal(t, 2, p.Cursor())
}

func TestEditing(t *testing.T) {
	p := newPane(10, 3)
	p.SetRuns([]render.Run{{Text: "ac", Class: render.ClassEqual}})
	p.MoveRight()
	require.True(t, p.Insert([]rune("b\r")))
	assert.Equal(t, "abc", p.Text())
	assert.Equal(t, 2, p.Cursor())
	assert.Equal(t, []render.Run{
		{Text: "a", Class: render.ClassEqual},
		{Text: "b", Class: render.ClassNone},
		{Text: "c", Class: render.ClassEqual},
	}, p.Runs())

	require.True(t, p.Backspace())
	require.True(t, p.Delete())
	assert.Equal(t, "a", p.Text())
	assert.False(t, p.Delete())
	p.LineStart()
	assert.False(t, p.Backspace())
	assert.False(t, p.Insert([]rune("\r")))
}

func TestCursorMovesAcrossLines(t *testing.T) {
	p := newPane(10, 2)
	p.SetText("abc\nde\nfghij")
	p.MoveRight()
	p.MoveRight()
	p.MoveDown()
	assert.Equal(t, 6, p.Cursor(), "column clamps to the shorter line")
	p.MoveDown()
	assert.Equal(t, 9, p.Cursor())
	assert.Equal(t, 1, p.ScrollTop(), "cursor kept visible")
	p.LineEnd()
	assert.Equal(t, 12, p.Cursor())
	p.MoveUp()
	p.MoveUp()
	assert.Equal(t, 2, p.Cursor())
	assert.Equal(t, 0, p.ScrollTop())
}

func TestScrollClamps(t *testing.T) {
	p := newPane(1, 2)
	p.SetText("abcde")
	p.ScrollEnd()
	assert.Equal(t, 3, p.ScrollTop())
	p.PageBy(-5)
	assert.Equal(t, 0, p.ScrollTop())
	assert.Equal(t, 2, p.ClientHeight())
}

func TestEmptyPane(t *testing.T) {
	p := newPane(3, 2)
	assert.Nil(t, p.Runs())
	assert.Equal(t, []string{"   ", "   "}, plainLines(p))
	p.SetCursorVisible(true)
	assert.Len(t, plainLines(p), 2)
}
