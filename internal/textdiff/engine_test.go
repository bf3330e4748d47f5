package textdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pairs = []struct{ a, b string }{
	{"", ""},
	{"helloworld", "helloXworld"},
	{"abc", ""},
	{"", "abc"},
	{"第一行字幕内容", "第一行字目内容还有"},
	{"thequickbrownfox", "aquickbrownfoxjumps"},
	{"aaaaabbbbb", "bbbbbaaaaa"},
	{"identical", "identical"},
}

func engines(t *testing.T) []Engine {
	t.Helper()
	d, err := New(EngineDifflib, Options{})
	require.NoError(t, err)
	m, err := New(EngineDMP, Options{SemanticCleanup: true})
	require.NoError(t, err)
	raw, err := New("DMP", Options{})
	require.NoError(t, err)
	return []Engine{d, m, raw}
}

func TestConcatenationInvariant(t *testing.T) {
	for _, e := range engines(t) {
		for _, p := range pairs {
			res := e.Compare(p.a, p.b)
			assert.Equal(t, p.a, Join(res.Left), "%s left %q/%q", e.Name(), p.a, p.b)
			assert.Equal(t, p.b, Join(res.Right), "%s right %q/%q", e.Name(), p.a, p.b)
		}
	}
}

func TestInsertScenario(t *testing.T) {
	for _, e := range engines(t) {
		res := e.Compare("helloworld", "helloXworld")
		assert.Equal(t, []Segment{{"helloworld", Equal}}, res.Left, e.Name())
		assert.Equal(t, []Segment{
			{"hello", Equal},
			{"X", Insert},
			{"world", Equal},
		}, res.Right, e.Name())
	}
}

func TestReplaceAndDelete(t *testing.T) {
	res := Difflib{}.Compare("abcXdef", "abcYdef")
	assert.Equal(t, []Segment{{"abc", Equal}, {"X", Replace}, {"def", Equal}}, res.Left)
	assert.Equal(t, []Segment{{"abc", Equal}, {"Y", Replace}, {"def", Equal}}, res.Right)

	res = DMP{}.Compare("abcXdef", "abcYdef")
	assert.Equal(t, []Segment{{"abc", Equal}, {"X", Replace}, {"def", Equal}}, res.Left)

	res = Difflib{}.Compare("abcdef", "abef")
	assert.Equal(t, []Segment{{"ab", Equal}, {"cd", Delete}, {"ef", Equal}}, res.Left)
	assert.Equal(t, []Segment{{"abef", Equal}}, res.Right)
}

func TestUnknownEngine(t *testing.T) {
	_, err := New("myers", Options{})
	assert.Error(t, err)
}

func TestCount(t *testing.T) {
	c := Count([]Segment{
		{"你好", Equal},
		{"ab", Insert},
		{"c", Delete},
		{"de", Replace},
		{"zz", "mystery"},
	})
	assert.Equal(t, Counts{Equal: 4, Insert: 2, Delete: 1, Replace: 2}, c)
	assert.Equal(t, 9, c.Total())
	assert.Equal(t, 5, c.Changed())
}
