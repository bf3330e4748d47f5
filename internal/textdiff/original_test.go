package textdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapOriginal(t *testing.T) {
	cases := []struct {
		name     string
		original string
		segs     []Segment
		want     []Segment
	}{
		{
			name:     "punctuation between different statuses stays equal",
			original: "ab, cd.",
			segs:     []Segment{{Text: "ab", Status: Equal}, {Text: "cd", Status: Delete}},
			want: []Segment{
				{Text: "ab, ", Status: Equal},
				{Text: "cd", Status: Delete},
				{Text: ".", Status: Equal},
			},
		},
		{
			name:     "punctuation inside a run joins it",
			original: "a-b",
			segs:     []Segment{{Text: "ab", Status: Replace}},
			want:     []Segment{{Text: "a-b", Status: Replace}},
		},
		{
			name:     "cjk with full-width punctuation",
			original: "第一句，\n第二句。",
			segs:     []Segment{{Text: "第一句第", Status: Equal}, {Text: "二", Status: Replace}, {Text: "句", Status: Equal}},
			want: []Segment{
				{Text: "第一句，\n第", Status: Equal},
				{Text: "二", Status: Replace},
				{Text: "句。", Status: Equal},
			},
		},
		{name: "empty", original: "", segs: nil, want: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := MapOriginal(tc.original, tc.segs)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMapOriginalRejectsMismatch(t *testing.T) {
	_, ok := MapOriginal("abc", []Segment{{Text: "ab", Status: Equal}})
	assert.False(t, ok)
	_, ok = MapOriginal("a.b", []Segment{{Text: "abc", Status: Equal}})
	assert.False(t, ok)
}

func TestMapOriginalRoundTripsText(t *testing.T) {
	res := Difflib{}.Compare("helloworld", "hellowurld")
	got, ok := MapOriginal("Hello, world!", res.Left)
	require.True(t, ok)
	assert.Equal(t, "Hello, world!", Join(got))
}
