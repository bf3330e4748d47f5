// Package textdiff computes character-level differences between two
// normalized texts as two parallel sequences of categorized segments.
package textdiff

import (
	"strings"
	"unicode/utf8"
)

// Status categorizes a segment relative to the other text.
type Status string

const (
	Equal   Status = "equal"
	Insert  Status = "insert"
	Delete  Status = "delete"
	Replace Status = "replace"
)

// Segment is a contiguous run of text with one status.
type Segment struct {
	Text   string `json:"text"`
	Status Status `json:"status"`
}

// Result holds one segment sequence per text. Joining Left reproduces the
// first text, joining Right the second.
type Result struct {
	Left  []Segment `json:"diffs1"`
	Right []Segment `json:"diffs2"`
}

// Join concatenates segment texts in order.
func Join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Counts tallies runes per status.
type Counts struct {
	Equal, Insert, Delete, Replace int
}

// Total is the rune length of the side.
func (c Counts) Total() int { return c.Equal + c.Insert + c.Delete + c.Replace }

// Changed is the number of runes not marked equal.
func (c Counts) Changed() int { return c.Insert + c.Delete + c.Replace }

// Count tallies segs. Unknown statuses count as equal.
func Count(segs []Segment) Counts {
	var c Counts
	for _, s := range segs {
		n := utf8.RuneCountInString(s.Text)
		switch s.Status {
		case Insert:
			c.Insert += n
		case Delete:
			c.Delete += n
		case Replace:
			c.Replace += n
		default:
			c.Equal += n
		}
	}
	return c
}

// appendSeg adds a segment, merging with the previous one when the status
// matches. Empty text is dropped.
func appendSeg(segs []Segment, text string, st Status) []Segment {
	if text == "" {
		return segs
	}
	if n := len(segs); n > 0 && segs[n-1].Status == st {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, Segment{Text: text, Status: st})
}
