package util

import (
	"unicode/utf8"

	"proofdiff/internal/textdiff"
	"proofdiff/internal/tui/state"
)

// ComputeTags calculates the status chips for a pane given the segment
// counts of its last rendered comparison, its live text, and whether the
// user has typed into it since.
//
// The returned slice preserves a stable order:
//
//	Edited, Added, Missing, Different, Len
//
// Added, Missing and Different appear only when non-zero; Len is always
// present and counts runes of the live text.
func ComputeTags(c textdiff.Counts, live string, edited bool) []state.Tag {
	tags := make([]state.Tag, 0, 5)
	if edited {
		tags = append(tags, state.Tag{Kind: state.EDITED})
	}
	if c.Insert > 0 {
		tags = append(tags, state.Tag{Kind: state.ADDED, Value: c.Insert})
	}
	if c.Delete > 0 {
		tags = append(tags, state.Tag{Kind: state.MISSING, Value: c.Delete})
	}
	if c.Replace > 0 {
		tags = append(tags, state.Tag{Kind: state.DIFFERENT, Value: c.Replace})
	}
	return append(tags, state.Tag{Kind: state.LEN, Value: utf8.RuneCountInString(live)})
}
