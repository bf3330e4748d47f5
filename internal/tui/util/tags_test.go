package util

import (
	"testing"

	"proofdiff/internal/textdiff"
	"proofdiff/internal/tui/state"
)

func findKind(tags []state.Tag, k state.TagKind) (idx int, ok bool) {
	for i, t := range tags {
		if t.Kind == k {
			return i, true
		}
	}
	return -1, false
}

func TestZeroCountsOmitted(t *testing.T) {
	tags := ComputeTags(textdiff.Counts{Equal: 4, Insert: 2}, "abcd", false)
	if _, ok := findKind(tags, state.ADDED); !ok {
		t.Fatalf("expected ADDED tag present")
	}
	for _, k := range []state.TagKind{state.EDITED, state.MISSING, state.DIFFERENT} {
		if _, ok := findKind(tags, k); ok {
			t.Fatalf("did not expect tag %v", k)
		}
	}
}

func TestLenCountsRunes(t *testing.T) {
	tags := ComputeTags(textdiff.Counts{}, "校对文本", false)
	idx, ok := findKind(tags, state.LEN)
	if !ok || tags[idx].Value != 4 {
		t.Fatalf("expected LEN 4, got %+v", tags)
	}
}

func TestStableOrder(t *testing.T) {
	tags := ComputeTags(textdiff.Counts{Insert: 1, Delete: 2, Replace: 3}, "x", true)
	order := []state.TagKind{state.EDITED, state.ADDED, state.MISSING, state.DIFFERENT, state.LEN}
	if len(tags) != len(order) {
		t.Fatalf("expected %d tags, got %d", len(order), len(tags))
	}
	for i, k := range order {
		if tags[i].Kind != k {
			t.Fatalf("tag %d: got %v want %v", i, tags[i].Kind, k)
		}
	}
	if tags[3].Value != 3 {
		t.Fatalf("unexpected different value: %d", tags[3].Value)
	}
}
