package textdiff

import (
	"golang.org/x/text/unicode/norm"

	"proofdiff/internal/normalize"
)

// MapOriginal projects segs, computed over the normalized form of original,
// back onto original itself. Characters dropped by normalization take the
// status of the run around them when both neighbours agree and are equal
// otherwise. It reports false when segs do not describe original, e.g.
// after the normalized text was edited.
func MapOriginal(original string, segs []Segment) ([]Segment, bool) {
	var kept []Status
	for _, s := range segs {
		for range s.Text {
			kept = append(kept, s.Status)
		}
	}

	runes := []rune(norm.NFC.String(original))
	st := make([]Status, len(runes))
	k := 0
	for i, r := range runes {
		if !normalize.Keep(r) {
			continue
		}
		if k >= len(kept) {
			return nil, false
		}
		st[i] = kept[k]
		k++
	}
	if k != len(kept) {
		return nil, false
	}

	// fill dropped characters
	prev := Status("")
	for i := 0; i < len(runes); {
		if st[i] != "" {
			prev = st[i]
			i++
			continue
		}
		j := i
		for j < len(runes) && st[j] == "" {
			j++
		}
		fill := Equal
		if j < len(runes) && prev != "" && st[j] == prev {
			fill = prev
		}
		for ; i < j; i++ {
			st[i] = fill
		}
	}

	var out []Segment
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i == len(runes) || st[i] != st[start] {
			out = append(out, Segment{Text: string(runes[start:i]), Status: st[start]})
			start = i
		}
	}
	return out, true
}
