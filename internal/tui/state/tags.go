package state

// TagKind enumerates the status chips shown in a pane header.
type TagKind int

const (
	// Stable ordering for display: Edited, Added, Missing, Different, Len
	EDITED TagKind = iota
	ADDED
	MISSING
	DIFFERENT
	LEN
)

// Tag represents a single status chip. Value carries the counter for
// numeric chips; Edited uses Value = 0.
type Tag struct {
	Kind  TagKind
	Value int
}
