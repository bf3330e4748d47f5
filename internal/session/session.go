// Package session holds the per-run document state (two slots) and the
// comparison orchestrator that reads and writes it.
package session

import "fmt"

// Slot is one of the two documents under comparison. NormalizedText is the
// authoritative content of the slot's pane.
type Slot struct {
	SourceName     string
	OriginalText   string
	NormalizedText string
}

// Session owns both slots and the in-flight comparison flag. It is not safe
// for concurrent use; the TUI touches it only from Update.
type Session struct {
	slots     [2]*Slot
	comparing bool
}

func New() *Session { return &Session{} }

// ValidIndex reports whether i names a slot (1 or 2).
func ValidIndex(i int) bool { return i == 1 || i == 2 }

func checkIndex(i int) error {
	if !ValidIndex(i) {
		return fmt.Errorf("invalid slot %d", i)
	}
	return nil
}

// Slot returns a copy of slot i and whether it is populated.
func (s *Session) Slot(i int) (Slot, bool) {
	if !ValidIndex(i) || s.slots[i-1] == nil {
		return Slot{}, false
	}
	return *s.slots[i-1], true
}

func (s *Session) Loaded(i int) bool {
	_, ok := s.Slot(i)
	return ok
}

func (s *Session) BothLoaded() bool { return s.Loaded(1) && s.Loaded(2) }

// Populate replaces slot i wholesale.
func (s *Session) Populate(i int, slot Slot) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	cp := slot
	s.slots[i-1] = &cp
	return nil
}

// SyncNormalized overwrites slot i's normalized text with live pane content.
// It returns false when the slot is empty.
func (s *Session) SyncNormalized(i int, text string) bool {
	if !ValidIndex(i) || s.slots[i-1] == nil {
		return false
	}
	s.slots[i-1].NormalizedText = text
	return true
}

// Reset empties both slots.
func (s *Session) Reset() {
	s.slots = [2]*Slot{}
}

func (s *Session) Comparing() bool { return s.comparing }
