// Package scrollsync mirrors the scroll position of one pane onto another.
package scrollsync

// Viewport is a scrollable pane measured in lines (vertical) and cells
// (horizontal).
type Viewport interface {
	ScrollTop() int
	ScrollHeight() int
	ClientHeight() int
	ScrollLeft() int
	SetScrollTop(int)
	SetScrollLeft(int)
}

// Synchronizer holds the enabled flag and the re-entrancy guard. The guard
// set by Sync stays up until Release, which callers invoke on the next frame
// so the scroll event produced by the mirrored write is ignored.
type Synchronizer struct {
	enabled bool
	syncing bool
}

func New(enabled bool) *Synchronizer { return &Synchronizer{enabled: enabled} }

func (s *Synchronizer) SetEnabled(v bool) { s.enabled = v }

// Sync copies origin's position onto other. It returns false (and does
// nothing) when disabled or while the guard is up; on true the caller must
// schedule Release for the next frame.
func (s *Synchronizer) Sync(origin, other Viewport) bool {
	if !s.enabled || s.syncing {
		return false
	}
	s.syncing = true

	otherRange := other.ScrollHeight() - other.ClientHeight()
	if scrollRange(origin) > 0 && otherRange > 0 {
		other.SetScrollTop(int(Fraction(origin)*float64(otherRange) + 0.5))
	} else {
		other.SetScrollTop(origin.ScrollTop())
	}
	other.SetScrollLeft(origin.ScrollLeft())
	return true
}

// Release drops the guard.
func (s *Synchronizer) Release() { s.syncing = false }

// Fraction is the proportional position of v: top/(height-client) when the
// scrollable range is positive, otherwise the raw top.
func Fraction(v Viewport) float64 {
	if rng := scrollRange(v); rng > 0 {
		return float64(v.ScrollTop()) / float64(rng)
	}
	return float64(v.ScrollTop())
}

func scrollRange(v Viewport) int { return v.ScrollHeight() - v.ClientHeight() }
