// Package debounce coalesces bursts of edits into a single deferred action.
//
// The Debouncer does not own timers. Schedule hands back a Ticket and the
// delay; the caller arranges for Fire(ticket) to be called after that delay
// (in the TUI, a tea.Tick). Only the most recent ticket fires.
package debounce

import (
	"sync"
	"time"
)

// State of the debouncer.
type State int

const (
	Idle State = iota
	Pending
)

func (s State) String() string {
	if s == Pending {
		return "pending"
	}
	return "idle"
}

// Ticket identifies one scheduled firing.
type Ticket uint64

type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	gen     Ticket
	pending bool
}

// New returns a debouncer whose default delay is d.
func New(d time.Duration) *Debouncer {
	return &Debouncer{delay: d}
}

// Delay is the default quiet period.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Schedule cancels any pending firing and schedules a new one after the
// default delay.
func (d *Debouncer) Schedule() (Ticket, time.Duration) {
	return d.ScheduleAfter(d.delay)
}

// ScheduleAfter is Schedule with an explicit delay.
func (d *Debouncer) ScheduleAfter(delay time.Duration) (Ticket, time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.pending = true
	return d.gen, delay
}

// Cancel drops the pending firing, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending {
		d.gen++
		d.pending = false
	}
}

// Fire reports whether t is the live ticket. A true result consumes it and
// returns the debouncer to Idle; stale or cancelled tickets return false.
func (d *Debouncer) Fire(t Ticket) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.pending || t != d.gen {
		return false
	}
	d.pending = false
	return true
}

// State returns Idle or Pending.
func (d *Debouncer) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending {
		return Pending
	}
	return Idle
}
