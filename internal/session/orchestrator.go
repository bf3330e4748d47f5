package session

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"proofdiff/internal/backend"
	"proofdiff/internal/debounce"
	"proofdiff/internal/failure"
	"proofdiff/internal/textdiff"
)

// ErrBusy is returned by Start while a comparison is in flight.
var ErrBusy = errors.New("a comparison is already running")

// Pair is the text pair sent to the comparator.
type Pair struct {
	Text1, Text2 string
}

// Live returns the pane text of slot i within p.
func (p Pair) Live(i int) string {
	if i == 2 {
		return p.Text2
	}
	return p.Text1
}

// Schedule asks the caller to call Due(Ticket) after Delay. A zero value
// (OK false) means nothing was scheduled.
type Schedule struct {
	OK     bool
	Ticket debounce.Ticket
	Delay  time.Duration
}

// Orchestrator sequences loads, edits and comparisons over a Session.
type Orchestrator struct {
	sess      *Session
	be        backend.Backend
	deb       *debounce.Debouncer
	loadDelay time.Duration
	log       zerolog.Logger
}

// NewOrchestrator wires a session to a backend. deb carries the edit quiet
// period; loadDelay is the pause between a load completing and the
// automatic comparison.
func NewOrchestrator(sess *Session, be backend.Backend, deb *debounce.Debouncer, loadDelay time.Duration, log zerolog.Logger) *Orchestrator {
	if sess == nil {
		sess = New()
	}
	return &Orchestrator{
		sess:      sess,
		be:        be,
		deb:       deb,
		loadDelay: loadDelay,
		log:       log.With().Str("component", "orchestrator").Logger(),
	}
}

func (o *Orchestrator) Session() *Session { return o.sess }

func (o *Orchestrator) Backend() backend.Backend { return o.be }

// Loaded stores a freshly loaded document in slot i. When both slots are
// then populated, a comparison is scheduled after the load delay.
func (o *Orchestrator) Loaded(i int, slot Slot) (Schedule, error) {
	if err := o.sess.Populate(i, slot); err != nil {
		return Schedule{}, err
	}
	o.log.Info().Int("slot", i).Str("file", slot.SourceName).Msg("document loaded")
	if !o.sess.BothLoaded() {
		return Schedule{}, nil
	}
	tk, d := o.deb.ScheduleAfter(o.loadDelay)
	return Schedule{OK: true, Ticket: tk, Delay: d}, nil
}

// Edited handles a change to pane i. While a comparison is in flight the
// edit is ignored entirely. Otherwise the slot is synced, any pending
// comparison is cancelled, and a new one is scheduled if both slots are
// populated.
func (o *Orchestrator) Edited(i int, live string) Schedule {
	if o.sess.Comparing() {
		return Schedule{}
	}
	o.sess.SyncNormalized(i, live)
	o.deb.Cancel()
	if !o.sess.BothLoaded() {
		return Schedule{}
	}
	tk, d := o.deb.Schedule()
	return Schedule{OK: true, Ticket: tk, Delay: d}
}

// Due reports whether a scheduled ticket is still live.
func (o *Orchestrator) Due(t debounce.Ticket) bool { return o.deb.Fire(t) }

// Pending reports whether a comparison is scheduled.
func (o *Orchestrator) Pending() bool { return o.deb.State() == debounce.Pending }

// Start checks preconditions, syncs live pane content into both slots and
// raises the comparing flag. Every successful Start must be paired with
// Finish.
func (o *Orchestrator) Start(live1, live2 string) (Pair, error) {
	if o.sess.Comparing() {
		return Pair{}, ErrBusy
	}
	if !o.sess.BothLoaded() {
		return Pair{}, failure.New(failure.PreconditionFailure, "load both documents before comparing")
	}
	o.sess.SyncNormalized(1, live1)
	o.sess.SyncNormalized(2, live2)
	o.deb.Cancel()
	o.sess.comparing = true
	return Pair{Text1: live1, Text2: live2}, nil
}

// Run calls the comparator. It does not touch session state, so it may run
// off the UI goroutine.
func (o *Orchestrator) Run(ctx context.Context, p Pair) (textdiff.Result, error) {
	start := time.Now()
	resp, err := o.be.Compare(ctx, backend.CompareRequest{Text1: p.Text1, Text2: p.Text2})
	if err != nil {
		if failure.KindOf(err) == failure.Unknown {
			err = failure.Wrap(failure.TransportFailure, err, "comparison request failed")
		}
		o.log.Error().Err(err).Msg("compare call failed")
		return textdiff.Result{}, err
	}
	if err := resp.Err(); err != nil {
		o.log.Warn().Err(err).Msg("compare rejected")
		return textdiff.Result{}, err
	}
	o.log.Debug().Dur("took", time.Since(start)).Msg("compare done")
	return textdiff.Result{Left: resp.Diffs1, Right: resp.Diffs2}, nil
}

// Finish lowers the comparing flag.
func (o *Orchestrator) Finish() { o.sess.comparing = false }

// Compare is Start, Run and Finish in one call, using the slots' stored
// normalized text.
func (o *Orchestrator) Compare(ctx context.Context) (textdiff.Result, error) {
	s1, _ := o.sess.Slot(1)
	s2, _ := o.sess.Slot(2)
	p, err := o.Start(s1.NormalizedText, s2.NormalizedText)
	if err != nil {
		return textdiff.Result{}, err
	}
	defer o.Finish()
	return o.Run(ctx, p)
}

// Reset clears both slots and drops any pending comparison.
func (o *Orchestrator) Reset() {
	o.deb.Cancel()
	o.sess.Reset()
	o.log.Info().Msg("session cleared")
}
