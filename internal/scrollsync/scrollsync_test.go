package scrollsync

import "testing"

type fakeView struct {
	top, height, client, left int
	writes                    int
}

func (f *fakeView) ScrollTop() int      { return f.top }
func (f *fakeView) ScrollHeight() int   { return f.height }
func (f *fakeView) ClientHeight() int   { return f.client }
func (f *fakeView) ScrollLeft() int     { return f.left }
func (f *fakeView) SetScrollTop(v int)  { f.top = v; f.writes++ }
func (f *fakeView) SetScrollLeft(v int) { f.left = v }

func TestProportionalSync(t *testing.T) {
	a := &fakeView{top: 50, height: 120, client: 20, left: 3}
	b := &fakeView{height: 220, client: 20}
	s := New(true)
	if !s.Sync(a, b) {
		t.Fatalf("expected sync to apply")
	}
	if b.top != 100 {
		t.Fatalf("want top 100 (half of 200), got %d", b.top)
	}
	if b.left != 3 {
		t.Fatalf("horizontal offset not mirrored: %d", b.left)
	}
}

func TestGuardSuppressesEcho(t *testing.T) {
	a := &fakeView{top: 10, height: 110, client: 10}
	b := &fakeView{height: 110, client: 10}
	s := New(true)
	s.Sync(a, b)
	// the write to b fires b's scroll handler before the next frame
	if s.Sync(b, a) {
		t.Fatalf("echo should be suppressed while syncing")
	}
	if a.writes != 0 {
		t.Fatalf("origin must not be written back")
	}
	s.Release()
	if !s.Sync(b, a) {
		t.Fatalf("sync should apply after release")
	}
}

func TestRawTopWhenNotScrollable(t *testing.T) {
	a := &fakeView{top: 4, height: 30, client: 10}
	b := &fakeView{height: 5, client: 10}
	s := New(true)
	s.Sync(a, b)
	if b.top != 4 {
		t.Fatalf("want raw top 4, got %d", b.top)
	}
}

func TestDisabled(t *testing.T) {
	a := &fakeView{top: 4, height: 30, client: 10}
	b := &fakeView{height: 30, client: 10}
	s := New(false)
	if s.Sync(a, b) || b.writes != 0 {
		t.Fatalf("disabled synchronizer must not write")
	}
	s.SetEnabled(true)
	if !s.Sync(a, b) || b.top != 4 {
		t.Fatalf("re-enabled synchronizer should mirror, got top %d", b.top)
	}
}

func TestFraction(t *testing.T) {
	if f := Fraction(&fakeView{top: 25, height: 60, client: 10}); f != 0.5 {
		t.Fatalf("fraction = %v", f)
	}
	if f := Fraction(&fakeView{top: 3, height: 5, client: 10}); f != 3 {
		t.Fatalf("raw fraction = %v", f)
	}
}
