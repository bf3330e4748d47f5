package textdiff

import (
	"fmt"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

const (
	EngineDifflib = "difflib"
	EngineDMP     = "dmp"
)

// Engine compares two texts.
type Engine interface {
	Name() string
	Compare(a, b string) Result
}

// Options tune engine construction.
type Options struct {
	SemanticCleanup bool
	Timeout         time.Duration
}

// New returns the engine registered under name.
func New(name string, opts Options) (Engine, error) {
	switch strings.ToLower(name) {
	case "", EngineDifflib:
		return Difflib{}, nil
	case EngineDMP:
		return DMP{SemanticCleanup: opts.SemanticCleanup, Timeout: opts.Timeout}, nil
	default:
		return nil, fmt.Errorf("unknown diff engine %q", name)
	}
}

// Difflib uses SequenceMatcher opcodes over runes.
type Difflib struct{}

func (Difflib) Name() string { return EngineDifflib }

func (Difflib) Compare(a, b string) Result {
	ra, rb := []rune(a), []rune(b)
	m := difflib.NewMatcher(runeStrings(ra), runeStrings(rb))
	var res Result
	for _, op := range m.GetOpCodes() {
		left := string(ra[op.I1:op.I2])
		right := string(rb[op.J1:op.J2])
		switch op.Tag {
		case 'e':
			res.Left = appendSeg(res.Left, left, Equal)
			res.Right = appendSeg(res.Right, right, Equal)
		case 'd':
			res.Left = appendSeg(res.Left, left, Delete)
		case 'i':
			res.Right = appendSeg(res.Right, right, Insert)
		case 'r':
			res.Left = appendSeg(res.Left, left, Replace)
			res.Right = appendSeg(res.Right, right, Replace)
		}
	}
	return res
}

func runeStrings(rs []rune) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

// DMP uses diff-match-patch. A delete adjacent to an insert becomes a
// replace on both sides.
type DMP struct {
	SemanticCleanup bool
	Timeout         time.Duration
}

func (DMP) Name() string { return EngineDMP }

func (e DMP) Compare(a, b string) Result {
	d := dmp.New()
	if e.Timeout > 0 {
		d.DiffTimeout = e.Timeout
	}
	diffs := d.DiffMain(a, b, false)
	if e.SemanticCleanup {
		diffs = d.DiffCleanupSemantic(diffs)
	}

	var res Result
	var del, ins strings.Builder
	flush := func() {
		switch {
		case del.Len() > 0 && ins.Len() > 0:
			res.Left = appendSeg(res.Left, del.String(), Replace)
			res.Right = appendSeg(res.Right, ins.String(), Replace)
		case del.Len() > 0:
			res.Left = appendSeg(res.Left, del.String(), Delete)
		case ins.Len() > 0:
			res.Right = appendSeg(res.Right, ins.String(), Insert)
		}
		del.Reset()
		ins.Reset()
	}
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffDelete:
			del.WriteString(df.Text)
		case dmp.DiffInsert:
			ins.WriteString(df.Text)
		case dmp.DiffEqual:
			flush()
			res.Left = appendSeg(res.Left, df.Text, Equal)
			res.Right = appendSeg(res.Right, df.Text, Equal)
		}
	}
	flush()
	return res
}
