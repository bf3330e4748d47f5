package ingest

import (
	"net/url"
	"strings"

	"github.com/google/shlex"

	"proofdiff/internal/failure"
)

// DroppedPath extracts the first file path from text a terminal pastes when
// files are dragged onto it. Terminals shell-quote paths with spaces and
// some send file:// URLs. Only the first path is used.
func DroppedPath(pasted string) (string, error) {
	pasted = strings.TrimSpace(pasted)
	if pasted == "" {
		return "", failure.New(failure.ReadFailure, "no file detected")
	}
	fields, err := shlex.Split(pasted)
	if err != nil || len(fields) == 0 {
		// unbalanced quotes: fall back to the first line as-is
		fields = []string{strings.SplitN(pasted, "\n", 2)[0]}
	}
	first := strings.TrimSpace(fields[0])
	if strings.HasPrefix(first, "file://") {
		if u, err := url.Parse(first); err == nil && u.Path != "" {
			first = u.Path
		}
	}
	if first == "" {
		return "", failure.New(failure.ReadFailure, "no file detected")
	}
	return first, nil
}
