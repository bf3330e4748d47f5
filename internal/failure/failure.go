package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a user-visible failure.
type Kind int

const (
	Unknown Kind = iota
	UnsupportedFormat
	ReadFailure
	BackendRejection
	TransportFailure
	PreconditionFailure
)

func (k Kind) String() string {
	switch k {
	case UnsupportedFormat:
		return "unsupported format"
	case ReadFailure:
		return "read failure"
	case BackendRejection:
		return "backend rejection"
	case TransportFailure:
		return "transport failure"
	case PreconditionFailure:
		return "precondition failure"
	default:
		return "unknown"
	}
}

// NeedsAck reports whether the failure must be acknowledged by the user
// (a blocking dialog) in addition to the status line.
func (k Kind) NeedsAck() bool {
	switch k {
	case BackendRejection, TransportFailure, PreconditionFailure:
		return true
	}
	return false
}

// Error is a classified failure. Message is what the user sees.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a failure of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err. A nil err yields nil.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// Message returns the text shown to the user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Error()
	}
	return err.Error()
}

// Is reports whether err is a failure of the given kind.
func Is(err error, kind Kind) bool { return KindOf(err) == kind }
