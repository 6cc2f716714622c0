package mstring

import "fmt"

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindBounds       ErrKind = iota // index, offset or length outside its range
	ErrKindNullArgument                // required argument missing
	ErrKindEncoding                    // unknown character encoding name
	ErrKindConflict                    // processor id already registered
	ErrKindNotActive                   // engine not initialized or already closed
	ErrKindNotFound                    // processor id not registered
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindBounds:
		return "bounds"
	case ErrKindNullArgument:
		return "null argument"
	case ErrKindEncoding:
		return "encoding"
	case ErrKindConflict:
		return "conflict"
	case ErrKindNotActive:
		return "not active"
	case ErrKindNotFound:
		return "not found"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause. Bounds errors
// carry the single offending value.
type Error struct {
	Kind  ErrKind
	Msg   string
	Value int   // offending index or length (ErrKindBounds only)
	Err   error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrBounds) holds
// for every bounds error regardless of its value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t != nil && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	// ErrBounds indicates an index, offset or length outside its valid range.
	ErrBounds = &Error{Kind: ErrKindBounds, Msg: "mstring: index out of range"}
	// ErrNullArgument indicates a required argument was absent.
	ErrNullArgument = &Error{Kind: ErrKindNullArgument, Msg: "mstring: missing argument"}
	// ErrEncoding indicates an unrecognized character encoding name.
	ErrEncoding = &Error{Kind: ErrKindEncoding, Msg: "mstring: unsupported encoding"}
	// ErrConflict indicates a processor id that is already registered.
	ErrConflict = &Error{Kind: ErrKindConflict, Msg: "mstring: processor already registered"}
	// ErrNotActive indicates the engine is not initialized or has been closed.
	ErrNotActive = &Error{Kind: ErrKindNotActive, Msg: "mstring: engine is not active"}
	// ErrNotFound indicates a processor id that is not registered.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "mstring: processor not found"}
)

func boundsError(v int) error {
	return &Error{Kind: ErrKindBounds, Msg: fmt.Sprintf("mstring: index out of range: %d", v), Value: v}
}

func nullArgument(name string) error {
	return &Error{Kind: ErrKindNullArgument, Msg: "mstring: missing argument " + name}
}

func encodingError(name string, cause error) error {
	return &Error{Kind: ErrKindEncoding, Msg: fmt.Sprintf("mstring: unsupported encoding %q", name), Err: cause}
}
