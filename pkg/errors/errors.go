// Package errors provides structured error handling for the frameui engine.
//
// Contract violations (unbalanced begin/end, duplicate sibling keys, queries
// with no element building, and so on) are caller bugs. They are reported to
// the global ErrorHandler and then raised as a *FrameError panic, aborting the
// current frame's declaration. Hosts that prefer a returned error wrap a frame
// in Catch.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindIdentity indicates a key stack fault (duplicate sibling key, empty pop).
	KindIdentity
	// KindBalance indicates mismatched begin/end calls.
	KindBalance
	// KindQuery indicates a query made with no element on the build stack.
	KindQuery
	// KindFocus indicates a focus call on an element that cannot take focus.
	KindFocus
	// KindState indicates a state component name collision.
	KindState
	// KindLayer indicates a layer stack fault.
	KindLayer
	// KindFrame indicates a frame boundary reached in an invalid state.
	KindFrame
	// KindPanic indicates a recovered panic that was not a frame fault.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindIdentity:
		return "identity"
	case KindBalance:
		return "balance"
	case KindQuery:
		return "query"
	case KindFocus:
		return "focus"
	case KindState:
		return "state"
	case KindLayer:
		return "layer"
	case KindFrame:
		return "frame"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel causes carried in FrameError.Err. Match them with errors.Is.
var (
	ErrDuplicateKey       = stderrors.New("duplicate sibling key")
	ErrEmptyKeyStack      = stderrors.New("pop on empty key stack")
	ErrKeyStackNotEmpty   = stderrors.New("key stack not empty at frame boundary")
	ErrUnbalanced         = stderrors.New("unbalanced begin/end")
	ErrEndLayerRoot       = stderrors.New("endElement called on a layer root")
	ErrNoLayer            = stderrors.New("no layer is open")
	ErrNoCurrentElement   = stderrors.New("no element is currently building")
	ErrNotFocusable       = stderrors.New("element is not focusable")
	ErrComponentCollision = stderrors.New("state component name declared by two keys")
	ErrFrameOpen          = stderrors.New("frame still has open layers")
)

// FrameError represents a contract violation raised by the engine.
type FrameError struct {
	// Op is the operation that failed (e.g., "engine.EndElement").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Key is the qualified element or layer key involved, if any.
	Key string
	// Err is the underlying cause, usually one of the sentinels above.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *FrameError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s [%s] key=%s: %v", e.Op, e.Kind, e.Key, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "cmd.replay").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the engine.
type ErrorHandler interface {
	// HandleError is called when a contract violation is raised.
	HandleError(err *FrameError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Fault reports a contract violation to the global handler and panics with it.
// It never returns.
func Fault(op string, kind ErrorKind, key string, cause error) {
	err := &FrameError{
		Op:         op,
		Kind:       kind,
		Key:        key,
		Err:        cause,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
	Report(err)
	panic(err)
}

// AsFrameError extracts a *FrameError from err's chain.
func AsFrameError(err error) (*FrameError, bool) {
	var fe *FrameError
	if stderrors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
