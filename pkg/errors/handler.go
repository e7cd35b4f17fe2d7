package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// handlerBox lets an interface value live behind an atomic.Pointer.
type handlerBox struct{ h ErrorHandler }

var handler atomic.Pointer[handlerBox]

func init() {
	SetHandler(nil)
}

// SetHandler configures the global error handler.
// Pass nil to restore the default, a non-verbose LogHandler.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handler.Store(&handlerBox{h: h})
}

func getHandler() ErrorHandler {
	return handler.Load().h
}

// Report sends an error to the global handler, stamping it if needed.
func Report(err *FrameError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	getHandler().HandleError(err)
}

// ReportPanic sends a panic error to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	getHandler().HandlePanic(err)
}

// Recover is a helper for deferred panic recovery.
// Frame faults were already reported when raised and are not reported again.
// Usage: defer errors.Recover("operation.name")
func Recover(op string) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
	}
}

// RecoverWithCallback is like Recover but also calls the provided callback
// with the panic value after reporting it.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
		if callback != nil {
			callback(r)
		}
	}
}

func reportRecovered(op string, r any) {
	if _, ok := r.(*FrameError); ok {
		return
	}
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

// Catch runs fn and converts a frame fault raised inside it into a returned
// error. Any other panic is reported and returned as a *PanicError.
func Catch(op string, fn func()) (err error) {
	defer RecoverWithCallback(op, func(r any) {
		if fe, ok := r.(*FrameError); ok {
			err = fe
			return
		}
		err = &PanicError{Op: op, Value: r, Timestamp: time.Now()}
	})
	fn()
	return nil
}

const stackDepth = 32

// CaptureStack returns the caller's stack, one "function\n\tfile:line" entry
// per frame. Frames inside this package and the runtime's panic machinery
// are left out, so a fault's trace starts at the engine call that raised it.
func CaptureStack() string {
	var pcs [stackDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if !skipFrame(frame.Function) {
			fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

func skipFrame(fn string) bool {
	if strings.HasPrefix(fn, "runtime.") {
		return true
	}
	// This package's own frames, but not its tests.
	pkg, name, ok := strings.Cut(fn, "/pkg/errors.")
	return ok && strings.HasSuffix(pkg, "/frameui") && !strings.HasPrefix(name, "Test")
}
