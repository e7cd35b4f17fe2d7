package testing

import (
	"testing"

	"github.com/go-drift/frameui/pkg/engine"
	"github.com/go-drift/frameui/pkg/errors"
	"github.com/go-drift/frameui/pkg/input"
)

// TestingT is the subset of *testing.T used by the assertion helpers,
// allowing test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// FrameTester drives an engine frame by frame against private input
// watchers and a recording backend.
type FrameTester struct {
	engine   *engine.Engine
	canvas   *serializingCanvas
	pointer  *input.Pointer
	keyboard *input.Keyboard
	window   *input.Window
	requests []string
	last     engine.FrameStats
}

// NewFrameTester creates a tester. Backend, watchers and Host in opts are
// replaced by the tester's own.
func NewFrameTester(opts engine.Options) *FrameTester {
	t := &FrameTester{
		canvas:   &serializingCanvas{},
		pointer:  &input.Pointer{},
		keyboard: &input.Keyboard{},
		window:   &input.Window{},
	}
	opts.Backend = t.canvas
	opts.Pointer = t.pointer
	opts.Keyboard = t.keyboard
	opts.Window = t.window
	opts.Host = input.HostFunc(func(key string) {
		t.requests = append(t.requests, key)
	})
	t.engine = engine.New(opts)
	return t
}

// NewFrameTesterWithT creates a tester and silences fault reporting for the
// duration of the test. This is the recommended constructor for tests.
func NewFrameTesterWithT(t *testing.T, opts engine.Options) *FrameTester {
	errors.SetHandler(errors.DiscardHandler{})
	t.Cleanup(func() { errors.SetHandler(nil) })
	return NewFrameTester(opts)
}

// Engine returns the engine under test.
func (t *FrameTester) Engine() *engine.Engine {
	return t.engine
}

// Frame declares one frame with fn and renders it. Draw ops from the
// previous frame are discarded first. A fault raised by fn propagates.
func (t *FrameTester) Frame(fn func(e *engine.Engine)) engine.FrameStats {
	t.canvas.reset()
	if fn != nil {
		fn(t.engine)
	}
	t.last = t.engine.Render()
	return t.last
}

// TryFrame is Frame that returns a fault as an error and aborts the broken
// frame so the tester stays usable.
func (t *FrameTester) TryFrame(fn func(e *engine.Engine)) (engine.FrameStats, error) {
	var stats engine.FrameStats
	err := errors.Catch("frametest.TryFrame", func() {
		stats = t.Frame(fn)
	})
	if err != nil {
		t.engine.Abort()
	}
	return stats, err
}

// LastStats returns the stats of the last rendered frame.
func (t *FrameTester) LastStats() engine.FrameStats {
	return t.last
}

// Ops returns the draw ops the last frame replayed onto the backend.
func (t *FrameTester) Ops() []DisplayOp {
	return t.canvas.ops
}

// OpNames returns just the op names of the last frame, in order.
func (t *FrameTester) OpNames() []string {
	names := make([]string, len(t.canvas.ops))
	for i, op := range t.canvas.ops {
		names[i] = op.Op
	}
	return names
}

// FocusRequests returns every key the engine asked the host to route
// keyboard input to, oldest first.
func (t *FrameTester) FocusRequests() []string {
	return t.requests
}

// MovePointer moves the pointer onto the surface at (x, y).
func (t *FrameTester) MovePointer(x, y float64) {
	t.pointer.Move(x, y)
}

// LeavePointer moves the pointer off the surface.
func (t *FrameTester) LeavePointer() {
	t.pointer.Leave()
}

// Press presses the primary button.
func (t *FrameTester) Press() {
	t.pointer.Press()
}

// Release releases the primary button.
func (t *FrameTester) Release() {
	t.pointer.Release()
}

// KeyDown queues a key press for the next frame.
func (t *FrameTester) KeyDown(key string) {
	t.keyboard.KeyDown(key)
}

// KeyUp queues a key release for the next frame.
func (t *FrameTester) KeyUp(key string) {
	t.keyboard.KeyUp(key)
}

// Type queues typed characters for the next frame.
func (t *FrameTester) Type(s string) {
	for _, r := range s {
		t.keyboard.Type(r)
	}
}

// BlurWindow records a host window blur.
func (t *FrameTester) BlurWindow() {
	t.window.Blur()
}

// ExpectFault runs fn and asserts it raises a frame fault of kind. It
// returns the fault, or nil after reporting a failure.
func ExpectFault(t TestingT, kind errors.ErrorKind, fn func()) *errors.FrameError {
	t.Helper()
	err := errors.Catch("frametest.ExpectFault", fn)
	if err == nil {
		t.Errorf("expected %s fault, got none", kind)
		return nil
	}
	fe, ok := errors.AsFrameError(err)
	if !ok {
		t.Errorf("expected %s fault, got %v", kind, err)
		return nil
	}
	if fe.Kind != kind {
		t.Errorf("expected %s fault, got %s: %v", kind, fe.Kind, fe)
	}
	return fe
}
