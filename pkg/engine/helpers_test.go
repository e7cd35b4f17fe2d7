package engine

import (
	"testing"

	"github.com/go-drift/frameui/pkg/errors"
	"github.com/go-drift/frameui/pkg/graphics"
	"github.com/go-drift/frameui/pkg/layout"
)

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	errors.SetHandler(errors.DiscardHandler{})
	t.Cleanup(func() { errors.SetHandler(nil) })
	return New(opts)
}

// place sets the current element's bounds in absolute coordinates.
func place(e *Engine, x, y, w, h float64) {
	*e.Bounds() = graphics.Rect{X: x, Y: y, W: w, H: h}
}

// frame declares fn and renders.
func frame(e *Engine, fn func()) FrameStats {
	fn()
	return e.Render()
}

func expectFault(t *testing.T, kind errors.ErrorKind, cause error, fn func()) {
	t.Helper()
	err := errors.Catch("test", fn)
	fe, ok := errors.AsFrameError(err)
	if !ok {
		t.Fatalf("expected %s fault, got %v", kind, err)
	}
	if fe.Kind != kind {
		t.Errorf("fault kind = %s, want %s (%v)", fe.Kind, kind, fe)
	}
	if cause != nil && !errors.Is(fe, cause) {
		t.Errorf("fault cause = %v, want %v", fe.Err, cause)
	}
}

// noFlow disables default placement so tests control bounds directly.
var noFlow = Options{DefaultConstraints: []layout.Constraint{}}
