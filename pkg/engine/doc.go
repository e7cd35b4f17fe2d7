// Package engine is the frame-lifecycle core of frameui.
//
// The host describes its interface every frame with nested begin/end calls
// keyed by strings:
//
//	e.BeginLayer("window")
//	e.SetConstraints(layout.At(20, 20), layout.Fixed(200, 120))
//	e.CalculateLayout()
//
//	e.BeginElement("ok", engine.Focusable)
//	e.CalculateLayout()
//	if e.Clicked() {
//	    e.FocusElement()
//	}
//	e.EndElement()
//
//	e.EndLayer()
//	stats := e.Render()
//
// No element object survives the frame in the caller's hands. Identity across
// frames is the element's qualified key, the '/'-joined path of keys from the
// outermost layer down. Hover, focus and per-element state are looked up by
// that key.
//
// # Frame phases
//
// A frame starts at the first declaration after the previous Render. Frame
// start expires layers that were not redeclared, and samples the pointer and
// keyboard watchers. During declaration every Begin/End call fans out to the
// key stack, the element pool, the layer stack, hit testing, focus and state
// bookkeeping in that order. Render then resolves the hovered element and the
// focused element against the fully built tree, replays every element's draw
// buffer onto the backend (layers bottom to top, elements in pre-order),
// expires state, and sweeps the pool.
//
// Hover and focus queries made while building frame N answer with the result
// resolved at the end of frame N-1.
//
// # Faults
//
// Contract violations (unbalanced calls, duplicate sibling keys, queries with
// no element building, focusing a non-focusable element, state component name
// collisions) raise a *errors.FrameError panic. Use errors.Catch to turn one
// into an error and Abort to discard the broken frame.
//
// An Engine is not safe for concurrent use. Host event listeners write to the
// pkg/input watchers instead, which are.
package engine
