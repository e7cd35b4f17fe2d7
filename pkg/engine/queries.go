package engine

import (
	"github.com/go-drift/frameui/pkg/errors"
	"github.com/go-drift/frameui/pkg/input"
)

// HoversElement reports whether the current element was the hovered element
// resolved at the end of the previous frame.
func (e *Engine) HoversElement() bool {
	el := e.mustCurrent("engine.HoversElement")
	return e.hit.hovered.is(el.key)
}

// HoversChild reports whether the hovered element is a descendant of the
// current element within the same layer.
func (e *Engine) HoversChild() bool {
	el := e.mustCurrent("engine.HoversChild")
	return e.hit.hovered.hasChild(el.key)
}

// HoversFloatingChild reports whether the hovered element lives in a layer
// floating over the current element.
func (e *Engine) HoversFloatingChild() bool {
	el := e.mustCurrent("engine.HoversFloatingChild")
	return e.hit.hovered.hasFloatingChild(el.key)
}

// Pressed reports whether the current element is hovered while the primary
// button is held.
func (e *Engine) Pressed() bool {
	return e.HoversElement() && e.pointerState.Down
}

// Clicked reports whether the primary button was released over the current
// element since the previous frame.
func (e *Engine) Clicked() bool {
	return e.HoversElement() && e.pointerState.Released
}

// FocusElement asks for the current element to take focus at this frame's
// evaluation. The element must be Focusable.
func (e *Engine) FocusElement() {
	el := e.mustFocusable("engine.FocusElement")
	e.focus.request(el.key)
}

// IsElementFocused reports whether the current element holds focus. The
// element must be Focusable.
func (e *Engine) IsElementFocused() bool {
	el := e.mustFocusable("engine.IsElementFocused")
	return e.focus.focused.is(el.key)
}

// IsChildFocused reports whether a same-layer descendant of the current
// element holds focus.
func (e *Engine) IsChildFocused() bool {
	el := e.mustCurrent("engine.IsChildFocused")
	return e.focus.focused.hasChild(el.key)
}

// IsFloatingChildFocused reports whether the focused element lives in a layer
// floating over the current element.
func (e *Engine) IsFloatingChildFocused() bool {
	el := e.mustCurrent("engine.IsFloatingChildFocused")
	return e.focus.focused.hasFloatingChild(el.key)
}

// FocusedKeyEvents returns the key events sampled at the start of this frame
// when the current element holds focus, and nil otherwise.
func (e *Engine) FocusedKeyEvents() []input.KeyEvent {
	el := e.mustCurrent("engine.FocusedKeyEvents")
	if !e.focus.focused.is(el.key) {
		return nil
	}
	return e.keyEvents
}

func (e *Engine) mustFocusable(op string) *Element {
	el := e.mustCurrent(op)
	if !el.flags.Has(Focusable) {
		errors.Fault(op, errors.KindFocus, el.key, errors.ErrNotFocusable)
	}
	return el
}
