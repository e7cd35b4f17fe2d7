package engine

import (
	"github.com/go-drift/frameui/pkg/errors"
	"github.com/go-drift/frameui/pkg/graphics"
)

// BeginLayer opens the layer key, creating it on top of the draw order if it
// did not exist, and makes its root element current. A layer begun while an
// element is building floats over that element: the root's parent is the
// element, which sees the layer through HoversFloatingChild and
// IsFloatingChildFocused.
func (e *Engine) BeginLayer(key string) {
	e.ensureFrame()
	anchor := e.Current()

	qkey := e.keys.push(key)
	layer := e.layers.acquire(qkey, e.frame)
	root := e.pool.provision(qkey, e.frame)
	root.key = qkey
	root.name = key
	root.layer = layer
	root.parent = anchor
	root.constraints = e.defaults

	layer.root = root
	layer.stack = append(layer.stack[:0], root)
	e.layers.push(layer)
	e.declared(root)
}

// EndLayer closes the innermost layer. Every element opened inside it must
// have been ended.
func (e *Engine) EndLayer() {
	layer := e.layers.mustCurrent("engine.EndLayer")
	if len(layer.stack) != 1 {
		errors.Fault("engine.EndLayer", errors.KindBalance, layer.top().key, errors.ErrUnbalanced)
	}
	e.hit.record(layer.root)
	layer.stack = layer.stack[:0]
	e.layers.pop()
	e.keys.pop()
}

// BringToFront moves the innermost open layer to the top of the draw order.
func (e *Engine) BringToFront() {
	layer := e.layers.mustCurrent("engine.BringToFront")
	e.layers.bringToFront(layer)
}

// BeginElement declares a child of the current element in the innermost
// open layer and makes it current.
func (e *Engine) BeginElement(key string, flags ...Flags) {
	layer := e.layers.mustCurrent("engine.BeginElement")
	parent := layer.top()

	qkey := e.keys.push(key)
	el := e.pool.provision(qkey, e.frame)
	el.key = qkey
	el.name = key
	for _, f := range flags {
		el.flags |= f
	}
	el.layer = layer
	el.parent = parent
	if n := len(parent.children); n > 0 {
		el.sibling = parent.children[n-1]
	}
	parent.children = append(parent.children, el)
	el.constraints = e.defaults

	layer.stack = append(layer.stack, el)
	e.declared(el)
}

// EndElement closes the current element. Ending a layer's root this way, or
// ending with nothing open, is a fault.
func (e *Engine) EndElement() {
	layer := e.layers.mustCurrent("engine.EndElement")
	if len(layer.stack) <= 1 {
		errors.Fault("engine.EndElement", errors.KindBalance, layer.key, errors.ErrEndLayerRoot)
	}
	el := layer.top()
	e.hit.record(el)
	layer.stack = layer.stack[:len(layer.stack)-1]
	e.keys.pop()
}

// declared fans a newly begun element out to the services that track it.
func (e *Engine) declared(el *Element) {
	e.stats.Elements++
	e.focus.declare(el)
	e.state.observe(el, e.frame)
}

// Current returns the element on top of the innermost open layer's build
// stack, or nil when nothing is building.
func (e *Engine) Current() *Element {
	layer := e.layers.current()
	if layer == nil || len(layer.stack) == 0 {
		return nil
	}
	return layer.top()
}

func (e *Engine) mustCurrent(op string) *Element {
	el := e.Current()
	if el == nil {
		errors.Fault(op, errors.KindQuery, "", errors.ErrNoCurrentElement)
	}
	return el
}

// Bounds returns the current element's mutable bounds.
func (e *Engine) Bounds() *graphics.Rect {
	return e.mustCurrent("engine.Bounds").Bounds()
}

// Canvas returns the current element's draw buffer.
func (e *Engine) Canvas() graphics.Canvas {
	return e.mustCurrent("engine.Canvas").Canvas()
}
