package engine

import (
	"strings"

	"github.com/go-drift/frameui/pkg/graphics"
	"github.com/go-drift/frameui/pkg/layout"
)

// Flags is a bit-set of per-element declaration flags.
type Flags uint32

const (
	// Focusable lets the element take keyboard focus.
	Focusable Flags = 1 << iota
	// Persistent keeps the element's state alive while it is not declared.
	Persistent

	// FlagUser is the first bit free for host-defined flags.
	FlagUser
)

// Has reports whether every bit of other is set.
func (f Flags) Has(other Flags) bool {
	return f&other == other
}

func (f Flags) String() string {
	var parts []string
	if f.Has(Focusable) {
		parts = append(parts, "focusable")
	}
	if f.Has(Persistent) {
		parts = append(parts, "persistent")
	}
	if f&^(Focusable|Persistent) != 0 {
		parts = append(parts, "user")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Element is one node of the per-frame tree. Records come from the pool and
// are only valid for the frame that provisioned them; never keep one past
// Render. Identity across frames is Key.
type Element struct {
	key      string
	name     string
	bounds   graphics.Rect
	flags    Flags
	layer    *Layer
	parent   *Element
	sibling  *Element
	children []*Element
	draw     graphics.Recorder

	constraints []layout.Constraint
	frame       uint64
}

func (el *Element) reset() {
	el.key = ""
	el.name = ""
	el.bounds = graphics.Rect{}
	el.flags = 0
	el.layer = nil
	el.parent = nil
	el.sibling = nil
	clear(el.children)
	el.children = el.children[:0]
	el.draw.Reset()
	el.constraints = nil
	el.frame = 0
}

// Key returns the qualified key.
func (el *Element) Key() string {
	return el.key
}

// Name returns the local key segment the element was declared with.
func (el *Element) Name() string {
	return el.name
}

// Bounds returns the element's mutable bounds.
func (el *Element) Bounds() *graphics.Rect {
	return &el.bounds
}

// Flags returns the declaration flags.
func (el *Element) Flags() Flags {
	return el.flags
}

// Layer returns the layer the element belongs to.
func (el *Element) Layer() *Layer {
	return el.layer
}

// ZIndex returns the z-index of the element's layer.
func (el *Element) ZIndex() int {
	if el.layer == nil {
		return 0
	}
	return el.layer.zIndex
}

// Parent returns the parent element, or nil for a top-level layer root.
// A floating layer's root has the element that opened the layer as parent.
func (el *Element) Parent() *Element {
	return el.parent
}

// Children returns the children declared so far, in declaration order.
func (el *Element) Children() []*Element {
	return el.children
}

// IsLayerRoot reports whether the element is the root of its layer.
func (el *Element) IsLayerRoot() bool {
	return el.layer != nil && el.layer.root == el
}

// Canvas returns the element's draw buffer. Commands recorded here are
// replayed onto the backend at Render.
func (el *Element) Canvas() graphics.Canvas {
	return &el.draw
}

// sameLayerAncestors calls fn for each ancestor in the element's own layer,
// nearest first, stopping at the layer boundary or when fn returns false.
func (el *Element) sameLayerAncestors(fn func(*Element) bool) {
	for a := el.parent; a != nil && a.layer == el.layer; a = a.parent {
		if !fn(a) {
			return
		}
	}
}

// ancestorChains splits el's ancestors into those in el's layer and those
// reached after crossing into another layer.
func (el *Element) ancestorChains() (sameLayer, crossLayer []string) {
	crossed := false
	for a := el.parent; a != nil; a = a.parent {
		if a.layer != el.layer {
			crossed = true
		}
		if crossed {
			crossLayer = append(crossLayer, a.key)
		} else {
			sameLayer = append(sameLayer, a.key)
		}
	}
	return sameLayer, crossLayer
}
