package engine

import (
	"github.com/go-drift/frameui/pkg/input"
)

// focusTracker holds the one focused key across frames. Requests made while
// building frame N take effect at frame N's pre-render evaluation.
type focusTracker struct {
	focused    chainRecord
	requested  string
	hasRequest bool
	traverse   *traversal
	declared   map[string]*Element
	// order lists this frame's focusable elements in declaration order.
	order []*Element
	host  input.Host
}

func newFocusTracker(host input.Host) *focusTracker {
	return &focusTracker{declared: make(map[string]*Element), host: host}
}

func (f *focusTracker) beginFrame() {
	clear(f.declared)
	clear(f.order)
	f.order = f.order[:0]
}

// declare notes a focusable element built this frame.
func (f *focusTracker) declare(el *Element) {
	if el.flags.Has(Focusable) {
		f.declared[el.key] = el
		f.order = append(f.order, el)
	}
}

func (f *focusTracker) request(key string) {
	f.requested = key
	f.hasRequest = true
}

// clear drops focus and any pending request.
func (f *focusTracker) clear() {
	f.focused = chainRecord{}
	f.requested = ""
	f.hasRequest = false
	f.traverse = nil
}

// evaluate resolves the authoritative focus for the frame. The requested key,
// or the carried-over one, stays focused only if it was declared focusable
// this frame. A pending traversal applies when there is no explicit request.
// It returns the previous and new focused keys.
func (f *focusTracker) evaluate() (prev, next string) {
	prev = f.focused.key
	target := prev
	switch {
	case f.hasRequest:
		target = f.requested
	case f.traverse != nil:
		target = f.resolveTraversal(f.traverse, prev)
	}
	f.requested = ""
	f.hasRequest = false
	f.traverse = nil

	el := f.declared[target]
	if target == "" || el == nil {
		f.focused = chainRecord{}
		return prev, ""
	}
	f.focused = recordFor(el)
	if f.focused.key != prev && f.host != nil {
		f.host.RequestInputFocus(f.focused.key)
	}
	return prev, f.focused.key
}
