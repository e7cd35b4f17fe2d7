package engine

import (
	"slices"

	"github.com/go-drift/frameui/pkg/errors"
)

// Layer is an independently z-ordered floating region with its own root
// element. Layers persist across frames while they keep being declared.
type Layer struct {
	key    string
	root   *Element
	zIndex int
	seen   bool
	frame  uint64
	stack  []*Element
}

// Key returns the layer's qualified key, which is also its root's key.
func (l *Layer) Key() string {
	return l.key
}

// ZIndex returns the layer's position in the draw order, 0 at the bottom.
func (l *Layer) ZIndex() int {
	return l.zIndex
}

// Root returns the root element declared for the layer this frame.
func (l *Layer) Root() *Element {
	return l.root
}

func (l *Layer) top() *Element {
	return l.stack[len(l.stack)-1]
}

// layerStack tracks every live layer, the draw order, and the layers
// currently open for declaration.
type layerStack struct {
	byKey map[string]*Layer
	order []*Layer
	open  []*Layer
}

func newLayerStack() *layerStack {
	return &layerStack{byKey: make(map[string]*Layer)}
}

// acquire returns the layer for key, creating it on top of the draw order.
func (s *layerStack) acquire(key string, frame uint64) *Layer {
	l := s.byKey[key]
	if l == nil {
		l = &Layer{key: key}
		s.byKey[key] = l
		s.order = append(s.order, l)
		s.renumber()
	}
	l.seen = true
	l.frame = frame
	return l
}

func (s *layerStack) push(l *Layer) {
	s.open = append(s.open, l)
}

func (s *layerStack) pop() {
	s.open = s.open[:len(s.open)-1]
}

// current returns the innermost open layer, or nil.
func (s *layerStack) current() *Layer {
	if n := len(s.open); n > 0 {
		return s.open[n-1]
	}
	return nil
}

// mustCurrent returns the innermost open layer or faults.
func (s *layerStack) mustCurrent(op string) *Layer {
	l := s.current()
	if l == nil {
		errors.Fault(op, errors.KindLayer, "", errors.ErrNoLayer)
	}
	return l
}

// bringToFront moves l to the top of the draw order. O(n) in live layers.
func (s *layerStack) bringToFront(l *Layer) {
	i := slices.Index(s.order, l)
	if i < 0 || i == len(s.order)-1 {
		return
	}
	s.order = append(slices.Delete(s.order, i, i+1), l)
	s.renumber()
}

// expire removes layers not declared since the previous call and clears the
// declared marks for the next check. It returns the removed keys.
func (s *layerStack) expire() []string {
	var removed []string
	s.order = slices.DeleteFunc(s.order, func(l *Layer) bool {
		if l.seen {
			return false
		}
		removed = append(removed, l.key)
		delete(s.byKey, l.key)
		return true
	})
	for _, l := range s.order {
		l.seen = false
	}
	if len(removed) > 0 {
		s.renumber()
	}
	return removed
}

func (s *layerStack) renumber() {
	for i, l := range s.order {
		l.zIndex = i
	}
}

// drawn returns the layers declared in frame, bottom to top.
func (s *layerStack) drawn(frame uint64) []*Layer {
	out := make([]*Layer, 0, len(s.order))
	for _, l := range s.order {
		if l.frame == frame {
			out = append(out, l)
		}
	}
	return out
}
