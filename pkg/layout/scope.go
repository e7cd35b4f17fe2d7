// Package layout provides deferred bounds constraints.
//
// A Constraint is a stored function over an explicit Scope: the element's own
// bounds plus its parent's, its preceding sibling's, and its already declared
// children's. The engine runs an element's constraint list in order whenever
// the caller asks for it, so sizing that depends on children can be resolved
// by running the list once before children are declared and again after.
// There is no automatic fixed-point iteration.
//
// Absent neighbours are nil. Constraints skip what is absent; they never fail.
package layout

import "github.com/go-drift/frameui/pkg/graphics"

// Scope is the context a Constraint reads and writes.
type Scope struct {
	// Self is the element's own mutable bounds.
	Self *graphics.Rect
	// Parent is the parent element's bounds, or nil for a top-level layer root.
	Parent *graphics.Rect
	// Sibling is the preceding sibling's bounds, or nil for a first child.
	Sibling *graphics.Rect
	// Children holds the bounds of children declared so far this frame.
	Children []*graphics.Rect
}

// ChildrenBounds returns the union of all child bounds.
// ok is false when no child has been declared yet.
func (s Scope) ChildrenBounds() (bounds graphics.Rect, ok bool) {
	for _, c := range s.Children {
		if c == nil {
			continue
		}
		if !ok {
			bounds, ok = *c, true
			continue
		}
		bounds = bounds.Union(*c)
	}
	return bounds, ok
}

// Constraint computes part of an element's bounds.
type Constraint func(s Scope)

// Run executes constraints once, in order. Nil entries are skipped.
func Run(constraints []Constraint, s Scope) {
	if s.Self == nil {
		return
	}
	for _, c := range constraints {
		if c != nil {
			c(s)
		}
	}
}

// Flow selects a default placement strategy.
type Flow int

const (
	// FlowNone leaves bounds untouched.
	FlowNone Flow = iota
	// FlowVertical stacks children top to bottom across the parent's width.
	FlowVertical
	// FlowHorizontal lays children left to right across the parent's height.
	FlowHorizontal
)

// ParseFlow maps a config name to a Flow.
func ParseFlow(name string) (Flow, bool) {
	switch name {
	case "", "vertical":
		return FlowVertical, true
	case "horizontal":
		return FlowHorizontal, true
	case "none":
		return FlowNone, true
	}
	return FlowNone, false
}

func (f Flow) String() string {
	switch f {
	case FlowVertical:
		return "vertical"
	case FlowHorizontal:
		return "horizontal"
	default:
		return "none"
	}
}

// Defaults returns the default constraint list for a flow.
func Defaults(flow Flow, gap float64) []Constraint {
	switch flow {
	case FlowVertical:
		return []Constraint{FlowBelow(gap)}
	case FlowHorizontal:
		return []Constraint{FlowRight(gap)}
	default:
		return nil
	}
}
