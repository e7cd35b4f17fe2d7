package engine

import (
	"github.com/go-drift/frameui/pkg/graphics"
	"github.com/go-drift/frameui/pkg/layout"
)

// SetConstraints replaces the current element's constraint list, overriding
// the engine default. It does not run them; call CalculateLayout.
func (e *Engine) SetConstraints(constraints ...layout.Constraint) {
	el := e.mustCurrent("engine.SetConstraints")
	el.constraints = constraints
}

// AddConstraints appends to the current element's constraint list, which
// starts as the engine default.
func (e *Engine) AddConstraints(constraints ...layout.Constraint) {
	el := e.mustCurrent("engine.AddConstraints")
	list := make([]layout.Constraint, 0, len(el.constraints)+len(constraints))
	list = append(list, el.constraints...)
	el.constraints = append(list, constraints...)
}

// CalculateLayout runs the current element's constraint list once, in order.
// It may be called any number of times while the element is building, for
// example once before declaring children and again afterwards so that
// constraints reading child bounds see them.
func (e *Engine) CalculateLayout() {
	el := e.mustCurrent("engine.CalculateLayout")
	layout.Run(el.constraints, scopeFor(el))
}

func scopeFor(el *Element) layout.Scope {
	s := layout.Scope{Self: &el.bounds}
	if el.parent != nil {
		s.Parent = &el.parent.bounds
	}
	if el.sibling != nil {
		s.Sibling = &el.sibling.bounds
	}
	if len(el.children) > 0 {
		s.Children = make([]*graphics.Rect, len(el.children))
		for i, c := range el.children {
			s.Children[i] = &c.bounds
		}
	}
	return s
}
