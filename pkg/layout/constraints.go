package layout

import (
	"math"

	"github.com/go-drift/frameui/pkg/graphics"
)

// Fixed sets the element's extent.
func Fixed(w, h float64) Constraint {
	return func(s Scope) {
		s.Self.W, s.Self.H = w, h
	}
}

// At places the element at (dx, dy) relative to its parent's origin, or at
// absolute (dx, dy) when there is no parent.
func At(dx, dy float64) Constraint {
	return func(s Scope) {
		if s.Parent == nil {
			s.Self.X, s.Self.Y = dx, dy
			return
		}
		s.Self.X, s.Self.Y = s.Parent.X+dx, s.Parent.Y+dy
	}
}

// FillParent copies the parent's bounds.
func FillParent() Constraint {
	return func(s Scope) {
		if s.Parent != nil {
			*s.Self = *s.Parent
		}
	}
}

// Inset shrinks the element by amount on every side.
func Inset(amount float64) Constraint {
	return func(s Scope) {
		*s.Self = s.Self.Inset(amount)
	}
}

// FlowBelow stacks the element under its preceding sibling (or at the
// parent's top edge) and stretches it across the parent's width.
func FlowBelow(gap float64) Constraint {
	return func(s Scope) {
		if s.Parent != nil {
			s.Self.X = s.Parent.X
			s.Self.W = s.Parent.W
			s.Self.Y = s.Parent.Y
		}
		if s.Sibling != nil {
			s.Self.Y = s.Sibling.Bottom() + gap
		}
	}
}

// FlowRight places the element right of its preceding sibling (or at the
// parent's left edge) and stretches it across the parent's height.
func FlowRight(gap float64) Constraint {
	return func(s Scope) {
		if s.Parent != nil {
			s.Self.Y = s.Parent.Y
			s.Self.H = s.Parent.H
			s.Self.X = s.Parent.X
		}
		if s.Sibling != nil {
			s.Self.X = s.Sibling.Right() + gap
		}
	}
}

// FitChildren grows or shrinks the element so its right and bottom edges sit
// padding beyond the union of its children. With no children it does nothing.
func FitChildren(padding float64) Constraint {
	return func(s Scope) {
		u, ok := s.ChildrenBounds()
		if !ok {
			return
		}
		s.Self.W = math.Max(0, u.Right()+padding-s.Self.X)
		s.Self.H = math.Max(0, u.Bottom()+padding-s.Self.Y)
	}
}

// FitText sizes the element to the measured text plus padding on each side.
func FitText(text string, style graphics.TextStyle, padding float64) Constraint {
	return func(s Scope) {
		m := graphics.MeasureText(text, style)
		s.Self.W = m.Size.Width + 2*padding
		s.Self.H = m.Size.Height + 2*padding
	}
}

// Center centers the element inside its parent without changing its extent.
func Center() Constraint {
	return func(s Scope) {
		if s.Parent == nil {
			return
		}
		c := s.Parent.Center()
		s.Self.X = c.X - s.Self.W/2
		s.Self.Y = c.Y - s.Self.H/2
	}
}
