package graphics

import "math"

// Offset represents a 2D point or vector in logical pixels.
type Offset struct {
	X float64
	Y float64
}

// Add returns the sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Size represents width and height dimensions in logical pixels.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned box described by its origin and extent.
// Element bounds are Rects and are mutated in place by layout constraints
// and widget painters.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// RectFromLTRB constructs a Rect from left, top, right, bottom edges.
func RectFromLTRB(left, top, right, bottom float64) Rect {
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Size returns the extent of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.W, Height: r.H}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Offset {
	return Offset{X: r.X, Y: r.Y}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Offset {
	return Offset{X: r.X + r.W*0.5, Y: r.Y + r.H*0.5}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies inside the rectangle. The left and top edges
// are inclusive, the right and bottom edges exclusive, so an empty rectangle
// contains nothing and abutting rectangles never share a point.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X < r.X+r.W && p.Y < r.Y+r.H
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Inset returns the rectangle shrunk by the given amount on every side.
// The extent never goes negative.
func (r Rect) Inset(amount float64) Rect {
	return Rect{
		X: r.X + amount,
		Y: r.Y + amount,
		W: math.Max(0, r.W-2*amount),
		H: math.Max(0, r.H-2*amount),
	}
}

// Union returns the smallest rectangle containing both r and other.
// An empty operand is ignored.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return RectFromLTRB(
		math.Min(r.X, other.X),
		math.Min(r.Y, other.Y),
		math.Max(r.Right(), other.Right()),
		math.Max(r.Bottom(), other.Bottom()),
	)
}
