package engine

import (
	"fmt"
	"math"

	"github.com/go-drift/frameui/pkg/graphics"
)

// TraversalDirection indicates a directional focus move.
type TraversalDirection int

const (
	// TraversalUp moves focus upward.
	TraversalUp TraversalDirection = iota
	// TraversalDown moves focus downward.
	TraversalDown
	// TraversalLeft moves focus leftward.
	TraversalLeft
	// TraversalRight moves focus rightward.
	TraversalRight
)

func (d TraversalDirection) String() string {
	switch d {
	case TraversalUp:
		return "up"
	case TraversalDown:
		return "down"
	case TraversalLeft:
		return "left"
	case TraversalRight:
		return "right"
	default:
		return fmt.Sprintf("TraversalDirection(%d)", int(d))
	}
}

// ParseTraversalDirection maps "up", "down", "left" or "right".
func ParseTraversalDirection(name string) (TraversalDirection, bool) {
	switch name {
	case "up":
		return TraversalUp, true
	case "down":
		return TraversalDown, true
	case "left":
		return TraversalLeft, true
	case "right":
		return TraversalRight, true
	}
	return 0, false
}

// traversal is a pending focus move, resolved against the focusable
// elements of the frame being rendered.
type traversal struct {
	delta       int
	direction   TraversalDirection
	directional bool
}

// MoveFocus moves focus delta places through this frame's focusable
// elements in declaration order, wrapping at either end. With nothing
// focused, a positive delta starts from the first element and a negative one
// from the last. The move is resolved at Render; an explicit FocusElement
// request in the same frame wins.
func (e *Engine) MoveFocus(delta int) {
	if delta == 0 {
		return
	}
	e.focus.traverse = &traversal{delta: delta}
}

// FocusInDirection moves focus to the nearest focusable element whose center
// lies in the given direction, preferring elements aligned with the focused
// one. It falls back to linear order when nothing is focused, the focused
// element has no area, or no element lies that way.
func (e *Engine) FocusInDirection(direction TraversalDirection) {
	e.focus.traverse = &traversal{direction: direction, directional: true}
}

// resolveTraversal picks the traversal target among the focusable elements
// declared this frame. It returns "" when there are none.
func (f *focusTracker) resolveTraversal(t *traversal, current string) string {
	if len(f.order) == 0 {
		return ""
	}
	if t.directional {
		if target := f.directionalTarget(t.direction, current); target != "" {
			return target
		}
		return f.linearTarget(linearDelta(t.direction), current)
	}
	return f.linearTarget(t.delta, current)
}

func (f *focusTracker) linearTarget(delta int, current string) string {
	count := len(f.order)
	index := -1
	for i, el := range f.order {
		if el.key == current {
			index = i
			break
		}
	}
	if index < 0 && delta < 0 {
		index = count
	}
	return f.order[wrapIndex(index+delta, count)].key
}

func (f *focusTracker) directionalTarget(direction TraversalDirection, current string) string {
	el := f.declared[current]
	if el == nil || !hasArea(el.bounds) {
		return ""
	}
	var best string
	bestScore := math.MaxFloat64
	for _, candidate := range f.order {
		if candidate == el || !hasArea(candidate.bounds) {
			continue
		}
		if !isInDirection(el.bounds, candidate.bounds, direction) {
			continue
		}
		if score := directionalScore(el.bounds, candidate.bounds, direction); score < bestScore {
			bestScore = score
			best = candidate.key
		}
	}
	return best
}

func hasArea(r graphics.Rect) bool {
	return r.W > 0 && r.H > 0
}

func linearDelta(direction TraversalDirection) int {
	if direction == TraversalUp || direction == TraversalLeft {
		return -1
	}
	return 1
}

func isInDirection(source, target graphics.Rect, direction TraversalDirection) bool {
	s, t := source.Center(), target.Center()
	switch direction {
	case TraversalUp:
		return t.Y < s.Y
	case TraversalDown:
		return t.Y > s.Y
	case TraversalLeft:
		return t.X < s.X
	case TraversalRight:
		return t.X > s.X
	}
	return false
}

// directionalScore is lower for better targets. Cross-axis distance weighs
// double so aligned elements win over closer diagonal ones.
func directionalScore(source, target graphics.Rect, direction TraversalDirection) float64 {
	s, t := source.Center(), target.Center()
	var primary, cross float64
	switch direction {
	case TraversalUp, TraversalDown:
		primary, cross = math.Abs(t.Y-s.Y), math.Abs(t.X-s.X)
	case TraversalLeft, TraversalRight:
		primary, cross = math.Abs(t.X-s.X), math.Abs(t.Y-s.Y)
	}
	return primary + cross*2
}

func wrapIndex(index, count int) int {
	index %= count
	if index < 0 {
		index += count
	}
	return index
}
