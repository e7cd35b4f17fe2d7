package engine

import (
	"slices"

	"github.com/go-drift/frameui/pkg/graphics"
	"github.com/go-drift/frameui/pkg/input"
)

// TieBreak selects the winner between two surviving hover candidates on the
// same layer, which only happens for unrelated overlapping elements.
type TieBreak int

const (
	// TieBreakLast picks the candidate recorded last, i.e. the one drawn on top.
	TieBreakLast TieBreak = iota
	// TieBreakFirst picks the candidate recorded first.
	TieBreakFirst
)

// ParseTieBreak maps a config name to a TieBreak.
func ParseTieBreak(name string) (TieBreak, bool) {
	switch name {
	case "", "last":
		return TieBreakLast, true
	case "first":
		return TieBreakFirst, true
	}
	return TieBreakLast, false
}

func (t TieBreak) String() string {
	if t == TieBreakFirst {
		return "first"
	}
	return "last"
}

// chainRecord is a resolved target plus its ancestor keys, split at the
// first layer boundary crossed.
type chainRecord struct {
	key        string
	sameLayer  []string
	crossLayer []string
}

func recordFor(el *Element) chainRecord {
	if el == nil {
		return chainRecord{}
	}
	same, cross := el.ancestorChains()
	return chainRecord{key: el.key, sameLayer: same, crossLayer: cross}
}

func (r chainRecord) is(key string) bool {
	return r.key != "" && r.key == key
}

func (r chainRecord) hasChild(key string) bool {
	return slices.Contains(r.sameLayer, key)
}

func (r chainRecord) hasFloatingChild(key string) bool {
	return slices.Contains(r.crossLayer, key)
}

// hitTester records pointer-containing candidates while the tree is built and
// resolves the single hovered element once the frame is complete.
type hitTester struct {
	pointer    input.PointerState
	candidates []*Element
	hovered    chainRecord
	tieBreak   TieBreak
}

func (h *hitTester) beginFrame(pointer input.PointerState) {
	h.pointer = pointer
	clear(h.candidates)
	h.candidates = h.candidates[:0]
}

// record runs on EndElement, before any of el's ancestors are recorded, so
// their bounds may still change and are not consulted. The element becomes a
// candidate when it contains the pointer and no same-layer descendant is a
// candidate reaching it through ancestors that contain the pointer.
func (h *hitTester) record(el *Element) {
	if !h.pointer.Inside || !el.bounds.Contains(h.pointer.Position) {
		return
	}
	for _, c := range h.candidates {
		if c.layer == el.layer && containsUpTo(c, el, h.pointer.Position) {
			return
		}
	}
	h.candidates = append(h.candidates, el)
}

// resolve re-validates candidates against final bounds and picks the one on
// the highest layer. Only candidates from layers declared this frame count.
// Within a layer a descendant beats its ancestor; otherwise tieBreak decides.
func (h *hitTester) resolve(frame uint64) *Element {
	var best *Element
	for _, c := range h.candidates {
		if c.layer == nil || c.layer.frame != frame {
			continue
		}
		if !containsWithAncestors(c, h.pointer.Position) {
			continue
		}
		switch {
		case best == nil:
			best = c
		case c.layer.zIndex > best.layer.zIndex:
			best = c
		case c.layer.zIndex < best.layer.zIndex:
		case isSameLayerAncestor(best, c):
			best = c
		case isSameLayerAncestor(c, best):
		case h.tieBreak == TieBreakLast:
			best = c
		}
	}
	h.hovered = recordFor(best)
	return best
}

func containsWithAncestors(el *Element, p graphics.Offset) bool {
	if !el.bounds.Contains(p) {
		return false
	}
	inside := true
	el.sameLayerAncestors(func(a *Element) bool {
		inside = a.bounds.Contains(p)
		return inside
	})
	return inside
}

// containsUpTo reports whether el is a same-layer descendant of ancestor whose
// bounds, and those of every ancestor strictly between the two, contain p.
func containsUpTo(el, ancestor *Element, p graphics.Offset) bool {
	if !el.bounds.Contains(p) {
		return false
	}
	found := false
	el.sameLayerAncestors(func(a *Element) bool {
		if a == ancestor {
			found = true
			return false
		}
		return a.bounds.Contains(p)
	})
	return found
}

// isSameLayerAncestor reports whether a is a same-layer ancestor of el.
func isSameLayerAncestor(a, el *Element) bool {
	found := false
	el.sameLayerAncestors(func(p *Element) bool {
		found = p == a
		return !found
	})
	return found
}
