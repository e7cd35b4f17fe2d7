package engine

import (
	"github.com/go-drift/frameui/pkg/errors"
)

// keySeparator joins key segments into a qualified key.
const keySeparator = "/"

// keyNode mirrors one open segment. Its children are the segments currently
// open directly under it.
type keyNode struct {
	children map[string]struct{}
}

func (n *keyNode) has(segment string) bool {
	_, ok := n.children[segment]
	return ok
}

func (n *keyNode) add(segment string) {
	if n.children == nil {
		n.children = make(map[string]struct{})
	}
	n.children[segment] = struct{}{}
}

// keyStack builds qualified keys and detects duplicate sibling keys.
type keyStack struct {
	segments []string
	paths    []string
	nodes    []*keyNode
	free     []*keyNode
}

func newKeyStack() *keyStack {
	return &keyStack{nodes: []*keyNode{{}}}
}

// push extends the current path. Pushing a segment that is still open under
// the same parent is a duplicate-key fault. Once a sibling has been popped its
// segment may be declared again.
func (k *keyStack) push(segment string) string {
	top := k.nodes[len(k.nodes)-1]
	path := segment
	if n := len(k.paths); n > 0 {
		path = k.paths[n-1] + keySeparator + segment
	}
	if top.has(segment) {
		errors.Fault("engine.push", errors.KindIdentity, path, errors.ErrDuplicateKey)
	}
	top.add(segment)

	k.segments = append(k.segments, segment)
	k.paths = append(k.paths, path)
	k.nodes = append(k.nodes, k.node())
	return path
}

// pop removes the top segment from the path and from its parent's open set.
func (k *keyStack) pop() {
	if len(k.segments) == 0 {
		errors.Fault("engine.pop", errors.KindIdentity, "", errors.ErrEmptyKeyStack)
	}
	last := len(k.nodes) - 1
	node := k.nodes[last]
	clear(node.children)
	k.free = append(k.free, node)
	k.nodes = k.nodes[:last]
	delete(k.nodes[last-1].children, k.segments[len(k.segments)-1])
	k.segments = k.segments[:len(k.segments)-1]
	k.paths = k.paths[:len(k.paths)-1]
}

func (k *keyStack) node() *keyNode {
	if n := len(k.free); n > 0 {
		node := k.free[n-1]
		k.free = k.free[:n-1]
		return node
	}
	return &keyNode{}
}

// qualifiedKey returns the current path, or "" when nothing is open.
func (k *keyStack) qualifiedKey() string {
	if n := len(k.paths); n > 0 {
		return k.paths[n-1]
	}
	return ""
}

func (k *keyStack) depth() int {
	return len(k.segments)
}

// endFrame asserts the stack and its mirror tree are empty.
func (k *keyStack) endFrame() {
	if len(k.segments) != 0 || len(k.nodes[0].children) != 0 {
		errors.Fault("engine.Render", errors.KindFrame, k.qualifiedKey(), errors.ErrKeyStackNotEmpty)
	}
}

// reset discards everything, used when a faulted frame is abandoned.
func (k *keyStack) reset() {
	*k = *newKeyStack()
}
