package engine

import (
	"testing"

	"github.com/go-drift/frameui/pkg/errors"
)

func TestKeyStack_QualifiedKeys(t *testing.T) {
	k := newKeyStack()
	if got := k.push("win"); got != "win" {
		t.Errorf("push(win) = %q", got)
	}
	if got := k.push("row"); got != "win/row" {
		t.Errorf("push(row) = %q", got)
	}
	if k.qualifiedKey() != "win/row" || k.depth() != 2 {
		t.Errorf("qualifiedKey = %q depth = %d", k.qualifiedKey(), k.depth())
	}
	k.pop()
	k.pop()
	if k.qualifiedKey() != "" {
		t.Errorf("expected empty key, got %q", k.qualifiedKey())
	}
	k.endFrame()
}

func TestKeyStack_ReuseAfterSiblingEnds(t *testing.T) {
	k := newKeyStack()
	k.push("win")
	for n := 0; n < 2; n++ {
		if got := k.push("a"); got != "win/a" {
			t.Errorf("push(a) = %q", got)
		}
		k.pop()
	}
	if len(k.nodes[1].children) != 0 {
		t.Errorf("mirror tree still holds %v after pop", k.nodes[1].children)
	}
	k.pop()
	k.endFrame()
}

func TestKeyStack_DuplicateOpenSiblingFaults(t *testing.T) {
	errors.SetHandler(errors.DiscardHandler{})
	defer errors.SetHandler(nil)

	k := newKeyStack()
	k.push("win")
	// Mark a sibling "a" as still open under win.
	k.nodes[1].add("a")
	expectFault(t, errors.KindIdentity, errors.ErrDuplicateKey, func() {
		k.push("a")
	})
}

func TestKeyStack_ReuseUnderAnotherParent(t *testing.T) {
	k := newKeyStack()
	k.push("win")
	for _, parent := range []string{"a", "b"} {
		k.push(parent)
		k.push("x")
		k.pop()
		k.pop()
	}
	k.pop()
	k.endFrame()

	// The next frame may declare the same keys again.
	k.push("win")
	k.push("a")
	k.pop()
	k.pop()
	k.endFrame()
}

func TestKeyStack_PopEmptyFaults(t *testing.T) {
	errors.SetHandler(errors.DiscardHandler{})
	defer errors.SetHandler(nil)

	expectFault(t, errors.KindIdentity, errors.ErrEmptyKeyStack, func() {
		newKeyStack().pop()
	})
}

func TestKeyStack_EndFrameAssertsEmpty(t *testing.T) {
	errors.SetHandler(errors.DiscardHandler{})
	defer errors.SetHandler(nil)

	k := newKeyStack()
	k.push("win")
	expectFault(t, errors.KindFrame, errors.ErrKeyStackNotEmpty, k.endFrame)

	k.reset()
	k.endFrame()
}
