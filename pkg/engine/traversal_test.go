package engine

import (
	"testing"
)

// grid declares a 2x2 grid of 10x10 focusable cells spaced 20 apart:
//
//	a b
//	c d
func grid(e *Engine) func() {
	return func() {
		e.BeginLayer("win")
		for i, name := range []string{"a", "b", "c", "d"} {
			e.BeginElement(name, Focusable)
			place(e, float64(i%2)*20, float64(i/2)*20, 10, 10)
			e.EndElement()
		}
		e.EndLayer()
	}
}

func focused(e *Engine) string {
	key, _ := e.FocusedKey()
	return key
}

func TestMoveFocus_Linear(t *testing.T) {
	e := newTestEngine(t, noFlow)
	decl := grid(e)

	e.MoveFocus(1)
	frame(e, decl)
	if got := focused(e); got != "win/a" {
		t.Fatalf("first move focused %q, want win/a", got)
	}

	var got []string
	for n := 0; n < 4; n++ {
		e.MoveFocus(1)
		frame(e, decl)
		got = append(got, focused(e))
	}
	want := []string{"win/b", "win/c", "win/d", "win/a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("forward traversal = %v, want %v", got, want)
		}
	}

	e.MoveFocus(-1)
	frame(e, decl)
	if got := focused(e); got != "win/d" {
		t.Errorf("backward from a focused %q, want win/d (wrap)", got)
	}
}

func TestMoveFocus_BackwardFromNothingStartsAtLast(t *testing.T) {
	e := newTestEngine(t, noFlow)
	e.MoveFocus(-1)
	frame(e, grid(e))
	if got := focused(e); got != "win/d" {
		t.Errorf("focused %q, want win/d", got)
	}
}

func TestMoveFocus_ExplicitRequestWins(t *testing.T) {
	e := newTestEngine(t, noFlow)
	e.MoveFocus(1)
	frame(e, func() {
		e.BeginLayer("win")
		e.BeginElement("a", Focusable)
		e.EndElement()
		e.BeginElement("b", Focusable)
		e.FocusElement()
		e.EndElement()
		e.EndLayer()
	})
	if got := focused(e); got != "win/b" {
		t.Errorf("focused %q, want win/b", got)
	}
}

func TestMoveFocus_NoFocusables(t *testing.T) {
	e := newTestEngine(t, noFlow)
	e.MoveFocus(1)
	frame(e, func() {
		e.BeginLayer("win")
		e.BeginElement("label")
		e.EndElement()
		e.EndLayer()
	})
	if got := focused(e); got != "" {
		t.Errorf("focused %q, want none", got)
	}
}

func TestFocusInDirection(t *testing.T) {
	e := newTestEngine(t, noFlow)
	decl := grid(e)
	steps := []struct {
		dir  TraversalDirection
		want string
	}{
		{TraversalRight, "win/a"}, // nothing focused: linear start
		{TraversalRight, "win/b"},
		{TraversalDown, "win/d"},
		{TraversalLeft, "win/c"},
		{TraversalUp, "win/a"},
		{TraversalUp, "win/d"}, // nothing above a: linear step back wraps
	}
	for i, step := range steps {
		e.FocusInDirection(step.dir)
		frame(e, decl)
		if got := focused(e); got != step.want {
			t.Fatalf("step %d (%s): focused %q, want %q", i, step.dir, got, step.want)
		}
	}
}

func TestFocusInDirection_PrefersAligned(t *testing.T) {
	e := newTestEngine(t, noFlow)
	decl := func() {
		e.BeginLayer("win")
		e.BeginElement("src", Focusable)
		place(e, 0, 0, 10, 10)
		if e.Frame() == 1 {
			e.FocusElement()
		}
		e.EndElement()
		// Closer along the axis but far off to the side.
		e.BeginElement("diag", Focusable)
		place(e, 15, 30, 10, 10)
		e.EndElement()
		e.BeginElement("aligned", Focusable)
		place(e, 40, 0, 10, 10)
		e.EndElement()
		e.EndLayer()
	}
	frame(e, decl)
	e.FocusInDirection(TraversalRight)
	frame(e, decl)
	if got := focused(e); got != "win/aligned" {
		t.Errorf("focused %q, want win/aligned", got)
	}
}

func TestBlurDropsPendingTraversal(t *testing.T) {
	e := newTestEngine(t, noFlow)
	e.MoveFocus(1)
	e.Blur()
	frame(e, grid(e))
	if got := focused(e); got != "" {
		t.Errorf("focused %q, want none", got)
	}
}

func TestParseTraversalDirection(t *testing.T) {
	for _, d := range []TraversalDirection{TraversalUp, TraversalDown, TraversalLeft, TraversalRight} {
		got, ok := ParseTraversalDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseTraversalDirection(%q) = %v, %v", d, got, ok)
		}
	}
	if _, ok := ParseTraversalDirection("sideways"); ok {
		t.Error("expected unknown direction to fail")
	}
}
