package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/frameui/pkg/errors"
	"github.com/go-drift/frameui/pkg/input"
)

func TestFocus_EndToEnd(t *testing.T) {
	e := newTestEngine(t, noFlow)
	var aFocused, bFocused, rootChild bool
	decl := func(focusA bool) {
		e.BeginLayer("win")
		e.BeginElement("a", Focusable)
		if focusA {
			e.FocusElement()
		}
		aFocused = e.IsElementFocused()
		e.EndElement()
		e.BeginElement("b", Focusable)
		bFocused = e.IsElementFocused()
		e.EndElement()
		rootChild = e.IsChildFocused()
		e.EndLayer()
	}

	frame(e, func() { decl(true) })
	if aFocused {
		t.Error("focus requests take effect at render, not immediately")
	}
	frame(e, func() { decl(false) })
	if !aFocused || bFocused || !rootChild {
		t.Errorf("a=%v b=%v rootChild=%v, want true false true", aFocused, bFocused, rootChild)
	}
}

func TestFocus_PersistsWhileRedeclared(t *testing.T) {
	e := newTestEngine(t, noFlow)
	foo := func(request bool) func() {
		return func() {
			e.BeginLayer("win")
			e.BeginElement("foo", Focusable)
			if request {
				e.FocusElement()
			}
			e.EndElement()
			e.EndLayer()
		}
	}
	empty := func() {
		e.BeginLayer("win")
		e.EndLayer()
	}

	frame(e, foo(true))
	frame(e, foo(false))
	if key, ok := e.FocusedKey(); !ok || key != "win/foo" {
		t.Fatalf("FocusedKey() = %q, %v; want win/foo", key, ok)
	}

	frame(e, empty)
	var focused bool
	frame(e, func() {
		e.BeginLayer("win")
		e.BeginElement("foo", Focusable)
		focused = e.IsElementFocused()
		e.EndElement()
		e.EndLayer()
	})
	if focused {
		t.Error("omitting the focused element for a frame must clear focus")
	}
}

func TestFocus_RequestForUndeclaredKeyClears(t *testing.T) {
	e := newTestEngine(t, noFlow)
	frame(e, func() {
		e.BeginLayer("win")
		e.BeginElement("a", Focusable)
		e.FocusElement()
		e.EndElement()
		e.EndLayer()
	})
	// The last request wins even when it names a key not declared this frame.
	frame(e, func() {
		e.BeginLayer("win")
		e.BeginElement("b", Focusable)
		e.FocusElement()
		e.EndElement()
		e.EndLayer()
		e.focus.request("win/missing")
	})
	if _, ok := e.FocusedKey(); ok {
		t.Error("expected focus to clear for a key not declared this frame")
	}
}

func TestFocus_HostNotifiedOnTransition(t *testing.T) {
	var requests []string
	opts := noFlow
	opts.Host = input.HostFunc(func(key string) { requests = append(requests, key) })
	e := newTestEngine(t, opts)

	decl := func(target string) func() {
		return func() {
			e.BeginLayer("win")
			for _, k := range []string{"a", "b"} {
				e.BeginElement(k, Focusable)
				if k == target {
					e.FocusElement()
				}
				e.EndElement()
			}
			e.EndLayer()
		}
	}
	frame(e, decl("a"))
	frame(e, decl(""))
	frame(e, decl("a"))
	frame(e, decl("b"))

	if diff := cmp.Diff([]string{"win/a", "win/b"}, requests); diff != "" {
		t.Errorf("host requests mismatch (-want +got):\n%s", diff)
	}
}

func TestFocus_Blur(t *testing.T) {
	e := newTestEngine(t, noFlow)
	decl := func(request bool) func() {
		return func() {
			e.BeginLayer("win")
			e.BeginElement("a", Focusable)
			if request {
				e.FocusElement()
			}
			e.EndElement()
			e.EndLayer()
		}
	}
	frame(e, decl(true))
	e.Blur()
	if _, ok := e.FocusedKey(); ok {
		t.Fatal("Blur must clear focus immediately")
	}

	frame(e, decl(true))
	e.Window().Blur()
	frame(e, decl(false))
	if _, ok := e.FocusedKey(); ok {
		t.Error("window blur must clear focus")
	}

	// A blur arriving mid-frame drops the pending request as well.
	frame(e, func() {
		decl(true)()
		e.Window().Blur()
	})
	if _, ok := e.FocusedKey(); ok {
		t.Error("blur sampled at pre-render must win over a pending request")
	}
}

func TestFocus_FloatingChild(t *testing.T) {
	e := newTestEngine(t, noFlow)
	var floating, child bool
	decl := func(request bool) func() {
		return func() {
			e.BeginLayer("win")
			e.BeginElement("combo")
			e.BeginLayer("list")
			e.BeginElement("option", Focusable)
			if request {
				e.FocusElement()
			}
			e.EndElement()
			e.EndLayer()
			floating, child = e.IsFloatingChildFocused(), e.IsChildFocused()
			e.EndElement()
			e.EndLayer()
		}
	}
	frame(e, decl(true))
	frame(e, decl(false))
	if !floating || child {
		t.Errorf("floating=%v child=%v, want true false", floating, child)
	}
}

func TestFocus_Faults(t *testing.T) {
	e := newTestEngine(t, noFlow)

	expectFault(t, errors.KindQuery, errors.ErrNoCurrentElement, func() { e.IsChildFocused() })
	expectFault(t, errors.KindQuery, errors.ErrNoCurrentElement, func() { e.IsFloatingChildFocused() })
	expectFault(t, errors.KindQuery, errors.ErrNoCurrentElement, func() { e.FocusElement() })

	expectFault(t, errors.KindFocus, errors.ErrNotFocusable, func() {
		e.BeginLayer("win")
		e.BeginElement("label")
		e.FocusElement()
	})
	e.Abort()
	expectFault(t, errors.KindFocus, errors.ErrNotFocusable, func() {
		e.BeginLayer("win")
		e.IsElementFocused()
	})
	e.Abort()
}

func TestFocus_KeyEventsOnlyForFocused(t *testing.T) {
	e := newTestEngine(t, noFlow)
	var aEvents, bEvents []input.KeyEvent
	decl := func(request bool) func() {
		return func() {
			e.BeginLayer("win")
			e.BeginElement("a", Focusable)
			if request {
				e.FocusElement()
			}
			aEvents = e.FocusedKeyEvents()
			e.EndElement()
			e.BeginElement("b", Focusable)
			bEvents = e.FocusedKeyEvents()
			e.EndElement()
			e.EndLayer()
		}
	}
	frame(e, decl(true))
	e.Keyboard().KeyDown("Enter")
	frame(e, decl(false))

	want := []input.KeyEvent{{Key: "Enter", Down: true}}
	if diff := cmp.Diff(want, aEvents); diff != "" {
		t.Errorf("focused events mismatch (-want +got):\n%s", diff)
	}
	if bEvents != nil {
		t.Errorf("unfocused element got events %v", bEvents)
	}
}
