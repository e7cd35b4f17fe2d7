package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/frameui/pkg/errors"
)

func declareLayers(e *Engine, keys ...string) {
	for _, k := range keys {
		e.BeginLayer(k)
		e.EndLayer()
	}
}

func TestLayers_NewLayersGoOnTop(t *testing.T) {
	e := newTestEngine(t, noFlow)
	frame(e, func() { declareLayers(e, "a", "b", "c") })
	if diff := cmp.Diff([]string{"a", "b", "c"}, e.LayerOrder()); diff != "" {
		t.Errorf("layer order mismatch (-want +got):\n%s", diff)
	}
}

func TestLayers_BringToFrontInSequence(t *testing.T) {
	e := newTestEngine(t, noFlow)
	frame(e, func() { declareLayers(e, "L3", "L2", "L1", "base") })

	frame(e, func() {
		declareLayers(e, "base")
		for _, k := range []string{"L1", "L2", "L3"} {
			e.BeginLayer(k)
			e.BringToFront()
			e.EndLayer()
		}
	})
	if diff := cmp.Diff([]string{"base", "L1", "L2", "L3"}, e.LayerOrder()); diff != "" {
		t.Errorf("layer order mismatch (-want +got):\n%s", diff)
	}
}

func TestLayers_ExpireWhenNotRedeclared(t *testing.T) {
	e := newTestEngine(t, noFlow)
	frame(e, func() { declareLayers(e, "keep", "drop") })
	frame(e, func() { declareLayers(e, "keep") })

	stats := frame(e, func() { declareLayers(e, "keep") })
	if diff := cmp.Diff([]string{"drop"}, stats.ExpiredLayers); diff != "" {
		t.Errorf("expired layers mismatch (-want +got):\n%s", diff)
	}
	if e.HasLayer("drop") || !e.HasLayer("keep") {
		t.Errorf("unexpected layers %v", e.LayerOrder())
	}
}

func TestLayers_FloatingLayerParent(t *testing.T) {
	e := newTestEngine(t, noFlow)
	var anchor, popupRoot *Element
	frame(e, func() {
		e.BeginLayer("win")
		e.BeginElement("menu")
		anchor = e.Current()
		e.BeginLayer("popup")
		popupRoot = e.Current()
		e.EndLayer()
		e.EndElement()
		e.EndLayer()
	})
	if popupRoot.Parent() != anchor {
		t.Error("floating layer root should take the opening element as parent")
	}
	if len(anchor.Children()) != 0 {
		t.Error("floating layer root must not be listed among the anchor's children")
	}
	if popupRoot.Key() != "win/menu/popup" || !popupRoot.IsLayerRoot() {
		t.Errorf("unexpected popup root key %q", popupRoot.Key())
	}
	if popupRoot.ZIndex() <= anchor.ZIndex() {
		t.Error("floating layer should sit above its anchor's layer")
	}
}

func TestLayers_Faults(t *testing.T) {
	e := newTestEngine(t, noFlow)

	expectFault(t, errors.KindLayer, errors.ErrNoLayer, func() { e.BeginElement("a") })
	e.Abort()
	expectFault(t, errors.KindLayer, errors.ErrNoLayer, func() { e.EndLayer() })
	e.Abort()
	expectFault(t, errors.KindBalance, errors.ErrEndLayerRoot, func() {
		e.BeginLayer("win")
		e.EndElement()
	})
	e.Abort()
	expectFault(t, errors.KindBalance, errors.ErrUnbalanced, func() {
		e.BeginLayer("win")
		e.BeginElement("a")
		e.EndLayer()
	})
	e.Abort()
	expectFault(t, errors.KindFrame, errors.ErrFrameOpen, func() {
		e.BeginLayer("win")
		e.Render()
	})
	e.Abort()

	frame(e, func() { declareLayers(e, "win") })
}

func TestTree_RepeatedSiblingKeyAfterEnd(t *testing.T) {
	e := newTestEngine(t, noFlow)
	e.Pointer().Move(35, 5)

	var first, second *Element
	var children int
	decl := func() {
		e.BeginLayer("win")
		place(e, 0, 0, 100, 100)
		e.BeginElement("a")
		place(e, 0, 0, 20, 20)
		first = e.Current()
		e.EndElement()
		e.BeginElement("a")
		place(e, 30, 0, 20, 20)
		second = e.Current()
		e.EndElement()
		children = len(e.Current().Children())
		e.EndLayer()
	}

	frame(e, decl)
	if first == second {
		t.Fatal("each occurrence of win/a should get its own record")
	}
	if first.Key() != "win/a" || second.Key() != "win/a" {
		t.Errorf("keys = %q, %q", first.Key(), second.Key())
	}
	if first.Bounds().X != 0 || second.Bounds().X != 30 {
		t.Errorf("occurrences share bounds: %v %v", *first.Bounds(), *second.Bounds())
	}
	if children != 2 {
		t.Errorf("win has %d children, want 2", children)
	}
	if size := e.pool.size(); size != 3 {
		t.Errorf("pool holds %d records, want 3", size)
	}

	stats := frame(e, decl)
	if stats.Hovered != "win/a" {
		t.Errorf("Hovered = %q, want win/a", stats.Hovered)
	}
	if stats.Elements != 3 {
		t.Errorf("Elements = %d, want 3", stats.Elements)
	}
}

func TestTree_ReuseKeyUnderOtherParents(t *testing.T) {
	e := newTestEngine(t, noFlow)
	decl := func() {
		e.BeginLayer("win")
		for _, p := range []string{"left", "right"} {
			e.BeginElement(p)
			e.BeginElement("a")
			e.EndElement()
			e.EndElement()
		}
		e.EndLayer()
	}
	frame(e, decl)
	if stats := frame(e, decl); stats.Elements != 5 {
		t.Errorf("Elements = %d, want 5", stats.Elements)
	}
}

func TestTree_ParentSiblingChildren(t *testing.T) {
	e := newTestEngine(t, noFlow)
	var root, a, b *Element
	frame(e, func() {
		e.BeginLayer("win")
		root = e.Current()
		e.BeginElement("a", Focusable|FlagUser)
		a = e.Current()
		e.EndElement()
		e.BeginElement("b")
		b = e.Current()
		e.EndElement()
		e.EndLayer()
	})
	if diff := cmp.Diff([]string{"win/a", "win/b"}, []string{root.Children()[0].Key(), root.Children()[1].Key()}); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if a.Parent() != root || b.sibling != a || a.sibling != nil {
		t.Error("unexpected parent/sibling links")
	}
	if a.Name() != "a" || !a.Flags().Has(Focusable) || a.Flags().String() != "focusable|user" {
		t.Errorf("unexpected element %q flags %s", a.Name(), a.Flags())
	}
	if root.Layer().Root() != root || root.Layer().Key() != "win" {
		t.Error("expected layer root link")
	}
}
