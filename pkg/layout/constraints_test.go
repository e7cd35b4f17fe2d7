package layout

import (
	"testing"

	"github.com/go-drift/frameui/pkg/graphics"
)

func TestRun_InOrder(t *testing.T) {
	parent := graphics.Rect{X: 10, Y: 10, W: 100, H: 100}
	var self graphics.Rect
	Run([]Constraint{FillParent(), Inset(5)}, Scope{Self: &self, Parent: &parent})

	want := graphics.Rect{X: 15, Y: 15, W: 90, H: 90}
	if self != want {
		t.Errorf("self = %v, want %v", self, want)
	}
}

func TestRun_AbsentNeighboursAreSkipped(t *testing.T) {
	self := graphics.Rect{X: 1, Y: 2, W: 3, H: 4}
	Run([]Constraint{FillParent(), Center(), FitChildren(2), nil}, Scope{Self: &self})

	want := graphics.Rect{X: 1, Y: 2, W: 3, H: 4}
	if self != want {
		t.Errorf("self = %v, want unchanged %v", self, want)
	}
}

func TestFlowBelow(t *testing.T) {
	parent := graphics.Rect{X: 0, Y: 0, W: 200, H: 300}
	first := graphics.Rect{H: 20}
	Run([]Constraint{FlowBelow(4)}, Scope{Self: &first, Parent: &parent})
	if first != (graphics.Rect{X: 0, Y: 0, W: 200, H: 20}) {
		t.Errorf("first = %v", first)
	}

	second := graphics.Rect{H: 30}
	Run([]Constraint{FlowBelow(4)}, Scope{Self: &second, Parent: &parent, Sibling: &first})
	if second.Y != 24 || second.W != 200 {
		t.Errorf("second = %v", second)
	}
}

func TestFlowRight(t *testing.T) {
	parent := graphics.Rect{X: 5, Y: 5, W: 200, H: 30}
	first := graphics.Rect{W: 40}
	Run([]Constraint{FlowRight(0)}, Scope{Self: &first, Parent: &parent})
	second := graphics.Rect{W: 10}
	Run([]Constraint{FlowRight(2)}, Scope{Self: &second, Parent: &parent, Sibling: &first})

	if first.X != 5 || first.H != 30 {
		t.Errorf("first = %v", first)
	}
	if second.X != 47 {
		t.Errorf("second.X = %v, want 47", second.X)
	}
}

func TestFitChildren_MultiPass(t *testing.T) {
	self := graphics.Rect{X: 0, Y: 0}
	constraints := []Constraint{FitChildren(5)}

	// First pass: no children declared yet, bounds stay provisional.
	Run(constraints, Scope{Self: &self})
	if !self.IsEmpty() {
		t.Fatalf("expected empty provisional bounds, got %v", self)
	}

	a := graphics.Rect{X: 0, Y: 0, W: 50, H: 10}
	b := graphics.Rect{X: 0, Y: 10, W: 80, H: 10}
	Run(constraints, Scope{Self: &self, Children: []*graphics.Rect{&a, &b}})
	want := graphics.Rect{W: 85, H: 25}
	if self != want {
		t.Errorf("self = %v, want %v", self, want)
	}
}

func TestCenterAndAt(t *testing.T) {
	parent := graphics.Rect{X: 0, Y: 0, W: 100, H: 50}
	self := graphics.Rect{W: 20, H: 10}
	Run([]Constraint{Center()}, Scope{Self: &self, Parent: &parent})
	if self.X != 40 || self.Y != 20 {
		t.Errorf("centered = %v", self)
	}
	Run([]Constraint{At(3, 4)}, Scope{Self: &self, Parent: &parent})
	if self.X != 3 || self.Y != 4 {
		t.Errorf("at = %v", self)
	}
}

func TestFitText(t *testing.T) {
	var self graphics.Rect
	Run([]Constraint{FitText("abcd", graphics.TextStyle{}, 2)}, Scope{Self: &self})
	if self.W != 32 {
		t.Errorf("W = %v, want 32", self.W)
	}
}

func TestParseFlow(t *testing.T) {
	for name, want := range map[string]Flow{"": FlowVertical, "vertical": FlowVertical, "horizontal": FlowHorizontal, "none": FlowNone} {
		got, ok := ParseFlow(name)
		if !ok || got != want {
			t.Errorf("ParseFlow(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseFlow("diagonal"); ok {
		t.Error("expected unknown flow to fail")
	}
	if len(Defaults(FlowNone, 0)) != 0 || len(Defaults(FlowVertical, 0)) != 1 {
		t.Error("unexpected default lists")
	}
}
