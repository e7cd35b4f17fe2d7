// Package testing provides a frame testing harness for frameui.
//
// # Quick Start
//
// Create a tester, declare a frame, and make assertions:
//
//	func TestButton(t *testing.T) {
//	    tester := frametest.NewFrameTesterWithT(t, engine.Options{})
//	    tester.MovePointer(15, 15)
//
//	    button := func(e *engine.Engine) {
//	        e.BeginLayer("win")
//	        e.SetConstraints(layout.Fixed(100, 100))
//	        e.CalculateLayout()
//	        e.BeginElement("ok")
//	        e.SetConstraints(layout.At(10, 10), layout.Fixed(20, 20))
//	        e.CalculateLayout()
//	        e.EndElement()
//	        e.EndLayer()
//	    }
//	    tester.Frame(button)
//	    tester.Frame(button)
//
//	    if key, _ := tester.Engine().HoveredKey(); key != "win/ok" {
//	        t.Errorf("hovered = %q", key)
//	    }
//	}
//
// # Faults
//
// ExpectFault runs a function and asserts that it raises a frame fault of
// the given kind:
//
//	frametest.ExpectFault(t, errors.KindBalance, func() {
//	    tester.Frame(func(e *engine.Engine) { e.EndElement() })
//	})
//
// # Snapshot Testing
//
// Capture and compare the rendered frame against a golden file:
//
//	tester.CaptureSnapshot().MatchesFile(t, "testdata/button.snapshot.json")
//
// Update snapshots with:
//
//	FRAMEUI_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import frametest "github.com/go-drift/frameui/pkg/testing"
package testing
