// Package testing provides a harness for exercising carousel controllers
// without a real renderer.
//
// # Quick Start
//
// Create a tester with item widths, initialize it and make assertions:
//
//	func TestSwipe(t *testing.T) {
//	    tester := carouseltest.NewTesterWithT(t, carouseltest.Options{Viewport: 400}, 150, 150, 150)
//	    if err := tester.Initialize(0); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    // Simulate gestures
//	    tester.DragBy(geometry.Offset{X: -180})
//	    tester.PumpAndSettle(time.Second)
//
//	    // Assert state
//	    if tester.Controller.CurrentPosition() != 1 {
//	        t.Error("expected position 1")
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare item layouts against golden files:
//
//	tester.CaptureSnapshot().MatchesFile(t, "testdata/centered.snapshot.json")
//
// Update snapshots with:
//
//	CAROUSEL_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Animation Testing
//
// Control time for deterministic animation tests:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import carouseltest "github.com/go-drift/carousel/pkg/testing"
package testing
