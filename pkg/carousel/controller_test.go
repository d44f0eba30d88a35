package carousel_test

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/geometry"
	"github.com/go-drift/carousel/pkg/layout"
	"github.com/go-drift/carousel/pkg/registry"
	carouseltest "github.com/go-drift/carousel/pkg/testing"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func widths(n int, w float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = w
	}
	return out
}

func started(t *testing.T, opts carouseltest.Options, start int, ws ...float64) *carouseltest.Tester {
	t.Helper()
	tester := carouseltest.NewTesterWithT(t, opts, ws...)
	if err := tester.Initialize(start); err != nil {
		t.Fatalf("Initialize(%d): %v", start, err)
	}
	return tester
}

func assertCenters(t *testing.T, tester *carouseltest.Tester, want []float64) {
	t.Helper()
	if diff := cmp.Diff(want, tester.Committed(), approx); diff != "" {
		t.Errorf("committed centers mismatch (-want +got):\n%s", diff)
	}
}

func assertAnchored(t *testing.T, tester *carouseltest.Tester) {
	t.Helper()
	c := tester.Controller
	selected := c.SelectedItem()
	if selected == nil {
		return
	}
	loc, _ := selected.LastCommittedLocation()
	if want := c.Strategy().Anchor(selected, c.ViewportWidth()); !geometry.NearlyEqual(loc.X, want) {
		t.Errorf("selected item at x=%v, want anchor %v", loc.X, want)
	}
}

func TestInitialize_CenteredLayout(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 0, widths(5, 150)...)
	assertCenters(t, tester, []float64{200, 450, 700, 950, 1200})

	c := tester.Controller
	if c.State() != carousel.Idle {
		t.Errorf("State() = %v, want idle", c.State())
	}
	if !c.Initialized() {
		t.Error("Initialized() = false")
	}
	ev, ok := tester.Sink.LastSelect()
	if !ok || ev.Position != 0 || ev.Item != c.SelectedItem() {
		t.Errorf("initial select = %+v, %v", ev, ok)
	}
	if tester.Surface.Count(carouseltest.OpAnimate) != 0 {
		t.Error("initial layout must not animate")
	}
}

func TestInitialize_LeftBoundLayout(t *testing.T) {
	tester := started(t, carouseltest.Options{Strategy: layout.NewLeftBound(0, 25)}, 0, 100, 100, 100)
	if diff := cmp.Diff([]float64{0, 125, 250}, tester.Lefts(), approx); diff != "" {
		t.Errorf("lefts mismatch (-want +got):\n%s", diff)
	}
}

func TestInitialize_Errors(t *testing.T) {
	rec := &errors.Recorder{}
	c := carousel.New(carousel.Config{ViewportWidth: 400, ErrorHandler: rec})
	if err := c.Initialize(0); !stderrors.Is(err, errors.ErrDataSourceNotSet) {
		t.Errorf("without provider: err = %v, want ErrDataSourceNotSet", err)
	}
	if len(rec.Warnings) != 1 || !stderrors.Is(rec.Warnings[0].Err, errors.ErrDataSourceNotSet) {
		t.Errorf("without provider: warnings = %v, want one DataSourceNotSet", rec.Warnings)
	}
	if c.Initialized() {
		t.Error("Initialize without provider should not mark the controller initialized")
	}

	tester := carouseltest.NewTester(carouseltest.Options{}, 100, 100)
	if err := tester.Initialize(2); !stderrors.Is(err, errors.ErrPositionOutOfBounds) {
		t.Errorf("start past tail: err = %v", err)
	}
	if tester.Controller.Initialized() {
		t.Error("failed Initialize should not mark the controller initialized")
	}

	empty := carouseltest.NewTesterWithT(t, carouseltest.Options{})
	if err := empty.Initialize(0); err != nil {
		t.Errorf("empty provider: %v", err)
	}
	if empty.Controller.SelectedItem() != nil || empty.Controller.CurrentPosition() != 0 {
		t.Error("empty carousel should have no selection and position 0")
	}
}

func TestSetPosition(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 0, widths(5, 150)...)
	c := tester.Controller
	tester.Sink.Reset()

	if err := c.SetPosition(3, true); err != nil {
		t.Fatal(err)
	}
	if c.CurrentPosition() != 3 {
		t.Errorf("CurrentPosition() = %d, want 3", c.CurrentPosition())
	}
	assertCenters(t, tester, []float64{-550, -300, -50, 200, 450})
	if n := tester.Surface.Count(carouseltest.OpAnimate); n != 5 {
		t.Errorf("animate calls = %d, want 5", n)
	}
	if len(tester.Sink.Selects) != 1 || tester.Sink.Selects[0].Position != 3 {
		t.Errorf("selects = %+v", tester.Sink.Selects)
	}

	// Same position is a no-op.
	tester.Sink.Reset()
	tester.Surface.Reset()
	if err := c.SetPosition(3, true); err != nil {
		t.Fatal(err)
	}
	if len(tester.Surface.Calls) != 0 || len(tester.Sink.Selects) != 0 {
		t.Error("SetPosition to the current position should do nothing")
	}

	// Non-animated jumps place items directly.
	if err := c.SetPosition(0, false); err != nil {
		t.Fatal(err)
	}
	if tester.Surface.Count(carouseltest.OpAnimate) != 0 {
		t.Error("non-animated SetPosition must only place")
	}
	assertCenters(t, tester, []float64{200, 450, 700, 950, 1200})
}

func TestSetPosition_Errors(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 1, widths(3, 150)...)
	c := tester.Controller
	for _, target := range []int{-1, 3, 10} {
		err := c.SetPosition(target, true)
		if !stderrors.Is(err, errors.ErrPositionOutOfBounds) {
			t.Errorf("SetPosition(%d): err = %v, want ErrPositionOutOfBounds", target, err)
		}
		if errors.KindOf(err) != errors.KindPositionOutOfBounds {
			t.Errorf("SetPosition(%d): kind = %v", target, errors.KindOf(err))
		}
	}
	if c.CurrentPosition() != 1 {
		t.Errorf("failed SetPosition moved position to %d", c.CurrentPosition())
	}

	bare := carousel.New(carousel.Config{ViewportWidth: 400})
	if err := bare.SetPosition(0, false); !stderrors.Is(err, errors.ErrDataSourceNotSet) {
		t.Errorf("without provider: err = %v, want ErrDataSourceNotSet", err)
	}
}

func TestSetPosition_DisabledAnimations(t *testing.T) {
	tester := started(t, carouseltest.Options{DisableAnimations: true}, 0, widths(3, 150)...)
	if err := tester.Controller.SetPosition(2, true); err != nil {
		t.Fatal(err)
	}
	if tester.Surface.Count(carouseltest.OpAnimate) != 0 {
		t.Error("animations disabled: expected only place calls")
	}
	tester.Controller.SetAnimationsEnabled(true)
	if err := tester.Controller.SetPosition(0, true); err != nil {
		t.Fatal(err)
	}
	if tester.Surface.Count(carouseltest.OpAnimate) != 3 {
		t.Errorf("animate calls = %d after re-enabling", tester.Surface.Count(carouseltest.OpAnimate))
	}
}

func TestAnimationDuration(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 0, widths(2, 150)...)
	if err := tester.Controller.SetPosition(1, true); err != nil {
		t.Fatal(err)
	}
	for _, call := range tester.Surface.Calls {
		if call.Op == carouseltest.OpAnimate && call.Duration != carousel.DefaultAnimationDuration {
			t.Errorf("%v: duration = %v, want %v", call, call.Duration, carousel.DefaultAnimationDuration)
		}
	}

	custom := started(t, carouseltest.Options{AnimationDuration: 50 * time.Millisecond}, 0, widths(2, 150)...)
	if err := custom.Controller.SetPosition(1, true); err != nil {
		t.Fatal(err)
	}
	if err := custom.PumpAndSettle(100 * time.Millisecond); err != nil {
		t.Errorf("50ms animation did not settle: %v", err)
	}
}

func TestTapAndLongPress(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 0, widths(3, 150)...)
	c := tester.Controller

	if err := c.Tap(2); err != nil {
		t.Fatal(err)
	}
	if err := c.LongPress(1); err != nil {
		t.Fatal(err)
	}
	items := c.Items()
	if len(tester.Sink.Taps) != 1 || tester.Sink.Taps[0].Item != items[2] {
		t.Errorf("taps = %+v", tester.Sink.Taps)
	}
	if len(tester.Sink.LongPresses) != 1 || tester.Sink.LongPresses[0].Position != 1 {
		t.Errorf("long presses = %+v", tester.Sink.LongPresses)
	}
	if err := c.Tap(3); !stderrors.Is(err, errors.ErrPositionOutOfBounds) {
		t.Errorf("Tap(3): err = %v", err)
	}
}

func TestEventSinkPanicIsIsolated(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 0, widths(3, 150)...)
	tester.Sink.Panic = "boom"

	if err := tester.Controller.SetPosition(1, false); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	if tester.Controller.CurrentPosition() != 1 {
		t.Error("state must be committed before the sink runs")
	}
	if len(tester.Errors.Panics) != 1 {
		t.Fatalf("panics = %d, want 1", len(tester.Errors.Panics))
	}
	if p := tester.Errors.Panics[0]; p.Op != "carousel.EventSink.OnSelect" || p.Value != "boom" {
		t.Errorf("panic = %+v", p)
	}

	tester.Swipe(-180)
	if tester.Controller.CurrentPosition() != 2 {
		t.Errorf("drag after sink panic: position = %d", tester.Controller.CurrentPosition())
	}
}

func TestEventFuncs(t *testing.T) {
	var selected []int
	sink := carousel.EventFuncs{Select: func(_ *registry.Item, p int) { selected = append(selected, p) }}
	c := carousel.New(carousel.Config{ViewportWidth: 400, Sink: sink, ErrorHandler: &errors.Recorder{}})
	c.SetDataProvider(carouseltest.NewSliceProvider(100, 100))
	if err := c.Initialize(1); err != nil {
		t.Fatal(err)
	}
	c.BeginDrag()
	c.UpdateDrag(geometry.Offset{X: 10})
	if err := c.Tap(0); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1}, selected); diff != "" {
		t.Errorf("selected (-want +got):\n%s", diff)
	}
}

func TestReload(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 4, widths(5, 150)...)
	removed := []*registry.Item{tester.Provider.Remove(4), tester.Provider.Remove(3)}
	tester.Sink.Reset()

	if err := tester.Controller.Reload(); err != nil {
		t.Fatal(err)
	}
	c := tester.Controller
	if c.Len() != 3 || c.CurrentPosition() != 2 {
		t.Errorf("Len, position = %d, %d; want 3, 2", c.Len(), c.CurrentPosition())
	}
	if len(tester.Provider.Recycled) != 3 {
		t.Errorf("recyclable hints = %d, want 3", len(tester.Provider.Recycled))
	}
	for _, item := range removed {
		if len(tester.Surface.CallsFor(item, carouseltest.OpDetach)) != 1 {
			t.Errorf("%v was not detached", item.Content)
		}
	}
	if ev, ok := tester.Sink.LastSelect(); !ok || ev.Position != 2 {
		t.Errorf("select after clamp = %+v, %v", ev, ok)
	}
	assertCenters(t, tester, []float64{-300, -50, 200})
}

func TestReload_KeepsSelection(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 1, widths(3, 150)...)
	tester.Provider.Reuse = true
	tester.Sink.Reset()
	if err := tester.Controller.Reload(); err != nil {
		t.Fatal(err)
	}
	if len(tester.Sink.Selects) != 0 {
		t.Error("reload without a selection change should not notify")
	}
	if c := tester.Controller; c.CurrentPosition() != 1 {
		t.Errorf("position = %d", c.CurrentPosition())
	}
}

func TestSetDragThreshold(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 0, widths(3, 150)...)
	c := tester.Controller
	if c.DragThreshold() != 100 {
		t.Fatalf("default threshold = %v, want viewport/4", c.DragThreshold())
	}
	if c.SetDragThreshold(50) {
		t.Error("values below the default must be rejected")
	}
	if !c.SetDragThreshold(150) || c.DragThreshold() != 150 {
		t.Fatalf("threshold = %v, want 150", c.DragThreshold())
	}
	if out := tester.Swipe(-120); out.Committed {
		t.Error("drag under the raised threshold should cancel")
	}
	if out := tester.Swipe(-160); !out.Committed {
		t.Error("drag over the raised threshold should commit")
	}
}

func TestSetViewportWidth(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 0, widths(3, 150)...)
	c := tester.Controller
	if err := c.SetViewportWidth(800); err != nil {
		t.Fatal(err)
	}
	if c.DragThreshold() != 200 {
		t.Errorf("threshold = %v, want 200", c.DragThreshold())
	}
	assertCenters(t, tester, []float64{400, 850, 1300})
}

func TestSetStrategy(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 1, widths(3, 100)...)
	if err := tester.Controller.SetStrategy(layout.NewLeftBound(0, 25)); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{-125, 0, 125}, tester.Lefts(), approx); diff != "" {
		t.Errorf("lefts mismatch (-want +got):\n%s", diff)
	}
	if tester.Controller.Strategy().Kind() != layout.KindLeftBound {
		t.Error("strategy not switched")
	}
	if err := tester.Controller.SetStrategy(nil); err != nil {
		t.Fatal(err)
	}
	if tester.Controller.Strategy().Kind() != layout.KindCentered {
		t.Error("nil strategy should restore the default")
	}
	assertAnchored(t, tester)
}

func TestState(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 0, widths(3, 150)...)
	c := tester.Controller
	c.BeginDrag()
	if c.State() != carousel.Dragging {
		t.Errorf("State() = %v, want dragging", c.State())
	}
	c.UpdateDrag(geometry.Offset{X: -180})
	c.EndDrag(geometry.Offset{X: -180})
	if c.State() != carousel.Animating {
		t.Errorf("State() = %v, want animating", c.State())
	}
	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if c.State() != carousel.Idle {
		t.Errorf("State() = %v, want idle", c.State())
	}
	if got := carousel.State(7).String(); got != "State(7)" {
		t.Errorf("unknown state String() = %q", got)
	}
}
