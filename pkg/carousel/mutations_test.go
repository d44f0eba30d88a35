package carousel_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/layout"
	carouseltest "github.com/go-drift/carousel/pkg/testing"
)

func assertWarning(t *testing.T, tester *carouseltest.Tester, kind errors.ErrorKind) {
	t.Helper()
	w := tester.Errors.Warnings
	if len(w) != 1 {
		t.Fatalf("warnings = %d, want 1", len(w))
	}
	if got := errors.KindOf(w[0].Err); got != kind {
		t.Errorf("warning kind = %v, want %v (%v)", got, kind, w[0])
	}
}

func TestNotifyItemInserted_ShiftsFollowers(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 0, widths(4, 150)...)
	original := tester.Controller.Items()
	before := tester.Committed()

	inserted := tester.Insert(1, 150)
	c := tester.Controller
	if c.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", c.Len())
	}
	if err := c.CheckInvariants(); err != nil {
		t.Fatal(err)
	}
	for i, item := range original[1:] {
		if item.Position() != i+2 {
			t.Errorf("%v.Position() = %d, want %d", item.Content, item.Position(), i+2)
		}
		loc, _ := item.LastCommittedLocation()
		if got, want := loc.X-before[i+1], 250.0; got != want {
			t.Errorf("%v shifted by %v, want one step %v", item.Content, got, want)
		}
	}
	if loc, _ := inserted.LastCommittedLocation(); loc.X != 450 {
		t.Errorf("inserted item at x=%v, want 450", loc.X)
	}
	if c.CurrentPosition() != 0 {
		t.Errorf("CurrentPosition() = %d, want 0", c.CurrentPosition())
	}
	if len(tester.Errors.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", tester.Errors.Warnings)
	}
}

func TestNotifyItemInserted_Reveal(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 0, widths(3, 150)...)
	tester.Surface.Reset()
	inserted := tester.Insert(3, 150)

	var ops []carouseltest.Op
	for _, call := range tester.Surface.CallsFor(inserted) {
		ops = append(ops, call.Op)
	}
	want := []carouseltest.Op{carouseltest.OpSetOpacity, carouseltest.OpPlace, carouseltest.OpAnimateOpacity}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("reveal calls (-want +got):\n%s", diff)
	}
	if o := tester.Surface.Opacity(inserted); o != 0 {
		t.Errorf("opacity right after insert = %v, want 0", o)
	}
	tester.Clock().Advance(carousel.DefaultAnimationDuration)
	if o := tester.Surface.Opacity(inserted); o != 1 {
		t.Errorf("opacity after reveal = %v, want 1", o)
	}
	assertCenters(t, tester, []float64{200, 450, 700, 950})
}

func TestNotifyItemInserted_BeforeSelectionTracksItem(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 2, widths(5, 150)...)
	selected := tester.Controller.SelectedItem()
	tester.Sink.Reset()

	tester.Insert(0, 150)
	c := tester.Controller
	if c.CurrentPosition() != 3 || c.SelectedItem() != selected {
		t.Errorf("position = %d, selected = %v; want 3 and the same item", c.CurrentPosition(), c.SelectedItem())
	}
	assertCenters(t, tester, []float64{-550, -300, -50, 200, 450, 700})
	assertAnchored(t, tester)
	if len(tester.Sink.Selects) != 0 {
		t.Error("tracking the same item is not a selection change")
	}
}

func TestNotifyItemInserted_IntoEmpty(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 0)
	item := tester.Insert(0, 150)
	c := tester.Controller
	if c.Len() != 1 || c.SelectedItem() != item {
		t.Fatalf("Len = %d, selected = %v", c.Len(), c.SelectedItem())
	}
	assertCenters(t, tester, []float64{200})
	if ev, ok := tester.Sink.LastSelect(); !ok || ev.Item != item {
		t.Errorf("select = %+v, %v", ev, ok)
	}
}

func TestNotifyItemInserted_MixedWidthsLeftBound(t *testing.T) {
	tester := started(t, carouseltest.Options{Strategy: layout.NewLeftBound(0, 20)}, 0, 100, 60, 200)
	tester.Insert(1, 40)
	if diff := cmp.Diff([]float64{0, 120, 180, 260}, tester.Lefts(), approx); diff != "" {
		t.Errorf("lefts mismatch (-want +got):\n%s", diff)
	}
}

func TestNotifyItemInserted_CountMismatch(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 1, widths(3, 150)...)
	tester.Provider.Insert(0, 150)
	tester.Provider.Insert(0, 150)
	before := tester.Committed()
	tester.Controller.NotifyItemInserted(0)

	assertWarning(t, tester, errors.KindCountMismatch)
	if tester.Controller.Len() != 3 || tester.Controller.CurrentPosition() != 1 {
		t.Error("mismatched insert must be a no-op")
	}
	assertCenters(t, tester, before)
}

func TestNotifyItemRemoved_ClosesGap(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 0, widths(5, 150)...)
	removed := tester.Remove(2)
	c := tester.Controller
	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}
	assertCenters(t, tester, []float64{200, 450, 700, 950})
	if len(tester.Surface.CallsFor(removed, carouseltest.OpDetach)) != 1 {
		t.Error("removed item was not detached")
	}
	if removed.Position() != -1 {
		t.Errorf("removed item Position() = %d", removed.Position())
	}
}

func TestNotifyItemRemoved_BeforeSelection(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 2, widths(5, 150)...)
	selected := tester.Controller.SelectedItem()
	tester.Remove(1)
	c := tester.Controller
	if c.CurrentPosition() != 1 || c.SelectedItem() != selected {
		t.Errorf("position = %d; want 1 tracking the same item", c.CurrentPosition())
	}
	assertCenters(t, tester, []float64{-50, 200, 450, 700})
}

func TestNotifyItemRemoved_Selected(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		remove   int
		position int
		centers  []float64
	}{
		{"middle", 2, 2, 2, []float64{-300, -50, 200, 450}},
		{"tail", 4, 4, 3, []float64{-550, -300, -50, 200}},
		{"head", 0, 0, 0, []float64{200, 450, 700, 950}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester := started(t, carouseltest.Options{}, tt.start, widths(5, 150)...)
			tester.Sink.Reset()
			tester.Remove(tt.remove)
			c := tester.Controller
			if c.CurrentPosition() != tt.position {
				t.Errorf("position = %d, want %d", c.CurrentPosition(), tt.position)
			}
			assertCenters(t, tester, tt.centers)
			ev, ok := tester.Sink.LastSelect()
			if !ok || ev.Item != c.SelectedItem() || ev.Position != tt.position {
				t.Errorf("select = %+v, %v", ev, ok)
			}
		})
	}
}

func TestNotifyItemRemoved_LastItem(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 0, 150)
	tester.Remove(0)
	c := tester.Controller
	if c.Len() != 0 || c.CurrentPosition() != 0 || c.SelectedItem() != nil {
		t.Errorf("Len = %d, position = %d", c.Len(), c.CurrentPosition())
	}
}

func TestNotifyItemRemoved_CountMismatch(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 1, widths(4, 150)...)
	before := tester.Committed()
	items := tester.Controller.Items()

	tester.Controller.NotifyItemRemoved(2)

	assertWarning(t, tester, errors.KindCountMismatch)
	c := tester.Controller
	if c.Len() != 4 || c.CurrentPosition() != 1 {
		t.Errorf("Len, position = %d, %d; want 4, 1", c.Len(), c.CurrentPosition())
	}
	for i, item := range c.Items() {
		if item != items[i] {
			t.Errorf("item %d changed from %v to %v", i, items[i], item)
		}
	}
	assertCenters(t, tester, before)
}

func TestNotifyItemChanged_SameWidth(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 1, widths(3, 150)...)
	old := tester.Controller.Items()[1]
	tester.Sink.Reset()
	tester.Surface.Reset()

	fresh := tester.Replace(1, 150)
	c := tester.Controller
	if c.Items()[1] != fresh || fresh.Position() != 1 {
		t.Fatal("replacement not held at position 1")
	}
	if len(tester.Surface.CallsFor(old, carouseltest.OpDetach)) != 1 {
		t.Error("old item was not detached")
	}
	places := tester.Surface.CallsFor(fresh, carouseltest.OpPlace)
	if len(places) != 1 || places[0].At.X != 200 {
		t.Errorf("replacement should start at the old item's coordinate, got %v", places)
	}
	if r := tester.Provider.Recycled; len(r) != 1 || r[0] != old {
		t.Errorf("recyclable hint = %v", r)
	}
	assertCenters(t, tester, []float64{-50, 200, 450})
	if ev, ok := tester.Sink.LastSelect(); !ok || ev.Item != fresh {
		t.Errorf("select = %+v, %v", ev, ok)
	}
}

func TestNotifyItemChanged_WidthChangeRelayouts(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 2, widths(5, 150)...)
	tester.Sink.Reset()
	tester.Replace(3, 250)
	assertCenters(t, tester, []float64{-300, -50, 200, 500, 750})
	if len(tester.Sink.Selects) != 0 {
		t.Error("replacing an unselected item is not a selection change")
	}
}

func TestNotifyItemChanged_ReusedItem(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 0, widths(2, 150)...)
	tester.Provider.Reuse = true
	held := tester.Controller.Items()[1]
	tester.Controller.NotifyItemChanged(1)
	if tester.Controller.Items()[1] != held {
		t.Error("a recycled item should stay in place")
	}
	if len(tester.Surface.CallsFor(held, carouseltest.OpDetach)) != 0 {
		t.Error("a recycled item must not be detached")
	}
}

func TestNotifyItemChanged_Errors(t *testing.T) {
	tester := started(t, carouseltest.Options{}, 0, widths(3, 150)...)
	tester.Controller.NotifyItemChanged(3)
	assertWarning(t, tester, errors.KindIndexOutOfRange)

	tester.Errors.Reset()
	tester.Provider.Remove(0)
	tester.Controller.NotifyItemChanged(0)
	assertWarning(t, tester, errors.KindCountMismatch)

	bare := carousel.New(carousel.Config{ViewportWidth: 400, ErrorHandler: tester.Errors})
	tester.Errors.Reset()
	bare.NotifyItemChanged(0)
	if len(tester.Errors.Warnings) != 1 || errors.KindOf(tester.Errors.Warnings[0].Err) != errors.KindDataSourceNotSet {
		t.Errorf("warnings = %v", tester.Errors.Warnings)
	}
}

func TestMutations_KeepInvariants(t *testing.T) {
	tester := started(t, carouseltest.Options{Strategy: layout.NewLeftBound(5, 15)}, 0, 120, 80, 200)
	steps := []func(){
		func() { tester.Insert(0, 90) },
		func() { tester.Swipe(-150) },
		func() { tester.Insert(tester.Controller.Len(), 60) },
		func() { tester.Remove(tester.Controller.CurrentPosition()) },
		func() { tester.Replace(0, 300) },
		func() { tester.Swipe(-150) },
		func() { tester.Remove(0) },
		func() { _ = tester.Controller.SetPosition(0, true) },
	}
	for round := range 3 {
		for i, step := range steps {
			step()
			if err := tester.Controller.CheckInvariants(); err != nil {
				t.Fatalf("round %d step %d: %v", round, i, err)
			}
			assertAnchored(t, tester)
		}
	}
	if len(tester.Errors.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", tester.Errors.Warnings)
	}
}
