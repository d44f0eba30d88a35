package testing

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/geometry"
	"github.com/go-drift/carousel/pkg/layout"
	"github.com/go-drift/carousel/pkg/registry"
)

const (
	// DefaultViewport is the viewport width used when Options.Viewport is zero.
	DefaultViewport = 400
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = stderrors.New("PumpAndSettle timed out: surface did not settle")

// Options configures a Tester. Zero values select the controller defaults.
type Options struct {
	Viewport          float64
	Strategy          layout.Strategy
	DragThreshold     float64
	DisableAnimations bool
	AnimationDuration time.Duration
}

// Tester wires a controller to a slice provider, a recording surface, a
// recording sink and an error recorder sharing one fake clock.
type Tester struct {
	Controller *carousel.Controller
	Provider   *SliceProvider
	Surface    *RecordingSurface
	Sink       *RecordingSink
	Errors     *errors.Recorder

	clock *FakeClock
}

// NewTester creates a tester holding one item per width. The controller is
// not initialized.
func NewTester(opts Options, widths ...float64) *Tester {
	if opts.Viewport == 0 {
		opts.Viewport = DefaultViewport
	}
	clk := NewFakeClock()
	t := &Tester{
		Provider: NewSliceProvider(widths...),
		Surface:  NewRecordingSurface(clk),
		Sink:     &RecordingSink{},
		Errors:   &errors.Recorder{},
		clock:    clk,
	}
	t.Controller = carousel.New(carousel.Config{
		ViewportWidth:     opts.Viewport,
		Strategy:          opts.Strategy,
		DragThreshold:     opts.DragThreshold,
		DisableAnimations: opts.DisableAnimations,
		AnimationDuration: opts.AnimationDuration,
		Surface:           t.Surface,
		Sink:              t.Sink,
		ErrorHandler:      t.Errors,
	})
	t.Controller.SetDataProvider(t.Provider)
	return t
}

// NewTesterWithT creates a tester that checks controller invariants when
// the test finishes.
func NewTesterWithT(tb testing.TB, opts Options, widths ...float64) *Tester {
	tester := NewTester(opts, widths...)
	tb.Cleanup(func() {
		if err := tester.Controller.CheckInvariants(); err != nil {
			tb.Errorf("invariants violated at cleanup: %v", err)
		}
	})
	return tester
}

// Initialize loads the provider's items and selects start.
func (t *Tester) Initialize(start int) error {
	return t.Controller.Initialize(start)
}

// Clock returns the fake clock for advancing time in tests.
func (t *Tester) Clock() *FakeClock {
	return t.clock
}

// Pump advances one frame and settles finished animations. It reports
// whether any animation is still running.
func (t *Tester) Pump() bool {
	t.clock.AdvanceFrames(1)
	return t.Surface.Step()
}

// PumpAndSettle pumps frames until no animation is running or the timeout
// is reached.
func (t *Tester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed <= timeout {
		if !t.Surface.Step() {
			return nil
		}
		t.clock.AdvanceFrames(1)
		elapsed += FrameDuration
	}
	return ErrSettleTimeout
}

// Insert adds an item of width to the provider at index and notifies the
// controller.
func (t *Tester) Insert(index int, width float64) *registry.Item {
	item := t.Provider.Insert(index, width)
	t.Controller.NotifyItemInserted(index)
	return item
}

// Remove drops the provider item at index and notifies the controller.
func (t *Tester) Remove(index int) *registry.Item {
	item := t.Provider.Remove(index)
	t.Controller.NotifyItemRemoved(index)
	return item
}

// Replace swaps the provider item at index for one of width and notifies
// the controller.
func (t *Tester) Replace(index int, width float64) *registry.Item {
	item := t.Provider.Replace(index, width)
	t.Controller.NotifyItemChanged(index)
	return item
}

// Committed returns the committed x center of every item in order.
func (t *Tester) Committed() []float64 {
	items := t.Controller.Items()
	out := make([]float64, len(items))
	for i, item := range items {
		loc, _ := item.LastCommittedLocation()
		out[i] = loc.X
	}
	return out
}

// Drawn returns the x center every item is currently drawn at.
func (t *Tester) Drawn() []float64 {
	items := t.Controller.Items()
	out := make([]float64, len(items))
	for i, item := range items {
		out[i] = t.Surface.CaptureCurrentCoordinate(item).X
	}
	return out
}

// Lefts returns the committed left edge of every item in order.
func (t *Tester) Lefts() []float64 {
	items := t.Controller.Items()
	out := make([]float64, len(items))
	for i, item := range items {
		loc, _ := item.LastCommittedLocation()
		out[i] = geometry.RectFromCenter(loc, item.Size).Left
	}
	return out
}

// Find evaluates a finder against the controller's items.
func (t *Tester) Find(finder Finder) FinderResult {
	return FinderResult{
		items:  finder.Evaluate(t.Controller.Items(), t.frameOf),
		finder: finder,
	}
}

// Visible finds the items whose drawn frame overlaps the viewport.
func (t *Tester) Visible() FinderResult {
	return t.Find(Visible(t.Controller.ViewportWidth()))
}

func (t *Tester) frameOf(item *registry.Item) geometry.Rect {
	return t.Surface.Frame(item)
}
