// Package carousel implements the positioning and scroll state machine of a
// horizontally scrolling, snapping item carousel.
//
// The [Controller] owns the ordered item registry, the current position and
// the active drag session. It does no drawing: coordinates are handed to a
// [RenderSurface], items come from a [DataProvider] and notifications go to
// an [EventSink].
//
//	ctrl := carousel.New(carousel.Config{
//	    ViewportWidth: 400,
//	    Strategy:      layout.NewCentered(25),
//	    Surface:       surface,
//	    Sink:          carousel.EventFuncs{Select: onSelect},
//	})
//	ctrl.SetDataProvider(provider)
//	if err := ctrl.Initialize(0); err != nil { ... }
//
//	// From the host's pan gesture recognizer:
//	ctrl.BeginDrag()
//	ctrl.UpdateDrag(translation)
//	ctrl.EndDrag(translation)
//
// # Threading
//
// A Controller is not safe for concurrent use. Every call is expected on the
// host's UI thread; animations are interpolated by the surface after the
// controller has already committed the new state.
package carousel

import (
	"fmt"
	"time"

	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/geometry"
	"github.com/go-drift/carousel/pkg/layout"
	"github.com/go-drift/carousel/pkg/registry"
)

// DefaultAnimationDuration is used when Config.AnimationDuration is zero.
const DefaultAnimationDuration = 200 * time.Millisecond

// State is the observable phase of the scroll state machine.
//
//	          BeginDrag
//	Idle ───────────────► Dragging
//	  ▲                      │
//	  └──────────────────────┘
//	        EndDrag (commit or cancel)
//
// Animating is reported while the surface still interpolates a committed
// move; the controller itself is already settled at that point.
type State int

const (
	// Idle means no drag is active and the current position is settled.
	Idle State = iota
	// Dragging means a drag session is active.
	Dragging
	// Animating means the surface still plays a committed move.
	Animating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Animating:
		return "animating"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config configures a Controller. Zero values select the defaults.
type Config struct {
	// ViewportWidth is the width of the visible area.
	ViewportWidth float64
	// Strategy places items. Nil selects layout.Default().
	Strategy layout.Strategy
	// DragThreshold is the minimum horizontal drag that commits a scroll.
	// Zero selects a quarter of ViewportWidth.
	DragThreshold float64
	// DisableAnimations makes every move immediate.
	DisableAnimations bool
	// AnimationDuration is passed to RenderSurface.Animate.
	AnimationDuration time.Duration
	// Surface applies coordinates. Nil keeps coordinates headless.
	Surface RenderSurface
	// Sink receives notifications. Nil drops them.
	Sink EventSink
	// ErrorHandler receives warnings and recovered callback panics.
	// Nil uses the global handler from pkg/errors.
	ErrorHandler errors.ErrorHandler
}

// Controller is the carousel scroll state machine.
type Controller struct {
	provider DataProvider
	items    *registry.Registry
	strategy layout.Strategy
	surface  RenderSurface
	sink     EventSink
	handler  errors.ErrorHandler

	viewport         float64
	threshold        float64
	defaultThreshold float64
	animations       bool
	duration         time.Duration

	position    int
	session     *session
	initialized bool
}

// New creates a controller from cfg. Items are loaded by Initialize once a
// data provider is attached.
func New(cfg Config) *Controller {
	c := &Controller{
		items:      registry.New(0),
		strategy:   cfg.Strategy,
		surface:    cfg.Surface,
		sink:       cfg.Sink,
		handler:    cfg.ErrorHandler,
		viewport:   cfg.ViewportWidth,
		animations: !cfg.DisableAnimations,
		duration:   cfg.AnimationDuration,
	}
	if c.strategy == nil {
		c.strategy = layout.Default()
	}
	if c.surface == nil {
		c.surface = headlessSurface{}
	}
	if c.sink == nil {
		c.sink = NopEventSink{}
	}
	if c.duration <= 0 {
		c.duration = DefaultAnimationDuration
	}
	c.defaultThreshold = c.viewport / 4
	c.threshold = c.defaultThreshold
	if cfg.DragThreshold > 0 {
		c.threshold = cfg.DragThreshold
	}
	return c
}

// SetDataProvider attaches the item source. Call Initialize or Reload
// afterwards to load items.
func (c *Controller) SetDataProvider(p DataProvider) {
	c.provider = p
}

// DataProvider returns the attached provider, or nil.
func (c *Controller) DataProvider() DataProvider {
	return c.provider
}

// Initialize loads every item from the data provider, lays them out and
// selects start. Without a provider it reports a warning and returns
// DataSourceNotSet, leaving state untouched.
func (c *Controller) Initialize(start int) error {
	const op = "carousel.Initialize"
	if c.provider == nil {
		err := errors.DataSourceNotSet(op)
		c.warn(op, err)
		return err
	}
	count := c.provider.NumberOfItems()
	if (count > 0 && (start < 0 || start >= count)) || (count == 0 && start != 0) {
		return errors.PositionOutOfBounds(op, start, count)
	}
	c.endSession()
	previous := c.items.Items()
	c.items.Clear()
	if err := c.load(op, count, nil); err != nil {
		return err
	}
	c.detachMissing(previous)
	c.position = start
	c.initialized = true
	if c.items.Len() == 0 {
		return nil
	}
	if err := c.layoutAll(false); err != nil {
		return err
	}
	c.notifySelect()
	return nil
}

// Reload rebuilds the registry from the data provider, offering the previous
// item at each position for recycling. The current position is kept when
// it is still valid and clamped to the new tail otherwise.
func (c *Controller) Reload() error {
	const op = "carousel.Reload"
	if c.provider == nil {
		return errors.DataSourceNotSet(op)
	}
	c.endSession()
	selected := c.SelectedItem()
	previous := c.items.Items()
	c.items.Clear()
	if err := c.load(op, c.provider.NumberOfItems(), previous); err != nil {
		return err
	}
	c.detachMissing(previous)
	c.initialized = true
	n := c.items.Len()
	if n == 0 {
		c.position = 0
		return nil
	}
	c.position = min(max(c.position, 0), n-1)
	if err := c.layoutAll(false); err != nil {
		return err
	}
	if c.SelectedItem() != selected {
		c.notifySelect()
	}
	return nil
}

// SetPosition scrolls to target, skipping every intermediate position in
// one batch. An active drag is cancelled first.
func (c *Controller) SetPosition(target int, animated bool) error {
	const op = "carousel.SetPosition"
	if c.provider == nil {
		return errors.DataSourceNotSet(op)
	}
	n := c.items.Len()
	if target < 0 || target >= n {
		return errors.PositionOutOfBounds(op, target, n)
	}
	if c.session != nil {
		c.cancelSession(false)
	}
	if target == c.position {
		return nil
	}
	delta, err := c.strategy.ScrollDelta(c.items, c.viewport, c.position, target)
	if err != nil {
		return err
	}
	for _, item := range c.items.All() {
		loc, _ := item.LastCommittedLocation()
		c.moveTo(item, loc.Translate(delta, 0), animated)
	}
	c.position = target
	c.notifySelect()
	return nil
}

// Tap forwards a tap on the item at position to the event sink.
func (c *Controller) Tap(position int) error {
	item, err := c.itemAt("carousel.Tap", position)
	if err != nil {
		return err
	}
	c.dispatch("carousel.EventSink.OnTap", func() { c.sink.OnTap(item, position) })
	return nil
}

// LongPress forwards a long press on the item at position to the event sink.
func (c *Controller) LongPress(position int) error {
	item, err := c.itemAt("carousel.LongPress", position)
	if err != nil {
		return err
	}
	c.dispatch("carousel.EventSink.OnLongPress", func() { c.sink.OnLongPress(item, position) })
	return nil
}

// SetStrategy switches the layout variant and lays every item out again
// around the current position.
func (c *Controller) SetStrategy(s layout.Strategy) error {
	if s == nil {
		s = layout.Default()
	}
	c.endSession()
	c.strategy = s
	if c.items.Len() == 0 {
		return nil
	}
	return c.layoutAll(true)
}

// SetViewportWidth updates the viewport and lays items out again. The
// default drag threshold follows the viewport; an explicit threshold is
// kept unless it falls below the new default.
func (c *Controller) SetViewportWidth(width float64) error {
	if width == c.viewport {
		return nil
	}
	custom := c.threshold != c.defaultThreshold
	c.viewport = width
	c.defaultThreshold = width / 4
	if !custom || c.threshold < c.defaultThreshold {
		c.threshold = c.defaultThreshold
	}
	c.endSession()
	if c.items.Len() == 0 {
		return nil
	}
	return c.layoutAll(false)
}

// SetDragThreshold raises the minimum drag distance. Values at or below
// the default (a quarter of the viewport) are ignored; it reports whether
// the threshold changed.
func (c *Controller) SetDragThreshold(amount float64) bool {
	if amount <= c.defaultThreshold {
		return false
	}
	c.threshold = amount
	return true
}

// SetAnimationsEnabled toggles animated moves.
func (c *Controller) SetAnimationsEnabled(enabled bool) {
	c.animations = enabled
}

// CurrentPosition returns the selected position. It is 0 when empty.
func (c *Controller) CurrentPosition() int {
	return c.position
}

// SelectedItem returns the item at the current position, or nil when empty.
func (c *Controller) SelectedItem() *registry.Item {
	item, err := c.items.At(c.position)
	if err != nil {
		return nil
	}
	return item
}

// Len returns the number of items held.
func (c *Controller) Len() int {
	return c.items.Len()
}

// Items returns the items in display order.
func (c *Controller) Items() []*registry.Item {
	return c.items.Items()
}

// Strategy returns the active layout.
func (c *Controller) Strategy() layout.Strategy {
	return c.strategy
}

// ViewportWidth returns the configured viewport width.
func (c *Controller) ViewportWidth() float64 {
	return c.viewport
}

// DragThreshold returns the minimum horizontal drag that commits a scroll.
func (c *Controller) DragThreshold() float64 {
	return c.threshold
}

// AnimationsEnabled reports whether moves are animated.
func (c *Controller) AnimationsEnabled() bool {
	return c.animations
}

// Initialized reports whether Initialize or Reload has completed.
func (c *Controller) Initialized() bool {
	return c.initialized
}

// State returns the current phase of the state machine.
func (c *Controller) State() State {
	if c.session != nil {
		return Dragging
	}
	if obs, ok := c.surface.(AnimationObserver); ok && obs.Animating() {
		return Animating
	}
	return Idle
}

// CheckInvariants verifies registry numbering and the current position.
func (c *Controller) CheckInvariants() error {
	if err := c.items.CheckInvariants(); err != nil {
		return err
	}
	n := c.items.Len()
	if n > 0 && (c.position < 0 || c.position >= n) {
		return fmt.Errorf("carousel: current position %d outside [0, %d)", c.position, n)
	}
	if n == 0 && c.position != 0 {
		return fmt.Errorf("carousel: current position %d with no items", c.position)
	}
	return nil
}

func (c *Controller) load(op string, count int, recycle []*registry.Item) error {
	for i := range count {
		var recyclable *registry.Item
		if i < len(recycle) {
			recyclable = recycle[i]
		}
		item := c.provider.ItemForPosition(i, recyclable)
		if item == nil {
			c.items.Clear()
			return fmt.Errorf("%s: data provider returned no item for position %d", op, i)
		}
		if err := c.items.Append(item); err != nil {
			c.items.Clear()
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// detachMissing releases surface resources of items no longer held.
func (c *Controller) detachMissing(previous []*registry.Item) {
	for _, item := range previous {
		if c.items.IndexOf(item) < 0 {
			c.detach(item)
		}
	}
}

func (c *Controller) detach(item *registry.Item) {
	if d, ok := c.surface.(ItemDetacher); ok {
		d.Detach(item)
	}
}

// layoutAll runs a full layout pass around the current position.
func (c *Controller) layoutAll(animated bool) error {
	placement, err := c.strategy.InitialLayout(c.items, c.viewport, c.position)
	if err != nil {
		return err
	}
	for _, item := range c.items.All() {
		to := placement[item]
		if _, placed := item.LastCommittedLocation(); !placed {
			c.surface.Place(item, to)
			item.Commit(to)
			continue
		}
		c.moveTo(item, to, animated)
	}
	return nil
}

// moveTo commits to as item's location and hands the move to the surface.
func (c *Controller) moveTo(item *registry.Item, to geometry.Offset, animated bool) {
	item.Commit(to)
	if animated && c.animations {
		c.surface.Animate(item, to, c.duration)
		return
	}
	c.surface.Place(item, to)
}

func (c *Controller) itemAt(op string, position int) (*registry.Item, error) {
	item, err := c.items.At(position)
	if err != nil {
		return nil, errors.PositionOutOfBounds(op, position, c.items.Len())
	}
	return item, nil
}

func (c *Controller) notifySelect() {
	item := c.SelectedItem()
	if item == nil {
		return
	}
	position := c.position
	c.dispatch("carousel.EventSink.OnSelect", func() { c.sink.OnSelect(item, position) })
}

// dispatch runs an event sink callback, isolating the controller from
// panics in host code.
func (c *Controller) dispatch(op string, fn func()) {
	defer errors.RecoverTo(c.handler, op)
	fn()
}

func (c *Controller) warn(op string, err error) {
	errors.WarnTo(c.handler, op, err)
}
