package carousel

import (
	"time"

	"github.com/go-drift/carousel/pkg/geometry"
	"github.com/go-drift/carousel/pkg/registry"
)

// DataProvider supplies the items shown by a carousel.
type DataProvider interface {
	// NumberOfItems returns the current item count.
	NumberOfItems() int
	// ItemForPosition returns the item for position. recyclable, when not
	// nil, is an item leaving the carousel whose content may be reused; the
	// provider is free to ignore it.
	ItemForPosition(position int, recyclable *registry.Item) *registry.Item
}

// RenderSurface applies coordinates decided by the controller.
type RenderSurface interface {
	// Place moves item to at immediately.
	Place(item *registry.Item, at geometry.Offset)
	// Animate moves item to to over duration. The controller has already
	// committed to as the item's location when Animate is called.
	Animate(item *registry.Item, to geometry.Offset, duration time.Duration)
	// CaptureCurrentCoordinate returns where item is currently drawn,
	// which may differ from its committed location mid-animation.
	CaptureCurrentCoordinate(item *registry.Item) geometry.Offset
}

// OpacitySurface is implemented by surfaces that can fade items. Inserted
// and replaced items start transparent and are revealed through it.
type OpacitySurface interface {
	SetOpacity(item *registry.Item, opacity float64)
	AnimateOpacity(item *registry.Item, opacity float64, duration time.Duration)
}

// ItemDetacher is implemented by surfaces that hold per-item resources.
// Detach is called once an item has left the registry.
type ItemDetacher interface {
	Detach(item *registry.Item)
}

// AnimationObserver is implemented by surfaces that can report whether an
// animation is still in flight.
type AnimationObserver interface {
	Animating() bool
}

// EventSink receives carousel notifications. Embed [NopEventSink] to
// implement only the callbacks you need, or use [EventFuncs].
type EventSink interface {
	// OnScroll is called on every horizontal drag update.
	OnScroll()
	// OnSelect is called when the selected item changes.
	OnSelect(item *registry.Item, position int)
	// OnTap is called when the host reports a tap on an item.
	OnTap(item *registry.Item, position int)
	// OnLongPress is called when the host reports a long press on an item.
	OnLongPress(item *registry.Item, position int)
}

// NopEventSink implements EventSink with no-op callbacks.
type NopEventSink struct{}

func (NopEventSink) OnScroll()                       {}
func (NopEventSink) OnSelect(*registry.Item, int)    {}
func (NopEventSink) OnTap(*registry.Item, int)       {}
func (NopEventSink) OnLongPress(*registry.Item, int) {}

// EventFuncs adapts independent, optional callbacks to EventSink.
// Nil fields are skipped.
type EventFuncs struct {
	Scroll    func()
	Select    func(item *registry.Item, position int)
	Tap       func(item *registry.Item, position int)
	LongPress func(item *registry.Item, position int)
}

func (f EventFuncs) OnScroll() {
	if f.Scroll != nil {
		f.Scroll()
	}
}

func (f EventFuncs) OnSelect(item *registry.Item, position int) {
	if f.Select != nil {
		f.Select(item, position)
	}
}

func (f EventFuncs) OnTap(item *registry.Item, position int) {
	if f.Tap != nil {
		f.Tap(item, position)
	}
}

func (f EventFuncs) OnLongPress(item *registry.Item, position int) {
	if f.LongPress != nil {
		f.LongPress(item, position)
	}
}

// headlessSurface is used when no surface is configured; it tracks nothing
// beyond the committed locations.
type headlessSurface struct{}

func (headlessSurface) Place(*registry.Item, geometry.Offset)                  {}
func (headlessSurface) Animate(*registry.Item, geometry.Offset, time.Duration) {}

func (headlessSurface) CaptureCurrentCoordinate(item *registry.Item) geometry.Offset {
	loc, _ := item.LastCommittedLocation()
	return loc
}
