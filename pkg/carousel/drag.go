package carousel

import (
	"math"

	"github.com/go-drift/carousel/pkg/geometry"
	"github.com/go-drift/carousel/pkg/layout"
	"github.com/go-drift/carousel/pkg/registry"
)

// session is the transient state of one drag gesture.
type session struct {
	origins     map[*registry.Item]geometry.Offset
	translation geometry.Offset
}

// DragOutcome describes how a drag session ended.
type DragOutcome struct {
	// Committed is true when the drag moved the current position.
	Committed bool
	// Direction is the direction resolved from the final translation.
	Direction layout.Direction
	// Position is the current position after the drag.
	Position int
}

// BeginDrag starts a drag session, capturing every item's committed
// location as its origin. A session already in progress is restarted.
// Hosts should suspend competing gesture delegation until EndDrag.
func (c *Controller) BeginDrag() {
	if c.items.Len() == 0 {
		return
	}
	s := &session{origins: make(map[*registry.Item]geometry.Offset, c.items.Len())}
	for _, item := range c.items.All() {
		loc, _ := item.LastCommittedLocation()
		s.origins[item] = loc
	}
	c.session = s
}

// UpdateDrag moves every item by the horizontal component of translation,
// measured from the drag start. Predominantly vertical translations leave
// items where they are so vertical gestures pass through.
func (c *Controller) UpdateDrag(translation geometry.Offset) {
	s := c.session
	if s == nil {
		return
	}
	s.translation = translation
	if math.Abs(translation.Y) > math.Abs(translation.X) {
		return
	}
	for _, item := range c.items.All() {
		c.surface.Place(item, s.origins[item].Translate(translation.X, 0))
	}
	c.dispatch("carousel.EventSink.OnScroll", c.sink.OnScroll)
}

// EndDrag resolves the session into a one-step commit or a cancellation.
//
// The drag cancels when the horizontal translation is shorter than the drag
// threshold, when it pulls past the tail at the last position or past the
// head at the first, or when fewer than two items exist. Cancelling restores
// every origin; committing advances every item by one step offset and
// notifies the sink of the new selection.
func (c *Controller) EndDrag(translation geometry.Offset) DragOutcome {
	s := c.session
	if s == nil {
		return DragOutcome{Direction: layout.DirectionOf(translation.X), Position: c.position}
	}
	s.translation = translation
	dx := translation.X
	dir := layout.DirectionOf(dx)
	outcome := DragOutcome{Direction: dir, Position: c.position}

	if c.shouldCancel(dx) {
		c.cancelSession(true)
		return outcome
	}

	target := c.position + int(dir)
	delta, err := c.strategy.ScrollDelta(c.items, c.viewport, c.position, target)
	if err != nil {
		c.cancelSession(true)
		return outcome
	}
	for _, item := range c.items.All() {
		c.moveTo(item, s.origins[item].Translate(delta, 0), true)
	}
	c.session = nil
	c.position = target
	c.notifySelect()

	outcome.Committed = true
	outcome.Position = c.position
	return outcome
}

func (c *Controller) shouldCancel(dx float64) bool {
	n := c.items.Len()
	switch {
	case n < 2:
		return true
	case math.Abs(dx) < c.threshold:
		return true
	case c.position == n-1 && dx < 0:
		return true
	case c.position == 0 && dx > 0:
		return true
	}
	return false
}

// cancelSession restores every item to its drag origin.
func (c *Controller) cancelSession(animated bool) {
	s := c.session
	if s == nil {
		return
	}
	c.session = nil
	for _, item := range c.items.All() {
		origin, ok := s.origins[item]
		if !ok {
			continue
		}
		c.moveTo(item, origin, animated)
	}
}

// endSession drops an active session, snapping items back to their origins.
func (c *Controller) endSession() {
	if c.session != nil {
		c.cancelSession(false)
	}
}
