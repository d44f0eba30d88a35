package carousel

import (
	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/geometry"
	"github.com/go-drift/carousel/pkg/registry"
)

// Structural notifications follow a soft-failure policy: when the data
// provider's count does not reflect exactly one insert, remove or change,
// the call reports a warning and leaves every piece of state untouched.
// Use Reload for bulk changes.
//
// The current position tracks the selected item: inserting at or before it
// increments the position, removing before it decrements the position.
// Removing the selected item selects the item that slides into its slot.

// targets collects the final location of each item before any is handed to
// the surface, so every item moves at most once per notification.
type targets map[*registry.Item]geometry.Offset

func (c *Controller) committedTargets() targets {
	t := make(targets, c.items.Len())
	for _, item := range c.items.All() {
		if loc, ok := item.LastCommittedLocation(); ok {
			t[item] = loc
		}
	}
	return t
}

// shift translates the targets of items at positions [from, Len) by dx.
func (c *Controller) shift(t targets, from int, dx float64) {
	for i, item := range c.items.All() {
		if i >= from {
			t[item] = t[item].Translate(dx, 0)
		}
	}
}

// anchor translates every target so the selected item sits on the
// strategy's anchor.
func (c *Controller) anchor(t targets) {
	selected := c.SelectedItem()
	if selected == nil {
		return
	}
	correction := c.strategy.Anchor(selected, c.viewport) - t[selected].X
	if geometry.NearlyEqual(correction, 0) {
		return
	}
	c.shift(t, 0, correction)
}

// apply hands every changed target to the surface.
func (c *Controller) apply(t targets, fresh *registry.Item) {
	for _, item := range c.items.All() {
		to := t[item]
		if item == fresh {
			c.reveal(item, to)
			continue
		}
		if loc, _ := item.LastCommittedLocation(); loc == to {
			continue
		}
		c.moveTo(item, to, true)
	}
}

// reveal places a new item at its slot and fades it in.
func (c *Controller) reveal(item *registry.Item, at geometry.Offset) {
	fader, fades := c.surface.(OpacitySurface)
	if fades {
		fader.SetOpacity(item, 0)
	}
	c.surface.Place(item, at)
	item.Commit(at)
	if !fades {
		return
	}
	if c.animations {
		fader.AnimateOpacity(item, 1, c.duration)
	} else {
		fader.SetOpacity(item, 1)
	}
}

// checkCount validates the provider count for a notification at index.
// want is the count the notification implies and limit the exclusive upper
// bound for index.
func (c *Controller) checkCount(op string, index, want, limit int) bool {
	if c.provider == nil {
		c.warn(op, errors.DataSourceNotSet(op))
		return false
	}
	if got := c.provider.NumberOfItems(); got != want {
		c.warn(op, errors.CountMismatch(op, index, want, got))
		return false
	}
	if index < 0 || index >= limit {
		c.warn(op, errors.IndexOutOfRange(op, index, c.items.Len()))
		return false
	}
	return true
}

// NotifyItemInserted tells the controller the data provider gained one item
// at index. The new item is placed next to its new neighbour and the items
// after it move one step further along.
func (c *Controller) NotifyItemInserted(index int) {
	const op = "carousel.NotifyItemInserted"
	n := c.items.Len()
	if !c.checkCount(op, index, n+1, n+1) {
		return
	}
	item := c.provider.ItemForPosition(index, nil)
	if item == nil {
		c.warn(op, errors.IndexOutOfRange(op, index, n))
		return
	}
	c.endSession()
	if err := c.items.Insert(item, index); err != nil {
		c.warn(op, err)
		return
	}
	c.initialized = true

	if n == 0 {
		c.position = 0
		placement, err := c.strategy.InitialLayout(c.items, c.viewport, 0)
		if err != nil {
			c.warn(op, err)
			return
		}
		c.reveal(item, placement[item])
		c.notifySelect()
		return
	}

	t := c.committedTargets()
	y := item.Size.Height / 2
	if index > 0 {
		prev, _ := c.items.At(index - 1)
		t[item] = geometry.Offset{X: t[prev].X + c.strategy.Gap(prev, item, c.viewport), Y: y}
	} else {
		head, _ := c.items.At(1)
		t[item] = geometry.Offset{X: t[head].X, Y: y}
	}
	if index+1 < c.items.Len() {
		next, _ := c.items.At(index + 1)
		want := t[item].X + c.strategy.Gap(item, next, c.viewport)
		c.shift(t, index+1, want-t[next].X)
	}
	if index <= c.position {
		c.position++
	}
	c.anchor(t)
	c.apply(t, item)
}

// NotifyItemRemoved tells the controller the data provider lost the item at
// index. Items after it close the gap by one step.
func (c *Controller) NotifyItemRemoved(index int) {
	const op = "carousel.NotifyItemRemoved"
	n := c.items.Len()
	if !c.checkCount(op, index, n-1, n) {
		return
	}
	c.endSession()
	t := c.committedTargets()
	removed, err := c.items.RemoveAt(index)
	if err != nil {
		c.warn(op, err)
		return
	}
	defer c.detach(removed)

	remaining := c.items.Len()
	if remaining == 0 {
		c.position = 0
		return
	}
	if index < remaining {
		next, _ := c.items.At(index)
		want := t[removed].X
		if index > 0 {
			prev, _ := c.items.At(index - 1)
			want = t[prev].X + c.strategy.Gap(prev, next, c.viewport)
		}
		c.shift(t, index, want-t[next].X)
	}

	reselect := false
	switch {
	case index < c.position:
		c.position--
	case index == c.position:
		reselect = true
		if c.position >= remaining {
			c.position = remaining - 1
		}
	}
	c.anchor(t)
	c.apply(t, nil)
	if reselect {
		c.notifySelect()
	}
}

// NotifyItemChanged tells the controller the item at index was replaced.
// The new item starts where the old one is currently drawn and is revealed
// in place; if its width differs the neighbours are laid out again.
func (c *Controller) NotifyItemChanged(index int) {
	const op = "carousel.NotifyItemChanged"
	n := c.items.Len()
	if !c.checkCount(op, index, n, n) {
		return
	}
	c.endSession()
	old, _ := c.items.At(index)
	start := c.surface.CaptureCurrentCoordinate(old)
	slot, _ := old.LastCommittedLocation()
	oldSize := old.Size
	fresh := c.provider.ItemForPosition(index, old)
	if fresh == nil {
		c.warn(op, errors.IndexOutOfRange(op, index, n))
		return
	}
	if fresh != old {
		if _, err := c.items.ReplaceAt(index, fresh); err != nil {
			c.warn(op, err)
			return
		}
		c.detach(old)
	}

	if fresh.Size.Width != oldSize.Width {
		c.reveal(fresh, start)
		if err := c.layoutAll(true); err != nil {
			c.warn(op, err)
		}
	} else {
		c.reveal(fresh, start)
		c.moveTo(fresh, geometry.Offset{X: slot.X, Y: fresh.Size.Height / 2}, true)
	}
	if index == c.position {
		c.notifySelect()
	}
}
