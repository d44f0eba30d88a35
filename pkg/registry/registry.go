// Package registry holds carousel items in presentation order.
//
// A [Registry] is an arena-backed sequence: items live in one contiguous
// slice and an item's position is always its slice index. Every structural
// mutation renumbers the affected items before returning, so Position can be
// read at any time by layout strategies and event sinks.
package registry

import (
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/geometry"
)

// Item wraps externally supplied content with its placement bookkeeping.
type Item struct {
	// ID identifies the item across renumbering.
	ID uuid.UUID
	// Content is the opaque visual handle supplied by the data provider.
	Content any
	// Size is the intrinsic footprint of the item.
	Size geometry.Size

	position  int
	location  geometry.Offset
	committed bool
	owned     bool
}

// NewItem creates an item with a fresh ID.
// The item is unplaced until it is added to a registry.
func NewItem(content any, size geometry.Size) *Item {
	return &Item{
		ID:       uuid.New(),
		Content:  content,
		Size:     size,
		position: -1,
	}
}

// Position returns the item's rank in display order, or -1 if the item is not
// held by a registry.
func (it *Item) Position() int {
	return it.position
}

// LastCommittedLocation returns the center coordinate recorded at the end of
// the last completed layout or scroll. ok is false until the item has been
// laid out.
func (it *Item) LastCommittedLocation() (loc geometry.Offset, ok bool) {
	return it.location, it.committed
}

// Commit records loc as the item's last committed location.
func (it *Item) Commit(loc geometry.Offset) {
	it.location = loc
	it.committed = true
}

// Frame returns the item's rectangle around its committed location.
func (it *Item) Frame() geometry.Rect {
	return geometry.RectFromCenter(it.location, it.Size)
}

func (it *Item) String() string {
	return fmt.Sprintf("Item(%d, %s)", it.position, it.ID.String()[:8])
}

// Registry is an ordered sequence of items with dense, stable positions.
// The zero value is an empty registry ready to use.
type Registry struct {
	items []*Item
}

// New returns a registry sized for n items.
func New(n int) *Registry {
	return &Registry{items: make([]*Item, 0, n)}
}

// Len returns the number of items.
func (r *Registry) Len() int {
	return len(r.items)
}

// Append adds item at the tail.
func (r *Registry) Append(item *Item) error {
	if err := r.adopt("registry.Append", item); err != nil {
		return err
	}
	item.position = len(r.items)
	r.items = append(r.items, item)
	return nil
}

// Prepend adds item at the head, renumbering every existing item.
func (r *Registry) Prepend(item *Item) error {
	return r.Insert(item, 0)
}

// Insert places item at index, shifting items at or after index up by one.
// index may equal Len to append.
func (r *Registry) Insert(item *Item, index int) error {
	if index < 0 || index > len(r.items) {
		return errors.IndexOutOfRange("registry.Insert", index, len(r.items))
	}
	if err := r.adopt("registry.Insert", item); err != nil {
		return err
	}
	r.items = append(r.items, nil)
	copy(r.items[index+1:], r.items[index:])
	r.items[index] = item
	r.renumber(index)
	return nil
}

// RemoveAt detaches and returns the item at index, shifting later items down
// by one.
func (r *Registry) RemoveAt(index int) (*Item, error) {
	if err := r.check("registry.RemoveAt", index); err != nil {
		return nil, err
	}
	removed := r.items[index]
	copy(r.items[index:], r.items[index+1:])
	r.items[len(r.items)-1] = nil
	r.items = r.items[:len(r.items)-1]
	r.renumber(index)
	release(removed)
	return removed, nil
}

// ReplaceAt swaps the item at index for item and returns the previous one.
// The new item keeps the position but not the committed location: it stays
// unplaced until the next layout pass.
func (r *Registry) ReplaceAt(index int, item *Item) (*Item, error) {
	if err := r.check("registry.ReplaceAt", index); err != nil {
		return nil, err
	}
	if err := r.adopt("registry.ReplaceAt", item); err != nil {
		return nil, err
	}
	old := r.items[index]
	item.position = index
	item.committed = false
	item.location = geometry.Offset{}
	r.items[index] = item
	release(old)
	return old, nil
}

// At returns the item at index.
func (r *Registry) At(index int) (*Item, error) {
	if err := r.check("registry.At", index); err != nil {
		return nil, err
	}
	return r.items[index], nil
}

// Head returns the first item, or nil when empty.
func (r *Registry) Head() *Item {
	if len(r.items) == 0 {
		return nil
	}
	return r.items[0]
}

// Tail returns the last item, or nil when empty.
func (r *Registry) Tail() *Item {
	if len(r.items) == 0 {
		return nil
	}
	return r.items[len(r.items)-1]
}

// IndexOf returns the position of item, or -1 if r does not hold it.
func (r *Registry) IndexOf(item *Item) int {
	if item == nil || item.position < 0 || item.position >= len(r.items) {
		return -1
	}
	if r.items[item.position] != item {
		return -1
	}
	return item.position
}

// All iterates items in display order.
func (r *Registry) All() iter.Seq2[int, *Item] {
	return func(yield func(int, *Item) bool) {
		for i, item := range r.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Items returns a copy of the items in display order.
func (r *Registry) Items() []*Item {
	out := make([]*Item, len(r.items))
	copy(out, r.items)
	return out
}

// Clear detaches every item.
func (r *Registry) Clear() {
	for i, item := range r.items {
		release(item)
		r.items[i] = nil
	}
	r.items = r.items[:0]
}

// CheckInvariants verifies that every item's position equals its index.
func (r *Registry) CheckInvariants() error {
	seen := make(map[*Item]struct{}, len(r.items))
	for i, item := range r.items {
		if item == nil {
			return fmt.Errorf("registry: nil item at index %d", i)
		}
		if item.position != i {
			return fmt.Errorf("registry: item at index %d reports position %d", i, item.position)
		}
		if _, dup := seen[item]; dup {
			return fmt.Errorf("registry: item %s held twice", item)
		}
		seen[item] = struct{}{}
	}
	return nil
}

func (r *Registry) check(op string, index int) error {
	if index < 0 || index >= len(r.items) {
		return errors.IndexOutOfRange(op, index, len(r.items))
	}
	return nil
}

func (r *Registry) adopt(op string, item *Item) error {
	if item == nil {
		return fmt.Errorf("%s: nil item", op)
	}
	if item.owned {
		return fmt.Errorf("%s: item %s already belongs to a registry", op, item)
	}
	item.owned = true
	return nil
}

// renumber restores position == index for every item from start onwards.
func (r *Registry) renumber(start int) {
	for i := start; i < len(r.items); i++ {
		r.items[i].position = i
	}
}

func release(item *Item) {
	item.owned = false
	item.position = -1
}
