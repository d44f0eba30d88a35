package testing

import (
	"fmt"

	"github.com/go-drift/carousel/pkg/geometry"
	"github.com/go-drift/carousel/pkg/registry"
)

// DefaultItemHeight is the height of items built by NewSliceProvider.
const DefaultItemHeight = 100

// SliceProvider is a data provider backed by a slice. Its mutation helpers
// change the slice only; callers notify the controller themselves so tests
// can exercise count mismatches.
type SliceProvider struct {
	Items []*registry.Item
	// Recycled records every non-nil recyclable item offered to
	// ItemForPosition.
	Recycled []*registry.Item
	// Reuse makes ItemForPosition return the recyclable item instead of
	// the slice entry when one is offered.
	Reuse bool

	next int
}

// NewSliceProvider builds one item per width, labelled "item-0", "item-1"...
func NewSliceProvider(widths ...float64) *SliceProvider {
	p := &SliceProvider{}
	for _, w := range widths {
		p.Items = append(p.Items, p.NewItem(w))
	}
	return p
}

// NewItem builds an item with the next label and the given width.
func (p *SliceProvider) NewItem(width float64) *registry.Item {
	item := registry.NewItem(fmt.Sprintf("item-%d", p.next), geometry.Size{Width: width, Height: DefaultItemHeight})
	p.next++
	return item
}

// NumberOfItems returns len(p.Items).
func (p *SliceProvider) NumberOfItems() int {
	return len(p.Items)
}

// ItemForPosition returns p.Items[position], or nil when out of range.
func (p *SliceProvider) ItemForPosition(position int, recyclable *registry.Item) *registry.Item {
	if recyclable != nil {
		p.Recycled = append(p.Recycled, recyclable)
	}
	if position < 0 || position >= len(p.Items) {
		return nil
	}
	if p.Reuse && recyclable != nil {
		recyclable.Content = p.Items[position].Content
		recyclable.Size = p.Items[position].Size
		p.Items[position] = recyclable
	}
	return p.Items[position]
}

// Insert adds a new item of width at index and returns it.
func (p *SliceProvider) Insert(index int, width float64) *registry.Item {
	item := p.NewItem(width)
	p.Items = append(p.Items, nil)
	copy(p.Items[index+1:], p.Items[index:])
	p.Items[index] = item
	return item
}

// Remove drops the item at index and returns it.
func (p *SliceProvider) Remove(index int) *registry.Item {
	item := p.Items[index]
	p.Items = append(p.Items[:index], p.Items[index+1:]...)
	return item
}

// Replace swaps the item at index for a new item of width and returns it.
func (p *SliceProvider) Replace(index int, width float64) *registry.Item {
	item := p.NewItem(width)
	p.Items[index] = item
	return item
}
