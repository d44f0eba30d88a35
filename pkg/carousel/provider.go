package carousel

import (
	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/registry"
)

// ListProvider is a DataProvider over an editable list of items. Edits do
// not notify any controller; pair each edit with the matching Notify call.
type ListProvider struct {
	items []*registry.Item
}

// NewListProvider creates a provider holding items in order.
func NewListProvider(items ...*registry.Item) *ListProvider {
	return &ListProvider{items: append([]*registry.Item(nil), items...)}
}

// NumberOfItems returns the number of items held.
func (p *ListProvider) NumberOfItems() int {
	return len(p.items)
}

// ItemForPosition returns the item at position, or nil when out of range.
func (p *ListProvider) ItemForPosition(position int, _ *registry.Item) *registry.Item {
	if position < 0 || position >= len(p.items) {
		return nil
	}
	return p.items[position]
}

// Insert adds item at index, shifting later items.
func (p *ListProvider) Insert(index int, item *registry.Item) error {
	if index < 0 || index > len(p.items) {
		return errors.IndexOutOfRange("carousel.ListProvider.Insert", index, len(p.items))
	}
	p.items = append(p.items, nil)
	copy(p.items[index+1:], p.items[index:])
	p.items[index] = item
	return nil
}

// Remove drops the item at index.
func (p *ListProvider) Remove(index int) (*registry.Item, error) {
	if index < 0 || index >= len(p.items) {
		return nil, errors.IndexOutOfRange("carousel.ListProvider.Remove", index, len(p.items))
	}
	item := p.items[index]
	p.items = append(p.items[:index], p.items[index+1:]...)
	return item, nil
}

// Replace swaps the item at index and returns the previous one.
func (p *ListProvider) Replace(index int, item *registry.Item) (*registry.Item, error) {
	if index < 0 || index >= len(p.items) {
		return nil, errors.IndexOutOfRange("carousel.ListProvider.Replace", index, len(p.items))
	}
	old := p.items[index]
	p.items[index] = item
	return old, nil
}
