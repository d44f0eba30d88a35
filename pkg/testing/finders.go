package testing

import (
	"fmt"

	"github.com/go-drift/carousel/pkg/geometry"
	"github.com/go-drift/carousel/pkg/registry"
	"github.com/google/uuid"
)

// FrameFunc returns the frame an item is drawn in.
type FrameFunc func(item *registry.Item) geometry.Rect

// Finder locates items held by a controller.
type Finder interface {
	// Evaluate returns all matching items in display order.
	Evaluate(items []*registry.Item, frame FrameFunc) []*registry.Item
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	items  []*registry.Item
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *registry.Item {
	if len(r.items) == 0 {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("Finder found no items: %s", desc))
	}
	return r.items[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *registry.Item {
	if len(r.items) == 0 {
		return nil
	}
	return r.items[0]
}

// All returns all matches in display order.
func (r FinderResult) All() []*registry.Item {
	return r.items
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.items)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.items) > 0
}

// Positions returns the registry position of every match.
func (r FinderResult) Positions() []int {
	out := make([]int, len(r.items))
	for i, item := range r.items {
		out[i] = item.Position()
	}
	return out
}

type predicateFinder struct {
	desc  string
	match func(item *registry.Item, frame FrameFunc) bool
}

func (f *predicateFinder) Evaluate(items []*registry.Item, frame FrameFunc) []*registry.Item {
	var out []*registry.Item
	for _, item := range items {
		if f.match(item, frame) {
			out = append(out, item)
		}
	}
	return out
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByContent matches items whose Content equals content.
func ByContent(content any) Finder {
	return &predicateFinder{
		desc:  fmt.Sprintf("ByContent(%v)", content),
		match: func(item *registry.Item, _ FrameFunc) bool { return item.Content == content },
	}
}

// ByID matches the item with the given identity.
func ByID(id uuid.UUID) Finder {
	return &predicateFinder{
		desc:  fmt.Sprintf("ByID(%s)", id),
		match: func(item *registry.Item, _ FrameFunc) bool { return item.ID == id },
	}
}

// Visible matches items whose frame overlaps [0, viewport) horizontally.
func Visible(viewport float64) Finder {
	return &predicateFinder{
		desc: fmt.Sprintf("Visible(%g)", viewport),
		match: func(item *registry.Item, frame FrameFunc) bool {
			r := frame(item)
			return r.Right > 0 && r.Left < viewport
		},
	}
}

// ByPredicate matches items for which fn returns true.
func ByPredicate(description string, fn func(item *registry.Item) bool) Finder {
	return &predicateFinder{
		desc:  description,
		match: func(item *registry.Item, _ FrameFunc) bool { return fn(item) },
	}
}
