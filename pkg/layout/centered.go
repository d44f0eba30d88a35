package layout

import "github.com/go-drift/carousel/pkg/registry"

// DefaultPreview is how far, by default, neighbours of a centered item
// intrude into the viewport.
const DefaultPreview = 25.0

// Centered keeps the selected item horizontally centered. Adjacent centers
// are viewport/2 + width(next)/2 - Preview apart, so Preview is the amount
// of the neighbouring item left visible at the viewport edge.
type Centered struct {
	Preview float64
}

// NewCentered returns a Centered layout. A negative preview selects
// DefaultPreview.
func NewCentered(preview float64) Centered {
	if preview < 0 {
		preview = DefaultPreview
	}
	return Centered{Preview: preview}
}

func (Centered) Kind() Kind { return KindCentered }

func (Centered) anchor(_ *registry.Item, viewport float64) float64 {
	return viewport / 2
}

func (c Centered) gap(_, next *registry.Item, viewport float64) float64 {
	return viewport/2 + next.Size.Width/2 - c.Preview
}

// Anchor returns the viewport center.
func (c Centered) Anchor(item *registry.Item, viewport float64) float64 {
	return c.anchor(item, viewport)
}

// Gap returns the distance between the centers of prev and next.
func (c Centered) Gap(prev, next *registry.Item, viewport float64) float64 {
	return c.gap(prev, next, viewport)
}

func (c Centered) InitialLayout(items *registry.Registry, viewport float64, position int) (Placement, error) {
	return initialLayout(c, items, viewport, position)
}

func (c Centered) StepOffset(items *registry.Registry, viewport float64, position int, dir Direction) (float64, error) {
	return stepOffset(c, items, viewport, position, dir)
}

func (c Centered) ScrollDelta(items *registry.Registry, viewport float64, from, to int) (float64, error) {
	return scrollDelta(c, items, viewport, from, to)
}
