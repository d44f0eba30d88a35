package layout

import "github.com/go-drift/carousel/pkg/registry"

// Defaults for LeftBound.
const (
	DefaultMargin        = 25.0
	DefaultInitialMargin = 0.0
)

// LeftBound lines items up from the left edge. The selected item's left edge
// sits at InitialMargin and each following item starts Margin after the
// previous one ends.
type LeftBound struct {
	InitialMargin float64
	Margin        float64
}

// NewLeftBound returns a LeftBound layout. Negative values select the
// defaults.
func NewLeftBound(initialMargin, margin float64) LeftBound {
	if initialMargin < 0 {
		initialMargin = DefaultInitialMargin
	}
	if margin < 0 {
		margin = DefaultMargin
	}
	return LeftBound{InitialMargin: initialMargin, Margin: margin}
}

func (LeftBound) Kind() Kind { return KindLeftBound }

func (l LeftBound) anchor(item *registry.Item, _ float64) float64 {
	return l.InitialMargin + item.Size.Width/2
}

func (l LeftBound) gap(prev, next *registry.Item, _ float64) float64 {
	return prev.Size.Width/2 + l.Margin + next.Size.Width/2
}

// Anchor returns the center that puts item's left edge on InitialMargin.
func (l LeftBound) Anchor(item *registry.Item, viewport float64) float64 {
	return l.anchor(item, viewport)
}

// Gap returns the distance between the centers of prev and next.
func (l LeftBound) Gap(prev, next *registry.Item, viewport float64) float64 {
	return l.gap(prev, next, viewport)
}

func (l LeftBound) InitialLayout(items *registry.Registry, viewport float64, position int) (Placement, error) {
	return initialLayout(l, items, viewport, position)
}

func (l LeftBound) StepOffset(items *registry.Registry, viewport float64, position int, dir Direction) (float64, error) {
	return stepOffset(l, items, viewport, position, dir)
}

func (l LeftBound) ScrollDelta(items *registry.Registry, viewport float64, from, to int) (float64, error) {
	return scrollDelta(l, items, viewport, from, to)
}
