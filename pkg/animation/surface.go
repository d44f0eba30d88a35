package animation

import (
	"time"

	"github.com/go-drift/carousel/pkg/geometry"
	"github.com/go-drift/carousel/pkg/registry"
)

// Surface records where carousel items are drawn and how opaque they are,
// animating both over time. It satisfies carousel.RenderSurface together
// with the opacity, detach and animation observer extensions, and is meant
// to be embedded by hosts that paint frames.
type Surface struct {
	positions *Timeline[*registry.Item, geometry.Offset]
	opacities *Timeline[*registry.Item, float64]
}

// NewSurface creates a surface reading time from clk. Nil uses the package
// clock.
func NewSurface(clk Clock) *Surface {
	s := &Surface{
		positions: NewTimeline[*registry.Item](LerpOffset),
		opacities: NewTimeline[*registry.Item](LerpFloat64),
	}
	s.positions.Clock = clk
	s.opacities.Clock = clk
	s.opacities.Curve = LinearCurve
	return s
}

// Place moves item to at immediately.
func (s *Surface) Place(item *registry.Item, at geometry.Offset) {
	s.positions.Set(item, at)
}

// Animate moves item to to over duration.
func (s *Surface) Animate(item *registry.Item, to geometry.Offset, duration time.Duration) {
	s.positions.AnimateTo(item, to, duration)
}

// CaptureCurrentCoordinate returns where item is drawn right now. Items the
// surface has never seen report their committed location.
func (s *Surface) CaptureCurrentCoordinate(item *registry.Item) geometry.Offset {
	if at, ok := s.positions.Value(item); ok {
		return at
	}
	loc, _ := item.LastCommittedLocation()
	return loc
}

// SetOpacity sets item's opacity immediately.
func (s *Surface) SetOpacity(item *registry.Item, opacity float64) {
	s.opacities.Set(item, opacity)
}

// AnimateOpacity fades item to opacity over duration.
func (s *Surface) AnimateOpacity(item *registry.Item, opacity float64, duration time.Duration) {
	s.opacities.AnimateTo(item, opacity, duration)
}

// Opacity returns item's current opacity; untracked items are opaque.
func (s *Surface) Opacity(item *registry.Item) float64 {
	if o, ok := s.opacities.Value(item); ok {
		return o
	}
	return 1
}

// Detach forgets item.
func (s *Surface) Detach(item *registry.Item) {
	s.positions.Delete(item)
	s.opacities.Delete(item)
}

// Step settles finished animations and reports whether any are running.
func (s *Surface) Step() bool {
	moving := s.positions.Step()
	fading := s.opacities.Step()
	return moving || fading
}

// Animating reports whether a move or fade is in flight.
func (s *Surface) Animating() bool {
	return s.positions.Active() || s.opacities.Active()
}

// Frame returns item's current frame, derived from its drawn center.
func (s *Surface) Frame(item *registry.Item) geometry.Rect {
	return geometry.RectFromCenter(s.CaptureCurrentCoordinate(item), item.Size)
}
