// Package layout computes carousel item coordinates.
//
// A [Strategy] is pure: given a registry, a viewport width and a logical
// position it yields the same coordinates every time. Strategies separate
// absolute placement ([Strategy.InitialLayout]) from the incremental cost of
// moving between neighbouring positions ([Strategy.StepOffset]), so a
// scroll can translate every item by one shared delta instead of laying the
// whole registry out again on each drag frame.
//
// Two variants exist, selected by [Kind]:
//
//	layout.NewCentered(25)       // selected item centered, neighbours peek in by 25
//	layout.NewLeftBound(0, 25)   // selected item pinned to the left margin
//
// Coordinates are item centers; use [Placement.Frame] for rectangles.
package layout

import (
	"fmt"
	"strings"

	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/geometry"
	"github.com/go-drift/carousel/pkg/registry"
)

// Direction is the way a scroll moves the current position.
type Direction int

const (
	// Left moves toward the head (position decreases).
	Left Direction = -1
	// Right moves toward the tail (position increases).
	Right Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// DirectionOf resolves a horizontal drag translation into a direction.
// Dragging content to the right reveals the previous item.
func DirectionOf(dx float64) Direction {
	if dx > 0 {
		return Left
	}
	return Right
}

// Kind tags a layout variant.
type Kind int

const (
	// KindCentered centers the selected item in the viewport.
	KindCentered Kind = iota
	// KindLeftBound pins the selected item to the left margin.
	KindLeftBound
)

func (k Kind) String() string {
	switch k {
	case KindCentered:
		return "centered"
	case KindLeftBound:
		return "left_bound"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses the names produced by Kind.String. Matching is
// case-insensitive and accepts "left-bound" and "leftbound".
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "centered", "center", "":
		return KindCentered, nil
	case "left_bound", "left-bound", "leftbound":
		return KindLeftBound, nil
	default:
		return 0, fmt.Errorf("unknown layout %q (use centered or left_bound)", name)
	}
}

// Placement maps items to their target center coordinates.
type Placement map[*registry.Item]geometry.Offset

// Frame returns the rectangle item occupies in p.
func (p Placement) Frame(item *registry.Item) (geometry.Rect, bool) {
	center, ok := p[item]
	if !ok {
		return geometry.Rect{}, false
	}
	return geometry.RectFromCenter(center, item.Size), true
}

// Strategy is the contract shared by every layout variant.
type Strategy interface {
	// Kind reports which variant this is.
	Kind() Kind
	// Anchor returns the x center the selected item occupies.
	Anchor(item *registry.Item, viewport float64) float64
	// Gap returns the distance between the centers of two adjacent items.
	Gap(prev, next *registry.Item, viewport float64) float64
	// InitialLayout places every item so that the item at position is selected.
	InitialLayout(items *registry.Registry, viewport float64, position int) (Placement, error)
	// StepOffset returns the distance covered by moving one position from
	// position in dir. It is always non-negative.
	StepOffset(items *registry.Registry, viewport float64, position int, dir Direction) (float64, error)
	// ScrollDelta returns the signed x delta to apply to every item when the
	// current position moves from one position to another.
	ScrollDelta(items *registry.Registry, viewport float64, from, to int) (float64, error)
}

// Params configures New. Nil fields select the defaults; an explicit zero
// is kept.
type Params struct {
	Preview       *float64
	InitialMargin *float64
	Margin        *float64
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// New builds the strategy variant for kind.
func New(kind Kind, params Params) (Strategy, error) {
	switch kind {
	case KindCentered:
		return NewCentered(valueOr(params.Preview, DefaultPreview)), nil
	case KindLeftBound:
		return NewLeftBound(
			valueOr(params.InitialMargin, DefaultInitialMargin),
			valueOr(params.Margin, DefaultMargin),
		), nil
	default:
		return nil, fmt.Errorf("layout.New: unsupported kind %v", kind)
	}
}

// Default returns the layout used when none is configured.
func Default() Strategy {
	return NewCentered(DefaultPreview)
}

// spacing is the geometry a variant contributes; placement and stepping are
// shared.
type spacing interface {
	anchor(item *registry.Item, viewport float64) float64
	// gap is the distance between the centers of two adjacent items.
	gap(prev, next *registry.Item, viewport float64) float64
}

func initialLayout(s spacing, items *registry.Registry, viewport float64, position int) (Placement, error) {
	const op = "layout.InitialLayout"
	n := items.Len()
	placement := make(Placement, n)
	if n == 0 {
		return placement, nil
	}
	if position < 0 || position >= n {
		return nil, errors.PositionOutOfBounds(op, position, n)
	}
	all := items.Items()
	xs := make([]float64, n)
	xs[position] = s.anchor(all[position], viewport)
	for i := position + 1; i < n; i++ {
		xs[i] = xs[i-1] + s.gap(all[i-1], all[i], viewport)
	}
	for i := position - 1; i >= 0; i-- {
		xs[i] = xs[i+1] - s.gap(all[i], all[i+1], viewport)
	}
	for i, item := range all {
		placement[item] = geometry.Offset{X: xs[i], Y: item.Size.Height / 2}
	}
	return placement, nil
}

func stepOffset(s spacing, items *registry.Registry, viewport float64, position int, dir Direction) (float64, error) {
	const op = "layout.StepOffset"
	n := items.Len()
	if n < 2 {
		return 0, errors.InsufficientItems(op, n)
	}
	if position < 0 || position >= n {
		return 0, errors.IndexOutOfRange(op, position, n)
	}
	target := position + int(dir)
	if dir != Left && dir != Right || target < 0 || target >= n {
		return 0, errors.IndexOutOfRange(op, target, n)
	}
	lo, hi := min(position, target), max(position, target)
	prev, _ := items.At(lo)
	next, _ := items.At(hi)
	// The selected item must land on its own anchor, so anchors that depend
	// on item width shorten or lengthen the step.
	return s.gap(prev, next, viewport) - (s.anchor(next, viewport) - s.anchor(prev, viewport)), nil
}

func scrollDelta(s spacing, items *registry.Registry, viewport float64, from, to int) (float64, error) {
	const op = "layout.ScrollDelta"
	n := items.Len()
	if from < 0 || from >= n {
		return 0, errors.PositionOutOfBounds(op, from, n)
	}
	if to < 0 || to >= n {
		return 0, errors.PositionOutOfBounds(op, to, n)
	}
	if from == to {
		return 0, nil
	}
	if n < 2 {
		return 0, errors.InsufficientItems(op, n)
	}
	dir := Right
	if to < from {
		dir = Left
	}
	var delta float64
	for p := from; p != to; p += int(dir) {
		step, err := stepOffset(s, items, viewport, p, dir)
		if err != nil {
			return 0, err
		}
		// Moving toward the tail slides content toward negative x.
		delta -= float64(dir) * step
	}
	return delta, nil
}
