package testing

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/geometry"
	"github.com/go-drift/carousel/pkg/registry"
)

// Op names a recorded surface call.
type Op string

const (
	OpPlace          Op = "place"
	OpAnimate        Op = "animate"
	OpSetOpacity     Op = "set_opacity"
	OpAnimateOpacity Op = "animate_opacity"
	OpDetach         Op = "detach"
)

// Call is one recorded surface call.
type Call struct {
	Op       Op
	Item     *registry.Item
	At       geometry.Offset
	Opacity  float64
	Duration time.Duration
}

func (c Call) String() string {
	switch c.Op {
	case OpPlace:
		return fmt.Sprintf("place(%v, %.2f,%.2f)", c.Item.Content, c.At.X, c.At.Y)
	case OpAnimate:
		return fmt.Sprintf("animate(%v, %.2f,%.2f, %v)", c.Item.Content, c.At.X, c.At.Y, c.Duration)
	case OpSetOpacity, OpAnimateOpacity:
		return fmt.Sprintf("%s(%v, %.2f)", c.Op, c.Item.Content, c.Opacity)
	default:
		return fmt.Sprintf("%s(%v)", c.Op, c.Item.Content)
	}
}

// RecordingSurface is a render surface that animates through an
// [animation.Surface] driven by a fake clock and logs every call.
type RecordingSurface struct {
	*animation.Surface
	Calls []Call
}

// NewRecordingSurface creates a surface reading time from clk.
func NewRecordingSurface(clk animation.Clock) *RecordingSurface {
	return &RecordingSurface{Surface: animation.NewSurface(clk)}
}

func (s *RecordingSurface) Place(item *registry.Item, at geometry.Offset) {
	s.Calls = append(s.Calls, Call{Op: OpPlace, Item: item, At: at})
	s.Surface.Place(item, at)
}

func (s *RecordingSurface) Animate(item *registry.Item, to geometry.Offset, duration time.Duration) {
	s.Calls = append(s.Calls, Call{Op: OpAnimate, Item: item, At: to, Duration: duration})
	s.Surface.Animate(item, to, duration)
}

func (s *RecordingSurface) SetOpacity(item *registry.Item, opacity float64) {
	s.Calls = append(s.Calls, Call{Op: OpSetOpacity, Item: item, Opacity: opacity})
	s.Surface.SetOpacity(item, opacity)
}

func (s *RecordingSurface) AnimateOpacity(item *registry.Item, opacity float64, duration time.Duration) {
	s.Calls = append(s.Calls, Call{Op: OpAnimateOpacity, Item: item, Opacity: opacity, Duration: duration})
	s.Surface.AnimateOpacity(item, opacity, duration)
}

func (s *RecordingSurface) Detach(item *registry.Item) {
	s.Calls = append(s.Calls, Call{Op: OpDetach, Item: item})
	s.Surface.Detach(item)
}

// CallsFor returns the calls recorded for item, optionally filtered by op.
func (s *RecordingSurface) CallsFor(item *registry.Item, ops ...Op) []Call {
	var out []Call
	for _, c := range s.Calls {
		if c.Item != item {
			continue
		}
		if len(ops) == 0 || slices.Contains(ops, c.Op) {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many calls of op were recorded.
func (s *RecordingSurface) Count(op Op) int {
	n := 0
	for _, c := range s.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset clears the call log; drawn state is kept.
func (s *RecordingSurface) Reset() {
	s.Calls = nil
}
