package testing

import (
	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/geometry"
)

// DefaultDragSteps is the number of intermediate updates DragBy emits.
const DefaultDragSteps = 5

// Dragger is the drag session surface of a controller.
type Dragger interface {
	BeginDrag()
	UpdateDrag(translation geometry.Offset)
	EndDrag(translation geometry.Offset) carousel.DragOutcome
}

// DragBy simulates a pan of delta delivered in steps updates, the way a
// gesture recognizer reports cumulative translation.
func DragBy(d Dragger, delta geometry.Offset, steps int) carousel.DragOutcome {
	if steps < 1 {
		steps = 1
	}
	d.BeginDrag()
	for i := 1; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		d.UpdateDrag(geometry.Offset{X: delta.X * frac, Y: delta.Y * frac})
	}
	return d.EndDrag(delta)
}

// Fling simulates a pan that overshoots to peak and returns to delta
// before release.
func Fling(d Dragger, peak, delta geometry.Offset) carousel.DragOutcome {
	d.BeginDrag()
	d.UpdateDrag(geometry.Offset{X: peak.X / 2, Y: peak.Y / 2})
	d.UpdateDrag(peak)
	d.UpdateDrag(delta)
	return d.EndDrag(delta)
}

// DragBy drags the tester's controller by delta.
func (t *Tester) DragBy(delta geometry.Offset) carousel.DragOutcome {
	return DragBy(t.Controller, delta, DefaultDragSteps)
}

// Swipe drags the tester's controller horizontally by dx.
func (t *Tester) Swipe(dx float64) carousel.DragOutcome {
	return t.DragBy(geometry.Offset{X: dx})
}
