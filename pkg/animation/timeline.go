// Package animation interpolates the moves a carousel controller hands to
// its render surface.
//
// The controller commits final coordinates immediately and asks the surface
// to animate toward them. Surfaces that draw frames use a [Timeline] to know
// where each item is drawn at a given instant:
//
//	tl := animation.NewTimeline[*registry.Item](animation.LerpOffset)
//	tl.Set(item, from)
//	tl.AnimateTo(item, to, 200*time.Millisecond)
//
//	// On every frame:
//	running := tl.Step()
//	at, _ := tl.Value(item)
//
// [Surface] bundles a position timeline and an opacity timeline into a
// ready-made surface for hosts that only need to read values back.
package animation

import (
	"fmt"
	"time"
)

// Status is the phase of a single keyed animation.
type Status int

const (
	// Settled means the value is at rest.
	Settled Status = iota
	// Running means the value is moving toward a target.
	Running
)

func (s Status) String() string {
	switch s {
	case Settled:
		return "settled"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// motion is one in-flight animation.
type motion[T any] struct {
	tween    Tween[T]
	start    time.Time
	duration time.Duration
}

func (m *motion[T]) progress(now time.Time) float64 {
	if m.duration <= 0 {
		return 1
	}
	return clampUnit(float64(now.Sub(m.start)) / float64(m.duration))
}

// Timeline tracks a value per key and animates keys independently.
// A Timeline is not safe for concurrent use.
type Timeline[K comparable, T any] struct {
	// Clock supplies time. Nil uses the package clock.
	Clock Clock
	// Curve eases every animation. Nil uses EaseOut.
	Curve func(float64) float64

	lerp    func(a, b T, t float64) T
	values  map[K]T
	running map[K]*motion[T]
}

// NewTimeline creates a timeline interpolating with lerp.
func NewTimeline[K comparable, T any](lerp func(a, b T, t float64) T) *Timeline[K, T] {
	return &Timeline[K, T]{
		lerp:    lerp,
		values:  make(map[K]T),
		running: make(map[K]*motion[T]),
	}
}

func (tl *Timeline[K, T]) now() time.Time {
	if tl.Clock != nil {
		return tl.Clock.Now()
	}
	return Now()
}

func (tl *Timeline[K, T]) curve() func(float64) float64 {
	if tl.Curve != nil {
		return tl.Curve
	}
	return EaseOut
}

// Set jumps key to v, cancelling any animation on it.
func (tl *Timeline[K, T]) Set(key K, v T) {
	delete(tl.running, key)
	tl.values[key] = v
}

// AnimateTo starts moving key from its current value to to over duration.
// A key without a value jumps straight to to. A running animation is
// retargeted from wherever it currently is.
func (tl *Timeline[K, T]) AnimateTo(key K, to T, duration time.Duration) {
	from, ok := tl.Value(key)
	if !ok || duration <= 0 {
		tl.Set(key, to)
		return
	}
	tl.values[key] = from
	tl.running[key] = &motion[T]{
		tween:    Tween[T]{Begin: from, End: to, Lerp: tl.lerp},
		start:    tl.now(),
		duration: duration,
	}
}

// Value returns key's value at the current clock time.
func (tl *Timeline[K, T]) Value(key K) (T, bool) {
	if m, ok := tl.running[key]; ok {
		return m.tween.Evaluate(tl.curve()(m.progress(tl.now()))), true
	}
	v, ok := tl.values[key]
	return v, ok
}

// Target returns the value key is heading to, or its settled value.
func (tl *Timeline[K, T]) Target(key K) (T, bool) {
	if m, ok := tl.running[key]; ok {
		return m.tween.End, true
	}
	v, ok := tl.values[key]
	return v, ok
}

// Status reports whether key is still animating.
func (tl *Timeline[K, T]) Status(key K) Status {
	if _, ok := tl.running[key]; ok {
		return Running
	}
	return Settled
}

// Step settles every animation that has finished and reports whether any
// are still running. Hosts call it once per frame.
func (tl *Timeline[K, T]) Step() bool {
	now := tl.now()
	for key, m := range tl.running {
		if m.progress(now) >= 1 {
			tl.values[key] = m.tween.End
			delete(tl.running, key)
		}
	}
	return len(tl.running) > 0
}

// Active reports whether any animation is running, without settling.
func (tl *Timeline[K, T]) Active() bool {
	return len(tl.running) > 0
}

// Delete forgets key.
func (tl *Timeline[K, T]) Delete(key K) {
	delete(tl.running, key)
	delete(tl.values, key)
}

// Len returns the number of tracked keys.
func (tl *Timeline[K, T]) Len() int {
	return len(tl.values)
}
