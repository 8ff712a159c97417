// Package progress turns environment input (scroll position, wheel deltas)
// into the single progress scalar the layout scenes consume.
package progress

import (
	"errors"
	"math"
)

const emitEpsilon = 1e-5

// Observer maps a raw scroll position between two markers onto progress in
// [0,1], optionally smoothing toward the target over time (scrub-style).
// Feed sets the target; Step advances the smoothed value and fires the
// callback when it moved.
type Observer struct {
	start, end float64
	smoothing  float64 // time constant in seconds; 0 emits immediately
	target     float64
	value      float64
	onProgress func(p float64)
}

// NewObserver fails when the scroll range is empty; callers are expected to
// treat that as "not scrollable" and continue with progress pinned.
func NewObserver(start, end, smoothing float64, fn func(p float64)) (*Observer, error) {
	if end <= start {
		return nil, errors.New("progress: empty scroll range")
	}
	if smoothing < 0 {
		smoothing = 0
	}
	return &Observer{start: start, end: end, smoothing: smoothing, onProgress: fn}, nil
}

// Feed records a new raw scroll position. Without smoothing the callback
// fires synchronously, matching a direct scroll-linked binding.
func (o *Observer) Feed(pos float64) {
	t := (pos - o.start) / (o.end - o.start)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	o.target = t
	if o.smoothing == 0 && t != o.value {
		o.value = t
		o.emit()
	}
}

// Step advances the smoothed value by dt seconds.
func (o *Observer) Step(dt float64) {
	if o.smoothing == 0 || dt <= 0 {
		return
	}
	diff := o.target - o.value
	if math.Abs(diff) <= emitEpsilon {
		if o.value != o.target {
			o.value = o.target
			o.emit()
		}
		return
	}
	o.value += diff * (1 - math.Exp(-dt/o.smoothing))
	o.emit()
}

// Value returns the current (smoothed) progress.
func (o *Observer) Value() float64 { return o.value }

func (o *Observer) emit() {
	if o.onProgress != nil {
		o.onProgress(o.value)
	}
}

// WheelSource collapses wheel events into discrete ±1 steps. Zero vertical
// deltas are ignored.
type WheelSource struct {
	onStep func(dir int)
}

func NewWheelSource(fn func(dir int)) *WheelSource {
	return &WheelSource{onStep: fn}
}

// Feed dispatches one step per nonzero vertical delta. Magnitude is
// irrelevant: a snap transition always moves exactly one slot.
func (w *WheelSource) Feed(deltaY float64) {
	if deltaY == 0 || w.onStep == nil {
		return
	}
	if deltaY > 0 {
		w.onStep(1)
	} else {
		w.onStep(-1)
	}
}
