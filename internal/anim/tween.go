package anim

// Prop identifies which animatable property of an owner a tween drives.
type Prop int

const (
	PropAngle Prop = iota
	PropOffsetX
	PropBlend
	PropDepth
)

// Key addresses at most one live tween per (owner, property) pair.
type Key struct {
	Owner any
	Prop  Prop
}

type tween struct {
	from, to float64
	delay    float64
	dur      float64
	t        float64
	ease     Ease
	apply    func(v float64)
	done     func()
}

// Handle lets the starter of a tween cancel it later. Cancelling a handle
// whose tween was already replaced or completed is a no-op.
type Handle struct {
	a  *Animator
	k  Key
	tw *tween
}

func (h *Handle) Cancel() {
	if h == nil || h.a == nil {
		return
	}
	if cur, ok := h.a.tweens[h.k]; ok && cur == h.tw {
		delete(h.a.tweens, h.k)
	}
}

// Animator advances property tweens from the single render-loop goroutine.
// Starting a tween on a key always supersedes any prior tween on that key;
// the superseded tween's completion callback never fires.
type Animator struct {
	tweens map[Key]*tween
}

func NewAnimator() *Animator {
	return &Animator{tweens: map[Key]*tween{}}
}

// Animate starts a tween from -> to over dur seconds after delay seconds.
// apply is called with the interpolated value on every Step while active;
// done (optional) fires once on natural completion. A zero or negative dur
// applies the target and completes immediately.
func (a *Animator) Animate(k Key, from, to, dur, delay float64, e Ease, apply func(v float64), done func()) *Handle {
	if e == nil {
		e = Linear
	}
	if dur <= 0 && delay <= 0 {
		delete(a.tweens, k)
		apply(to)
		if done != nil {
			done()
		}
		return &Handle{a: a, k: k}
	}
	tw := &tween{from: from, to: to, delay: delay, dur: dur, ease: e, apply: apply, done: done}
	a.tweens[k] = tw
	return &Handle{a: a, k: k, tw: tw}
}

// Cancel drops any live tween on k without firing its completion callback.
func (a *Animator) Cancel(k Key) { delete(a.tweens, k) }

// Active reports the number of live tweens.
func (a *Animator) Active() int { return len(a.tweens) }

// Step advances all tweens by dt seconds. Completion callbacks run after
// the sweep so they may start new tweens without disturbing iteration.
func (a *Animator) Step(dt float64) {
	if dt <= 0 || len(a.tweens) == 0 {
		return
	}
	var finished []*tween
	for k, tw := range a.tweens {
		tw.t += dt
		if tw.t < tw.delay {
			continue
		}
		u := 1.0
		if tw.dur > 0 {
			u = clamp01((tw.t - tw.delay) / tw.dur)
		}
		tw.apply(tw.from + (tw.to-tw.from)*tw.ease(u))
		if u >= 1 {
			delete(a.tweens, k)
			finished = append(finished, tw)
		}
	}
	for _, tw := range finished {
		if tw.done != nil {
			tw.done()
		}
	}
}
