package anim

import (
	"math"
	"testing"
)

func TestEaseFixedPoints(t *testing.T) {
	for _, name := range []string{"linear", "cubic-in", "cubic-out", "cubic-in-out", "smooth"} {
		e := ByName(name)
		if v := e(0); v != 0 {
			t.Fatalf("%s(0) = %v, want 0", name, v)
		}
		if v := e(1); math.Abs(v-1) > 1e-12 {
			t.Fatalf("%s(1) = %v, want 1", name, v)
		}
	}
}

func TestCubicInOutSymmetry(t *testing.T) {
	if v := CubicInOut(0.5); math.Abs(v-0.5) > 1e-12 {
		t.Fatalf("midpoint = %v, want 0.5", v)
	}
	// in/out halves mirror each other
	for _, u := range []float64{0.1, 0.25, 0.4} {
		a := CubicInOut(u)
		b := 1 - CubicInOut(1-u)
		if math.Abs(a-b) > 1e-12 {
			t.Fatalf("asymmetric at %v: %v vs %v", u, a, b)
		}
	}
}

func TestAnimateCompletes(t *testing.T) {
	a := NewAnimator()
	var got float64
	doneCount := 0
	a.Animate(Key{Owner: "x", Prop: PropAngle}, 0, 10, 1.0, 0, Linear,
		func(v float64) { got = v }, func() { doneCount++ })

	a.Step(0.5)
	if math.Abs(got-5) > 1e-9 {
		t.Fatalf("halfway value = %v, want 5", got)
	}
	if a.Active() != 1 {
		t.Fatalf("active = %d, want 1", a.Active())
	}
	a.Step(0.6)
	if got != 10 {
		t.Fatalf("final value = %v, want 10", got)
	}
	if doneCount != 1 || a.Active() != 0 {
		t.Fatalf("done=%d active=%d, want 1/0", doneCount, a.Active())
	}
	// further steps are inert
	a.Step(1)
	if doneCount != 1 {
		t.Fatalf("done fired again")
	}
}

func TestAnimateReplaceSupersedes(t *testing.T) {
	a := NewAnimator()
	k := Key{Owner: "x", Prop: PropOffsetX}
	firstDone := false
	a.Animate(k, 0, 10, 1.0, 0, Linear, func(v float64) {}, func() { firstDone = true })

	var got float64
	a.Animate(k, 0, -10, 1.0, 0, Linear, func(v float64) { got = v }, nil)
	if a.Active() != 1 {
		t.Fatalf("active = %d after replace, want 1", a.Active())
	}
	a.Step(2)
	if firstDone {
		t.Fatal("superseded tween completion fired")
	}
	if got != -10 {
		t.Fatalf("got %v, want -10", got)
	}
}

func TestAnimateDelay(t *testing.T) {
	a := NewAnimator()
	applied := false
	a.Animate(Key{Owner: "x", Prop: PropBlend}, 0, 1, 0.5, 0.5, Linear,
		func(v float64) { applied = true }, nil)
	a.Step(0.25)
	if applied {
		t.Fatal("applied during delay")
	}
	a.Step(0.5) // t=0.75, u=0.5
	if !applied {
		t.Fatal("not applied after delay elapsed")
	}
}

func TestHandleCancel(t *testing.T) {
	a := NewAnimator()
	k := Key{Owner: "x", Prop: PropAngle}
	done := false
	h := a.Animate(k, 0, 1, 1, 0, Linear, func(v float64) {}, func() { done = true })
	h.Cancel()
	if a.Active() != 0 {
		t.Fatalf("active = %d after cancel, want 0", a.Active())
	}
	a.Step(2)
	if done {
		t.Fatal("cancelled tween completed")
	}

	// a stale handle must not cancel a replacement tween
	h2 := a.Animate(k, 0, 1, 1, 0, Linear, func(v float64) {}, nil)
	h.Cancel()
	if a.Active() != 1 {
		t.Fatal("stale handle cancelled live tween")
	}
	_ = h2
}

func TestZeroDurationAppliesImmediately(t *testing.T) {
	a := NewAnimator()
	var got float64
	done := false
	a.Animate(Key{Owner: "y", Prop: PropAngle}, 0, 3, 0, 0, Linear,
		func(v float64) { got = v }, func() { done = true })
	if got != 3 || !done || a.Active() != 0 {
		t.Fatalf("got=%v done=%v active=%d", got, done, a.Active())
	}
}
