package cylinder

import (
	"math"
	"testing"

	"github.com/softmatter/scrollstage/internal/anim"
	"github.com/softmatter/scrollstage/internal/layer"
	"github.com/softmatter/scrollstage/internal/render"
)

func newTestScene(images int) (*Scene, *anim.Animator) {
	a := anim.NewAnimator()
	s := New("cylinder", DefaultConfig(), a)

	var text []*layer.Layer
	for i := 0; i < 3; i++ {
		text = append(text, layer.NewText(render.TextureID(i+1), 1, i, 1.0, 0))
	}
	s.SetTextLayers(text)

	var imgs []*layer.Layer
	for i := 0; i < images; i++ {
		imgs = append(imgs, layer.NewImage(render.TextureID(10+i), 2, i, images, 1, 1, 0.3))
	}
	if images > 0 {
		s.SetImageLayers(imgs)
	}
	return s, a
}

func TestCrossfadeFactors(t *testing.T) {
	cases := []struct {
		p    float64
		want [3]float64
	}{
		{0, [3]float64{1, 0, 0}},
		{1.0 / 6, [3]float64{0.5, 0.5, 0}},
		{1.0 / 3, [3]float64{0, 1, 0}},
		{0.5, [3]float64{0, 0.5, 0.5}},
		{2.0 / 3, [3]float64{0, 0, 1}}, // terminal segment clamps active
		{1, [3]float64{0, 0, 1}},
	}
	for _, c := range cases {
		_, f := CrossfadeFactors(c.p)
		for i := 0; i < 3; i++ {
			if math.Abs(f[i]-c.want[i]) > 1e-4 {
				t.Fatalf("p=%v: factor=%v, want %v", c.p, f, c.want)
			}
		}
	}
}

func TestSegmentEaseFixedPoints(t *testing.T) {
	for _, n := range []int{1, 3, 6} {
		for k := 0; k <= n; k++ {
			p := float64(k) / float64(n)
			if got := SegmentEase(p, n); math.Abs(got-p) > 1e-9 {
				t.Fatalf("n=%d: SegmentEase(%v) = %v, want fixed point", n, p, got)
			}
		}
	}
}

func TestSegmentEaseMonotonic(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 600; i++ {
		p := float64(i) / 600
		e := SegmentEase(p, 6)
		if e < prev {
			t.Fatalf("not monotonic at p=%v: %v < %v", p, e, prev)
		}
		prev = e
	}
	if SegmentEase(-0.5, 6) != 0 || SegmentEase(1.5, 6) != 1 {
		t.Fatal("out-of-range progress not clamped")
	}
}

func TestApplyProgressDirectIdempotent(t *testing.T) {
	s, _ := newTestScene(5)

	snapshot := func() []render.LayerState {
		var f render.Frame
		s.Frame(&f)
		return append([]render.LayerState(nil), f.Layers...)
	}

	s.ApplyProgress(0.37, render.Direct)
	first := snapshot()
	s.ApplyProgress(0.37, render.Direct)
	second := snapshot()

	if len(first) != len(second) {
		t.Fatalf("layer count changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("layer %d drifted: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestApplyProgressDirectCancelsTweens(t *testing.T) {
	s, a := newTestScene(4)
	s.ApplyProgress(0.2, render.Animated)
	if a.Active() == 0 {
		t.Fatal("expected live tweens after Animated apply")
	}
	s.ApplyProgress(0.2, render.Direct)
	if a.Active() != 0 {
		t.Fatalf("Direct apply left %d tweens live", a.Active())
	}
}

func TestAnimatedConvergesToDirectTargets(t *testing.T) {
	s, a := newTestScene(4)
	s.ApplyProgress(0.6, render.Animated)
	for i := 0; i < 100; i++ {
		a.Step(0.05)
	}
	var animated render.Frame
	s.Frame(&animated)

	s2, _ := newTestScene(4)
	s2.ApplyProgress(0.6, render.Direct)
	var direct render.Frame
	s2.Frame(&direct)

	for i := range direct.Layers {
		da, db := animated.Layers[i], direct.Layers[i]
		if math.Abs(da.Pos.X-db.Pos.X) > 1e-6 || math.Abs(da.Pos.Z-db.Pos.Z) > 1e-6 ||
			math.Abs(da.OffsetX-db.OffsetX) > 1e-6 {
			t.Fatalf("layer %d: animated end state %+v != direct %+v", i, da, db)
		}
	}
}

// The ring is offset by one slot at progress 0; the phase=0 image reaches
// center once eased progress equals that offset.
func TestPhaseZeroCentersAtStartOffset(t *testing.T) {
	const n = 6
	s, _ := newTestScene(n)

	p := 1.0 / n // segment boundary, so eased == p
	s.ApplyProgress(p, render.Direct)

	var f render.Frame
	s.Frame(&f)
	phase0 := f.Layers[3] // 3 text layers first, then image slot 0
	if a := layer.NormalizeAngle(phase0.RotY); math.Abs(a) > 1e-9 {
		t.Fatalf("phase0 angle = %v, want centered", a)
	}
	if math.Abs(phase0.Pos.X) > 1e-9 {
		t.Fatalf("phase0 X = %v, want 0", phase0.Pos.X)
	}
}

func TestExactlyOneCenteredAtBoundaries(t *testing.T) {
	const n = 6
	s, _ := newTestScene(n)
	tol := 1e-6
	for k := 1; k <= n; k++ {
		s.ApplyProgress(float64(k)/n, render.Direct)
		var f render.Frame
		s.Frame(&f)
		centered := 0
		for _, l := range f.Layers[3:] {
			if math.Abs(layer.NormalizeAngle(l.RotY)) < tol {
				centered++
			}
		}
		if centered != 1 {
			t.Fatalf("p=%d/%d: %d layers centered, want exactly 1", k, n, centered)
		}
	}
}

func TestTextOffsetFollowsEasedProgress(t *testing.T) {
	s, _ := newTestScene(6)
	p := 0.25
	s.ApplyProgress(p, render.Direct)
	var f render.Frame
	s.Frame(&f)
	eased := SegmentEase(p, 6)
	cfg := s.Config()
	for i, l := range f.Layers[:3] {
		want := eased * cfg.Direction * textLayerSpeed(s, i)
		if math.Abs(l.OffsetX-want) > 1e-9 {
			t.Fatalf("text %d offset = %v, want %v", i, l.OffsetX, want)
		}
	}
}

func textLayerSpeed(s *Scene, i int) float64 { return s.text[i].Speed }

func TestDirectionInversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Direction = -1
	a := anim.NewAnimator()
	s := New("cylinder", cfg, a)
	imgs := []*layer.Layer{
		layer.NewImage(1, 1, 0, 2, 1, 1, 0.3),
		layer.NewImage(2, 1, 1, 2, 1, 1, 0.3),
	}
	s.SetImageLayers(imgs)
	s.ApplyProgress(0.1, render.Direct)
	neg := imgs[0].Angle

	cfg.Direction = 1
	s2 := New("cylinder", cfg, anim.NewAnimator())
	imgs2 := []*layer.Layer{
		layer.NewImage(1, 1, 0, 2, 1, 1, 0.3),
		layer.NewImage(2, 1, 1, 2, 1, 1, 0.3),
	}
	s2.SetImageLayers(imgs2)
	s2.ApplyProgress(0.1, render.Direct)
	pos := imgs2[0].Angle

	if math.Abs(neg+pos) > 1e-12 {
		t.Fatalf("direction inversion not mirrored: %v vs %v", neg, pos)
	}
}
