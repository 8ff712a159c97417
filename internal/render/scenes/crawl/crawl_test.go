package crawl

import (
	"math"
	"testing"

	"github.com/softmatter/scrollstage/internal/anim"
	"github.com/softmatter/scrollstage/internal/layer"
	"github.com/softmatter/scrollstage/internal/render"
)

func newTestCrawl(lines int) (*Scene, []*layer.Layer) {
	s := New("crawl", DefaultConfig(), anim.NewAnimator())
	ls := make([]*layer.Layer, lines)
	for i := range ls {
		ls[i] = layer.NewText(render.TextureID(i+1), 0, i, 0, 0)
	}
	s.SetLines(ls)
	return s, ls
}

func TestLinesStackByDepth(t *testing.T) {
	s, ls := newTestCrawl(3)
	cfg := s.cfg

	s.ApplyProgress(0, render.Direct)
	for i, l := range ls {
		d := float64(i)*cfg.LineSpacing + cfg.FadeNear
		if math.Abs(-l.Pos.Z-d) > 1e-12 {
			t.Fatalf("line %d depth = %v, want %v", i, -l.Pos.Z, d)
		}
		if math.Abs(l.Pos.Y-d*cfg.Tilt) > 1e-12 {
			t.Fatalf("line %d rise = %v, want %v", i, l.Pos.Y, d*cfg.Tilt)
		}
	}

	// farther lines stay behind nearer ones
	if ls[0].Pos.Z <= ls[2].Pos.Z {
		t.Fatalf("depth order broken: %v vs %v", ls[0].Pos.Z, ls[2].Pos.Z)
	}
}

func TestProgressAdvancesBlock(t *testing.T) {
	s, ls := newTestCrawl(2)
	cfg := s.cfg

	s.ApplyProgress(0.25, render.Direct)
	want := cfg.FadeNear - 0.25*cfg.Depth
	if math.Abs(-ls[0].Pos.Z-want) > 1e-12 {
		t.Fatalf("line 0 depth = %v, want %v", -ls[0].Pos.Z, want)
	}
}

func TestNearFadeOut(t *testing.T) {
	s, ls := newTestCrawl(1)
	cfg := s.cfg

	s.ApplyProgress(0, render.Direct)
	if ls[0].Color.A != cfg.Color.A {
		t.Fatalf("alpha = %v at the fade boundary, want full", ls[0].Color.A)
	}

	// halfway into the fade band
	p := (cfg.FadeNear / 2) / cfg.Depth
	s.ApplyProgress(p, render.Direct)
	if a := ls[0].Color.A; math.Abs(float64(a)-float64(cfg.Color.A)/2) > 1e-4 {
		t.Fatalf("alpha = %v, want half-faded", a)
	}

	// past the camera
	s.ApplyProgress(cfg.FadeNear/cfg.Depth+0.1, render.Direct)
	if ls[0].Color.A != 0 {
		t.Fatalf("alpha = %v past the camera, want 0", ls[0].Color.A)
	}
}
