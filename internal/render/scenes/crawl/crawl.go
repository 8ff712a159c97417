// Package crawl renders stacked text lines receding toward a vanishing
// point; progress advances the whole block toward the camera. Perspective
// itself is the driver's job, the scene only sets depth and fade.
package crawl

import (
	"github.com/softmatter/scrollstage/internal/anim"
	"github.com/softmatter/scrollstage/internal/layer"
	"github.com/softmatter/scrollstage/internal/render"
)

type Config struct {
	LineSpacing float64 // world units between consecutive lines
	Depth       float64 // how far the block travels across full progress
	Tilt        float64 // vertical rise per unit depth
	Color       render.Color
	FadeNear    float64 // depth (toward camera) where lines fade out
}

func DefaultConfig() Config {
	return Config{
		LineSpacing: 1.2,
		Depth:       8,
		Tilt:        0.35,
		Color:       render.Color{R: 1, G: 0.85, B: 0.2, A: 1},
		FadeNear:    1.5,
	}
}

type Scene struct {
	name  string
	cfg   Config
	anim  *anim.Animator
	lines []*layer.Layer
}

func New(name string, cfg Config, a *anim.Animator) *Scene {
	return &Scene{name: name, cfg: cfg, anim: a}
}

func (s *Scene) Name() string          { return s.name }
func (s *Scene) Presets() []string     { return []string{"Default"} }
func (s *Scene) ApplyPreset(name string) {}

func (s *Scene) SetLines(ls []*layer.Layer) {
	s.lines = ls
	for _, l := range ls {
		l.Color = s.cfg.Color
	}
	s.ApplyProgress(0, render.Direct)
}

func (s *Scene) ApplyProgress(p float64, mode render.Mode) {
	advance := p * s.cfg.Depth
	for i, l := range s.lines {
		l := l
		base := float64(i)*s.cfg.LineSpacing + s.cfg.FadeNear
		target := base - advance
		switch mode {
		case render.Direct:
			s.anim.Cancel(anim.Key{Owner: l, Prop: anim.PropDepth})
			s.place(l, target)
		case render.Animated:
			s.anim.Animate(anim.Key{Owner: l, Prop: anim.PropDepth},
				-l.Pos.Z, target, 0.3, 0, anim.CubicOut,
				func(v float64) { s.place(l, v) }, nil)
		}
	}
}

// place positions a line at depth d in front of the camera (world z = -d),
// rising with distance and fading out as it passes the camera.
func (s *Scene) place(l *layer.Layer, d float64) {
	l.Pos = render.Vec3{X: 0, Y: d * s.cfg.Tilt, Z: -d}
	c := s.cfg.Color
	if d < s.cfg.FadeNear {
		f := d / s.cfg.FadeNear
		if f < 0 {
			f = 0
		}
		c.A = s.cfg.Color.A * float32(f)
	}
	l.Color = c
}

func (s *Scene) Wheel(dir int) {}

func (s *Scene) Frame(dst *render.Frame) {
	for _, l := range s.lines {
		dst.Layers = append(dst.Layers, l.State())
	}
}
