// Package banner renders a single rasterized text band scrolled
// horizontally by texture offset, wrap-around, driven by progress.
package banner

import (
	"github.com/softmatter/scrollstage/internal/anim"
	"github.com/softmatter/scrollstage/internal/layer"
	"github.com/softmatter/scrollstage/internal/render"
)

type Config struct {
	Speed      float64 // texture widths scrolled across full progress
	Direction  float64 // +1 or -1
	Color      render.Color
	AnimateDur float64
}

func DefaultConfig() Config {
	return Config{
		Speed:      2.0,
		Direction:  1,
		Color:      render.Color{R: 1, G: 1, B: 1, A: 1},
		AnimateDur: 0.3,
	}
}

type Scene struct {
	name string
	cfg  Config
	anim *anim.Animator
	band *layer.Layer
}

func New(name string, cfg Config, a *anim.Animator) *Scene {
	if cfg.Direction == 0 {
		cfg.Direction = 1
	}
	return &Scene{name: name, cfg: cfg, anim: a}
}

func (s *Scene) Name() string      { return s.name }
func (s *Scene) Presets() []string { return []string{"Forward", "Reverse"} }

func (s *Scene) ApplyPreset(name string) {
	switch name {
	case "Forward":
		s.cfg.Direction = 1
	case "Reverse":
		s.cfg.Direction = -1
	}
}

// SetLayer installs the rasterized band. The texture must wrap on X.
func (s *Scene) SetLayer(l *layer.Layer) {
	s.band = l
	if l != nil {
		l.Color = s.cfg.Color
	}
}

func (s *Scene) ApplyProgress(p float64, mode render.Mode) {
	if s.band == nil {
		return
	}
	l := s.band
	target := p * s.cfg.Speed * s.cfg.Direction
	switch mode {
	case render.Direct:
		s.anim.Cancel(anim.Key{Owner: l, Prop: anim.PropOffsetX})
		l.OffsetX = target
	case render.Animated:
		s.anim.Animate(anim.Key{Owner: l, Prop: anim.PropOffsetX},
			l.OffsetX, target, s.cfg.AnimateDur, 0, anim.CubicOut,
			func(v float64) { l.OffsetX = v }, nil)
	}
}

func (s *Scene) Wheel(dir int) {}

func (s *Scene) Frame(dst *render.Frame) {
	if s.band == nil {
		return
	}
	dst.Layers = append(dst.Layers, s.band.State())
}
