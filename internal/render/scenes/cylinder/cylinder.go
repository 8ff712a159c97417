// Package cylinder implements the carousel layout scene: three text tracks
// wrapped on a shared cylinder plus N image planes arranged on an ellipse,
// all positioned from a single scroll progress scalar.
package cylinder

import (
	"math"

	"github.com/softmatter/scrollstage/internal/anim"
	"github.com/softmatter/scrollstage/internal/layer"
	"github.com/softmatter/scrollstage/internal/render"
)

type Config struct {
	Radius        float64
	EllipseScaleX float64
	Direction     float64 // +1 or -1: which way increasing progress rotates
	SegmentEase   bool    // per-segment cubic ease across image slots
	Snap          bool    // wheel-driven discrete transitions

	DimColor    render.Color
	ActiveColor render.Color

	AnimateDur        float64 // Animated-mode tween duration, seconds
	SnapDur           float64 // base snap transition duration, seconds
	SnapIncomingDelay float64
	SnapStagger       float64
}

func DefaultConfig() Config {
	return Config{
		Radius:            3.0,
		EllipseScaleX:     1.35,
		Direction:         1,
		SegmentEase:       true,
		DimColor:          render.Color{R: 0.24, G: 0.24, B: 0.28, A: 1},
		ActiveColor:       render.Color{R: 1, G: 1, B: 1, A: 1},
		AnimateDur:        0.45,
		SnapDur:           0.8,
		SnapIncomingDelay: 0.12,
		SnapStagger:       0.05,
	}
}

// Scene is the carousel layout engine. All mutation happens on the render
// loop goroutine; the engine snapshots via Frame.
type Scene struct {
	name string
	cfg  Config
	anim *anim.Animator

	text   []*layer.Layer
	images []*layer.Layer

	progress      float64
	transitioning bool
	center        int
	snapPending   int
}

func New(name string, cfg Config, a *anim.Animator) *Scene {
	if cfg.Direction == 0 {
		cfg.Direction = 1
	}
	return &Scene{name: name, cfg: cfg, anim: a}
}

func (s *Scene) Name() string { return s.name }

func (s *Scene) Presets() []string { return []string{"Forward", "Reverse", "Flat", "Snap"} }

// ApplyPreset maps the source variants (direction sign, easing presence,
// snap vs continuous) onto one configurable engine.
func (s *Scene) ApplyPreset(name string) {
	switch name {
	case "Forward":
		s.cfg.Direction = 1
		s.cfg.SegmentEase = true
		s.cfg.Snap = false
	case "Reverse":
		s.cfg.Direction = -1
		s.cfg.SegmentEase = true
		s.cfg.Snap = false
	case "Flat":
		s.cfg.SegmentEase = false
		s.cfg.Snap = false
	case "Snap":
		s.cfg.Snap = true
	}
}

func (s *Scene) Config() Config { return s.cfg }

// Transitioning reports whether a snap transition is in flight.
func (s *Scene) Transitioning() bool { return s.transitioning }

// Progress returns the last applied progress value.
func (s *Scene) Progress() float64 { return s.progress }

// SetTextLayers installs the text tracks. The crossfade schedule assumes
// exactly three tracks with ColorIndex 0..2.
func (s *Scene) SetTextLayers(ls []*layer.Layer) {
	s.text = ls
	s.ApplyProgress(s.progress, render.Direct)
}

// SetImageLayers installs the image ring. Call again only on rebuild, never
// during normal interaction. In snap mode the ring is placed once here and
// only transitions move it afterwards.
func (s *Scene) SetImageLayers(ls []*layer.Layer) {
	s.images = ls
	if s.cfg.Snap {
		start := s.startPhase()
		for _, l := range ls {
			l.PlaceOnEllipse((start+l.Phase)*s.cfg.Direction*2*math.Pi,
				s.cfg.Radius, s.cfg.EllipseScaleX)
		}
		return
	}
	s.ApplyProgress(s.progress, render.Direct)
}

// AssignGeometry swaps the shared cylinder geometry on every text layer
// after a resize rebuild. Image plane geometry is untouched.
func (s *Scene) AssignGeometry(g render.GeometryID) {
	for _, l := range s.text {
		l.Geometry = g
	}
}

// startPhase offsets the ring by one slot so no image sits centered at
// progress 0.
func (s *Scene) startPhase() float64 {
	if len(s.images) == 0 {
		return 0
	}
	return 1 / float64(len(s.images))
}

// CrossfadeFactors computes the 3-way text crossfade schedule for progress
// p: segment index plus per-track interpolation factors. The terminal
// segment clamps to fully active.
func CrossfadeFactors(p float64) (segment int, f [3]float64) {
	t := p * 3
	if t < 0 {
		t = 0
	}
	if t > 2.999999 {
		t = 2.999999
	}
	segment = int(t)
	blend := t - float64(segment)
	f[segment] = 1 - blend
	if segment+1 < 3 {
		f[segment+1] = blend
	}
	if segment == 2 {
		f[2] = 1
	}
	return segment, f
}

// SegmentEase divides [0,1] into n equal segments and applies a symmetric
// cubic ease within each, reassembled into a global eased progress. Segment
// boundaries k/n are fixed points.
func SegmentEase(p float64, n int) float64 {
	if n <= 0 {
		return p
	}
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	scaled := p * float64(n)
	seg := math.Floor(scaled)
	if int(seg) >= n {
		seg = float64(n - 1)
	}
	local := scaled - seg
	return (seg + anim.CubicInOut(local)) / float64(n)
}

// ApplyProgress recomputes every layer's target from the absolute progress
// value. Direct assigns immediately (and cancels in-flight tweens so the
// call stays idempotent); Animated tweens toward the targets. In snap mode
// the image ring is owned by PerformTransition and progress only moves the
// text tracks.
func (s *Scene) ApplyProgress(p float64, mode render.Mode) {
	s.progress = p
	_, f := CrossfadeFactors(p)

	eased := p
	if s.cfg.SegmentEase && len(s.images) > 0 {
		eased = SegmentEase(p, len(s.images))
	}

	for _, l := range s.text {
		l := l
		factor := f[l.ColorIndex]
		offset := eased * s.cfg.Direction * l.Speed
		switch mode {
		case render.Direct:
			s.anim.Cancel(anim.Key{Owner: l, Prop: anim.PropOffsetX})
			s.anim.Cancel(anim.Key{Owner: l, Prop: anim.PropBlend})
			l.OffsetX = offset
			l.ColorFactor = factor
			l.Color = render.Lerp(s.cfg.DimColor, s.cfg.ActiveColor, factor)
		case render.Animated:
			s.anim.Animate(anim.Key{Owner: l, Prop: anim.PropOffsetX},
				l.OffsetX, offset, s.cfg.AnimateDur, 0, anim.CubicOut,
				func(v float64) { l.OffsetX = v }, nil)
			s.anim.Animate(anim.Key{Owner: l, Prop: anim.PropBlend},
				l.ColorFactor, factor, s.cfg.AnimateDur, 0, anim.CubicOut,
				func(v float64) {
					l.ColorFactor = v
					l.Color = render.Lerp(s.cfg.DimColor, s.cfg.ActiveColor, v)
				}, nil)
		}
	}

	// Snap mode abandons continuous progress for the ring: rewriting the
	// carried angles here would discard wheel history, and cancelling the
	// snap tweens would leave the transition flag stuck.
	if s.cfg.Snap {
		return
	}

	start := s.startPhase()
	for _, l := range s.images {
		l := l
		target := (start + l.Phase - eased) * s.cfg.Direction * 2 * math.Pi
		switch mode {
		case render.Direct:
			s.anim.Cancel(anim.Key{Owner: l, Prop: anim.PropAngle})
			l.PlaceOnEllipse(target, s.cfg.Radius, s.cfg.EllipseScaleX)
		case render.Animated:
			s.anim.Animate(anim.Key{Owner: l, Prop: anim.PropAngle},
				l.Angle, target, s.cfg.AnimateDur, 0, anim.CubicOut,
				func(v float64) { l.PlaceOnEllipse(v, s.cfg.Radius, s.cfg.EllipseScaleX) }, nil)
		}
	}
}

// Wheel routes wheel steps into snap transitions when the scene runs in
// snap mode. Continuous presets ignore wheel input.
func (s *Scene) Wheel(dir int) {
	if !s.cfg.Snap {
		return
	}
	s.PerformTransition(dir)
}

// Frame appends the current layer states.
func (s *Scene) Frame(dst *render.Frame) {
	for _, l := range s.text {
		dst.Layers = append(dst.Layers, l.State())
	}
	for _, l := range s.images {
		dst.Layers = append(dst.Layers, l.State())
	}
}
