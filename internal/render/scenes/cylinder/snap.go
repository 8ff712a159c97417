package cylinder

import (
	"math"

	"github.com/softmatter/scrollstage/internal/anim"
	"github.com/softmatter/scrollstage/internal/layer"
	"github.com/softmatter/scrollstage/internal/render"
)

// PerformTransition rotates the ring by exactly one slot in the requested
// direction, one independently timed tween per layer. At most one
// transition is in flight: wheel events arriving while transitioning are
// dropped, not queued. With no image layers the call is inert.
func (s *Scene) PerformTransition(dir int) {
	n := len(s.images)
	if n == 0 || dir == 0 || s.transitioning {
		return
	}
	if dir > 0 {
		dir = 1
	} else {
		dir = -1
	}
	s.transitioning = true

	out := s.frontIndex()
	outAngle := s.images[out].NormalizedAngle()
	step := 2 * math.Pi / float64(n) * float64(dir) * s.cfg.Direction

	// The incoming layer is the one whose post-step angle lands at center.
	incoming := -1
	best := math.Inf(1)
	for i, l := range s.images {
		if d := math.Abs(layer.NormalizeAngle(l.Angle + step)); d < best {
			best = d
			incoming = i
		}
	}

	s.snapPending = n
	for i, l := range s.images {
		l := l
		target := l.Angle + step

		var dur, delay float64
		var e anim.Ease
		switch i {
		case out:
			// outgoing accelerates away immediately
			dur, delay, e = s.cfg.SnapDur, 0, anim.CubicIn
		case incoming:
			// incoming decelerates into place after a beat
			dur, delay, e = s.cfg.SnapDur, s.cfg.SnapIncomingDelay, anim.CubicOut
		default:
			// closer neighbors of the outgoing slot move longer so the
			// ring reads as one continuous motion
			dist := circularDistance(l.NormalizedAngle(), outAngle) / math.Pi
			dur = s.cfg.SnapDur * (1 + (1 - dist))
			delay = s.cfg.SnapStagger * float64(staggerOrder(i, dir, n))
			e = anim.CubicInOut
		}

		s.anim.Animate(anim.Key{Owner: l, Prop: anim.PropAngle},
			l.Angle, target, dur, delay, e,
			func(v float64) { l.PlaceOnEllipse(v, s.cfg.Radius, s.cfg.EllipseScaleX) },
			s.snapDone)
	}
}

func (s *Scene) snapDone() {
	s.snapPending--
	if s.snapPending > 0 {
		return
	}
	s.transitioning = false
	s.center = s.frontIndex()
	s.applyCenterCrossfade(s.center)
}

// CenterIndex returns the image slot currently nearest the front.
func (s *Scene) CenterIndex() int { return s.frontIndex() }

// frontIndex finds the image layer closest to angle 0 by normalized angle.
func (s *Scene) frontIndex() int {
	idx := -1
	best := math.Inf(1)
	for i, l := range s.images {
		if d := math.Abs(l.NormalizedAngle()); d < best {
			best = d
			idx = i
		}
	}
	return idx
}

// applyCenterCrossfade re-tints the text tracks for the newly centered
// image so text stays in sync with whichever image faces the viewer.
func (s *Scene) applyCenterCrossfade(center int) {
	if center < 0 {
		return
	}
	seg := center % 3
	for _, l := range s.text {
		f := 0.0
		if l.ColorIndex == seg {
			f = 1
		}
		l.ColorFactor = f
		l.Color = render.Lerp(s.cfg.DimColor, s.cfg.ActiveColor, f)
	}
}

// staggerOrder ranks layers for the per-layer start stagger, walking the
// ring in the transition direction.
func staggerOrder(i, dir, n int) int {
	return ((i*dir)%n + n) % n
}

// circularDistance is the shortest angular distance between two normalized
// angles, in [0, pi].
func circularDistance(a, b float64) float64 {
	d := math.Abs(layer.NormalizeAngle(a - b))
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
