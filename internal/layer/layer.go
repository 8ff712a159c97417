// Package layer holds the renderable units placed on a carousel: text bands
// wrapped on a shared cylinder and image planes arranged on a circle.
package layer

import (
	"math"

	"github.com/softmatter/scrollstage/internal/render"
)

type Kind int

const (
	Text Kind = iota
	Image
)

// Layer is a tagged variant: Kind selects which fields are meaningful.
// Text layers use Speed, ColorIndex and OffsetX; Image layers use Phase,
// Angle and the ellipse-derived position. Every layer owns its texture
// handle exclusively.
type Layer struct {
	Kind     Kind
	Texture  render.TextureID
	Geometry render.GeometryID

	Speed      float64 // Text: multiplies progress into texture scroll
	Phase      float64 // Image: fractional slot in [0,1), i/N
	ColorIndex int     // Text: index into the 3-way crossfade schedule
	YOffset    float64 // static vertical placement, alternating by index
	Width      float64
	Height     float64

	// running state, persisted across frames
	Angle       float64 // Image: radians; carried incrementally in snap mode
	OffsetX     float64
	ColorFactor float64
	Pos         render.Vec3
	RotY        float64
	Color       render.Color
}

// NewText builds one of the three text tracks sharing cylinder geometry.
func NewText(tex render.TextureID, geom render.GeometryID, colorIndex int, speed, yOffset float64) *Layer {
	return &Layer{
		Kind:       Text,
		Texture:    tex,
		Geometry:   geom,
		ColorIndex: colorIndex,
		Speed:      speed,
		YOffset:    yOffset,
		Color:      render.Color{R: 1, G: 1, B: 1, A: 1},
	}
}

// NewImage builds the image plane for slot index of total. Phases are evenly
// spaced (index/total) and the vertical offset alternates by parity so
// neighbors overlap less.
func NewImage(tex render.TextureID, geom render.GeometryID, index, total int, w, h, yAmp float64) *Layer {
	y := yAmp
	if index%2 == 1 {
		y = -yAmp
	}
	return &Layer{
		Kind:     Image,
		Texture:  tex,
		Geometry: geom,
		Phase:    float64(index) / float64(total),
		YOffset:  y,
		Width:    w,
		Height:   h,
		Color:    render.Color{R: 1, G: 1, B: 1, A: 1},
	}
}

// PlaceOnEllipse sets Angle and the position derived from it:
// (sin·R·scaleX, yOffset, -cos·R), oriented to face the origin.
func (l *Layer) PlaceOnEllipse(angle, radius, scaleX float64) {
	l.Angle = angle
	l.Pos = render.Vec3{
		X: math.Sin(angle) * radius * scaleX,
		Y: l.YOffset,
		Z: -math.Cos(angle) * radius,
	}
	l.RotY = angle
}

// NormalizedAngle maps Angle into (-pi, pi] for front-of-ring comparisons.
func (l *Layer) NormalizedAngle() float64 {
	return NormalizeAngle(l.Angle)
}

// NormalizeAngle wraps a into (-pi, pi].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// State snapshots the layer for one frame.
func (l *Layer) State() render.LayerState {
	return render.LayerState{
		Texture:  l.Texture,
		Geometry: l.Geometry,
		Pos:      l.Pos,
		RotY:     l.RotY,
		OffsetX:  l.OffsetX,
		Color:    l.Color,
		Width:    l.Width,
		Height:   l.Height,
	}
}
