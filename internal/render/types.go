package render

import "image"

type Vec3 struct{ X, Y, Z float64 }

type Color struct{ R, G, B, A float32 }

// Mode selects how a scene applies a new progress value to its layers.
type Mode int

const (
	// Direct assigns target values immediately. Idempotent for a fixed
	// progress: no state accumulates across calls.
	Direct Mode = iota
	// Animated tweens each layer property toward its target, cancelling
	// any in-flight tween on the same property first.
	Animated
)

// TextureID is an opaque handle to a driver-owned texture. Zero means none.
type TextureID int

// GeometryID is an opaque handle to driver-owned geometry. Zero means none.
type GeometryID int

type WrapMode int

const (
	WrapClamp WrapMode = iota
	// WrapRepeat tiles the texture horizontally so a scroll offset can be
	// applied without re-rasterizing.
	WrapRepeat
)

type TextureOpts struct {
	WrapX  WrapMode
	Mipmap bool
}

type GeometryKind int

const (
	GeometryCylinder GeometryKind = iota
	GeometryPlane
)

type GeometrySpec struct {
	Kind     GeometryKind
	Radius   float64
	Height   float64
	Width    float64
	Segments int
}

// LayerState is one layer's renderable snapshot for a single frame.
type LayerState struct {
	Texture  TextureID
	Geometry GeometryID
	Pos      Vec3
	RotY     float64 // radians about Y; layers face the origin
	OffsetX  float64 // horizontal texture offset in texture widths
	Color    Color
	Width    float64
	Height   float64
}

type Camera struct {
	FOV  float64 // vertical field of view, degrees
	Near float64
	Far  float64
	Pos  Vec3
}

// Frame is the full draw state handed to a Driver once per display frame.
type Frame struct {
	ID     uint64
	Camera Camera
	Layers []LayerState
}

// Driver abstracts the render surface (window, websocket preview, fake).
// Creation methods allocate driver-owned resources; the caller owns disposal.
type Driver interface {
	CreateTexture(img *image.RGBA, opts TextureOpts) (TextureID, error)
	DisposeTexture(id TextureID)
	CreateGeometry(spec GeometrySpec) (GeometryID, error)
	DisposeGeometry(id GeometryID)
	Present(f *Frame) error
}

// Scene produces layer states from progress input. One scene is active in
// the Engine at a time; swapping scenes is a full registry lookup, not a
// crossfade.
type Scene interface {
	Name() string
	Presets() []string
	ApplyPreset(name string)
	ApplyProgress(p float64, mode Mode)
	Wheel(dir int)
	Frame(dst *Frame)
}
