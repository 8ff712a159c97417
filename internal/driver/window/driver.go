// Package window renders frames into a desktop window via ebiten, applying
// a simple screen-space perspective projection to each layer quad.
package window

import (
	"errors"
	"image"
	"image/color"
	"math"
	"sort"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/softmatter/scrollstage/internal/render"
)

// unitsPerTexel sizes layers that carry no explicit world size (text bands).
const unitsPerTexel = 1.0 / 128.0

type Driver struct {
	mu       sync.Mutex
	textures map[render.TextureID]*ebiten.Image
	nextTex  render.TextureID
	geoms    map[render.GeometryID]render.GeometrySpec
	nextGeom render.GeometryID
	frame    render.Frame

	title         string
	width, height int

	// Host callbacks, all invoked on the ebiten game loop goroutine.
	OnUpdate func() error
	OnWheel  func(deltaY float64)
	OnResize func(w, h int)
}

func New(title string, w, h int) *Driver {
	return &Driver{
		textures: map[render.TextureID]*ebiten.Image{},
		geoms:    map[render.GeometryID]render.GeometrySpec{},
		title:    title,
		width:    w,
		height:   h,
	}
}

// Run opens the window and blocks until it closes.
func (d *Driver) Run() error {
	if d.width <= 0 || d.height <= 0 {
		return errors.New("window: invalid size")
	}
	ebiten.SetWindowSize(d.width, d.height)
	ebiten.SetWindowTitle(d.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(&game{d: d})
}

// --- render.Driver ---

func (d *Driver) CreateTexture(img *image.RGBA, opts render.TextureOpts) (render.TextureID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextTex++
	d.textures[d.nextTex] = ebiten.NewImageFromImage(img)
	return d.nextTex, nil
}

func (d *Driver) DisposeTexture(id render.TextureID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if img, ok := d.textures[id]; ok {
		img.Dispose()
		delete(d.textures, id)
	}
}

func (d *Driver) CreateGeometry(spec render.GeometrySpec) (render.GeometryID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextGeom++
	d.geoms[d.nextGeom] = spec
	return d.nextGeom, nil
}

func (d *Driver) DisposeGeometry(id render.GeometryID) {
	d.mu.Lock()
	delete(d.geoms, id)
	d.mu.Unlock()
}

func (d *Driver) Present(f *render.Frame) error {
	d.mu.Lock()
	d.frame.ID = f.ID
	d.frame.Camera = f.Camera
	d.frame.Layers = append(d.frame.Layers[:0], f.Layers...)
	d.mu.Unlock()
	return nil
}

// --- ebiten plumbing ---

type game struct {
	d       *Driver
	scratch []render.LayerState
}

func (g *game) Update() error {
	if g.d.OnWheel != nil {
		if _, y := ebiten.Wheel(); y != 0 {
			g.d.OnWheel(y)
		}
	}
	if g.d.OnUpdate != nil {
		return g.d.OnUpdate()
	}
	return nil
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.d.width || outsideHeight != g.d.height {
		g.d.width, g.d.height = outsideWidth, outsideHeight
		if g.d.OnResize != nil {
			g.d.OnResize(outsideWidth, outsideHeight)
		}
	}
	return outsideWidth, outsideHeight
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 12, A: 255})

	g.d.mu.Lock()
	g.scratch = append(g.scratch[:0], g.d.frame.Layers...)
	cam := g.d.frame.Camera
	g.d.mu.Unlock()

	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()
	fov := cam.FOV
	if fov <= 0 {
		fov = 60
	}
	near := cam.Near
	if near <= 0 {
		near = 0.1
	}
	focal := float64(h) / 2 / math.Tan(fov*math.Pi/360)

	// painter's order, far to near
	sort.SliceStable(g.scratch, func(i, j int) bool {
		return g.scratch[i].Pos.Z < g.scratch[j].Pos.Z
	})

	for _, l := range g.scratch {
		tex := g.d.textures[l.Texture]
		if tex == nil {
			continue
		}
		depth := cam.Pos.Z - l.Pos.Z
		if depth < near {
			continue
		}
		// foreshorten layers rotated away from the viewer
		facing := math.Cos(l.RotY)
		if facing <= 0 {
			continue
		}

		tw := tex.Bounds().Dx()
		th := tex.Bounds().Dy()
		worldW := l.Width
		if worldW == 0 {
			worldW = float64(tw) * unitsPerTexel
		}
		worldH := l.Height
		if worldH == 0 {
			worldH = float64(th) * unitsPerTexel
		}

		px := focal / depth // pixels per world unit at this depth
		scaleX := worldW * px / float64(tw) * facing
		scaleY := worldH * px / float64(th)
		screenX := float64(w)/2 + (l.Pos.X-cam.Pos.X)/depth*focal
		screenY := float64(h)/2 - (l.Pos.Y-cam.Pos.Y)/depth*focal

		alpha := l.Color.A
		if alpha <= 0 {
			continue
		}

		drawPart := func(src *ebiten.Image, localX float64) {
			opts := &ebiten.DrawImageOptions{}
			opts.Filter = ebiten.FilterLinear
			opts.GeoM.Translate(localX-float64(tw)/2, -float64(th)/2)
			opts.GeoM.Scale(scaleX, scaleY)
			opts.GeoM.Translate(screenX, screenY)
			opts.ColorScale.Scale(l.Color.R, l.Color.G, l.Color.B, alpha)
			screen.DrawImage(src, opts)
		}

		shift := int((l.OffsetX - math.Floor(l.OffsetX)) * float64(tw))
		if shift == 0 {
			drawPart(tex, 0)
			continue
		}
		// wrap-around scroll: draw the texture in two slices
		b := tex.Bounds()
		right := tex.SubImage(image.Rect(b.Min.X+shift, b.Min.Y, b.Max.X, b.Max.Y)).(*ebiten.Image)
		left := tex.SubImage(image.Rect(b.Min.X, b.Min.Y, b.Min.X+shift, b.Max.Y)).(*ebiten.Image)
		drawPart(right, 0)
		drawPart(left, float64(tw-shift))
	}
}
