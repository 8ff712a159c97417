// Package app wires the scenes, progress sources, animator and driver into
// one controller with an explicit lifecycle, so several independent
// instances can coexist in a process.
package app

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/rs/zerolog"

	"github.com/softmatter/scrollstage/internal/anim"
	"github.com/softmatter/scrollstage/internal/layer"
	"github.com/softmatter/scrollstage/internal/progress"
	"github.com/softmatter/scrollstage/internal/render"
	"github.com/softmatter/scrollstage/internal/render/scenes/banner"
	"github.com/softmatter/scrollstage/internal/render/scenes/crawl"
	"github.com/softmatter/scrollstage/internal/render/scenes/cylinder"
	"github.com/softmatter/scrollstage/internal/texture"
)

const (
	defaultResizeDebounce = 300 * time.Millisecond
	imageWorldHeight      = 1.2 // world height of image planes
	textTrackSpacing      = 0.9 // vertical gap between text tracks
	imageYAmplitude       = 0.35
	cylinderSegments      = 64
)

type Options struct {
	Texts      []string // the three crossfade tracks
	ImagePaths []string
	Assets     fs.FS

	FontSize   float64
	TextSpeed  float64 // global multiplier on the per-track scroll speeds
	Camera     render.Camera
	Cylinder   cylinder.Config
	Banner     banner.Config
	Crawl      crawl.Config
	Scene      string
	Preset     string
	Brightness float64

	ScrollStart    float64
	ScrollEnd      float64
	Smoothing      float64
	ResizeDebounce time.Duration

	Width  int
	Height int

	Log zerolog.Logger
}

// Controller owns the driver-side resources and the per-instance scene
// state. All methods must be called from the render-loop goroutine.
type Controller struct {
	Eng      *render.Engine
	Reg      *render.Registry
	Anim     *anim.Animator
	Obs      *progress.Observer
	WheelSrc *progress.WheelSource

	log zerolog.Logger
	drv render.Driver
	opt Options
	cyl *cylinder.Scene

	textLayers []*layer.Layer
	ownedTex   []render.TextureID
	ownedGeom  []render.GeometryID
	geom       render.GeometryID
	width      int
	height     int

	pendingW  int
	pendingH  int
	resizeDue time.Time

	imagesCh chan []texture.Loaded
	inbox    chan func()
}

// InitController builds the full scene graph: text layers synchronously,
// image layers after the asynchronous decode batch completes.
func InitController(drv render.Driver, opt Options) (*Controller, error) {
	if drv == nil {
		return nil, fmt.Errorf("app: nil driver")
	}
	if opt.FontSize <= 0 {
		opt.FontSize = 48
	}
	if opt.ResizeDebounce <= 0 {
		opt.ResizeDebounce = defaultResizeDebounce
	}
	if opt.Width <= 0 {
		opt.Width = 1280
	}
	if opt.Height <= 0 {
		opt.Height = 720
	}

	eng, err := render.NewEngine(drv, opt.Camera)
	if err != nil {
		return nil, err
	}
	if opt.Brightness > 0 {
		eng.Brightness = opt.Brightness
	}

	c := &Controller{
		Eng:    eng,
		Reg:    render.NewRegistry(),
		Anim:   anim.NewAnimator(),
		log:    opt.Log,
		drv:    drv,
		opt:    opt,
		width:  opt.Width,
		height: opt.Height,
		inbox:  make(chan func(), 64),
	}

	builder, err := texture.NewBuilder(opt.FontSize)
	if err != nil {
		return nil, fmt.Errorf("app: font: %w", err)
	}
	defer builder.Close()

	// shared cylinder geometry for all text tracks
	c.geom, err = drv.CreateGeometry(cylinderGeometry(opt.Cylinder.Radius, opt.Height))
	if err != nil {
		return nil, fmt.Errorf("app: geometry: %w", err)
	}
	c.ownedGeom = append(c.ownedGeom, c.geom)

	// text layers, synchronously
	for i, line := range opt.Texts {
		if i >= 3 {
			break
		}
		img := builder.RasterizeText(line, texture.Style{Padding: 16})
		tex, err := drv.CreateTexture(img, render.TextureOpts{WrapX: render.WrapRepeat})
		if err != nil {
			return nil, fmt.Errorf("app: text texture: %w", err)
		}
		c.ownedTex = append(c.ownedTex, tex)
		speed := textSpeed(i)
		if opt.TextSpeed > 0 {
			speed *= opt.TextSpeed
		}
		l := layer.NewText(tex, c.geom, i, speed, float64(1-i)*textTrackSpacing)
		c.textLayers = append(c.textLayers, l)
	}

	c.cyl = cylinder.New("cylinder", opt.Cylinder, c.Anim)
	c.cyl.SetTextLayers(c.textLayers)
	c.Reg.Register(c.cyl)

	bn := banner.New("banner", opt.Banner, c.Anim)
	if len(c.textLayers) > 0 {
		bn.SetLayer(c.textLayers[0])
	}
	c.Reg.Register(bn)

	cw := crawl.New("crawl", opt.Crawl, c.Anim)
	var lines []*layer.Layer
	for i, line := range opt.Texts {
		img := builder.RasterizeText(line, texture.Style{Padding: 16})
		tex, err := drv.CreateTexture(img, render.TextureOpts{})
		if err != nil {
			c.log.Warn().Err(err).Msg("crawl line texture failed; skipping")
			continue
		}
		c.ownedTex = append(c.ownedTex, tex)
		lines = append(lines, layer.NewText(tex, 0, i, 0, 0))
	}
	cw.SetLines(lines)
	c.Reg.Register(cw)

	sceneName := opt.Scene
	if sceneName == "" {
		sceneName = "cylinder"
	}
	if err := c.Eng.SetScene(sceneName, opt.Preset, c.Reg); err != nil {
		return nil, err
	}

	// progress sources; an unscrollable range degrades to pinned progress
	obs, err := progress.NewObserver(opt.ScrollStart, opt.ScrollEnd, opt.Smoothing, func(p float64) {
		if s := c.Eng.Scene(); s != nil {
			s.ApplyProgress(p, render.Direct)
		}
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("scroll observer unavailable; progress pinned")
	} else {
		c.Obs = obs
	}
	c.WheelSrc = progress.NewWheelSource(func(dir int) {
		if s := c.Eng.Scene(); s != nil {
			s.Wheel(dir)
		}
	})

	// asynchronous image batch; partial success by design
	if len(opt.ImagePaths) > 0 && opt.Assets != nil {
		c.imagesCh = make(chan []texture.Loaded, 1)
		go func() {
			c.imagesCh <- texture.LoadImages(opt.Assets, opt.ImagePaths, c.log)
		}()
	}

	if s := c.Eng.Scene(); s != nil {
		s.ApplyProgress(0, render.Direct)
	}
	return c, nil
}

// textSpeed is the per-track texture scroll coefficient; outer tracks
// drift faster than the middle one.
func textSpeed(i int) float64 {
	switch i {
	case 0:
		return 1.6
	case 1:
		return 1.0
	default:
		return 1.3
	}
}

func cylinderGeometry(radius float64, viewportH int) render.GeometrySpec {
	if radius <= 0 {
		radius = 3
	}
	return render.GeometrySpec{
		Kind:     render.GeometryCylinder,
		Radius:   radius,
		Height:   float64(viewportH) / 240,
		Segments: cylinderSegments,
	}
}

// Scroll feeds a raw scroll position to the observer, if one exists.
func (c *Controller) Scroll(pos float64) {
	if c.Obs != nil {
		c.Obs.Feed(pos)
	}
}

// Wheel feeds a raw wheel delta to the wheel source.
func (c *Controller) Wheel(deltaY float64) {
	c.WheelSrc.Feed(deltaY)
}

// Resize records a viewport change; the rebuild itself is debounced and
// happens in Step. Unchanged dimensions are dropped immediately.
func (c *Controller) Resize(w, h int) {
	if w == c.width && h == c.height && c.resizeDue.IsZero() {
		return
	}
	c.pendingW, c.pendingH = w, h
	c.resizeDue = time.Now().Add(c.opt.ResizeDebounce)
}

// Post hands work from another goroutine (ws connections) to the render
// loop. Events are dropped, not queued, when the inbox is full.
func (c *Controller) Post(f func()) {
	select {
	case c.inbox <- f:
	default:
	}
}

// Step advances one tick: drains posted input, joins the image batch when
// ready, flushes a due resize, then steps smoothing and tweens.
func (c *Controller) Step(dt float64) {
	for {
		select {
		case f := <-c.inbox:
			f()
			continue
		default:
		}
		break
	}
	select {
	case loaded := <-c.imagesCh:
		c.attachImages(loaded)
	default:
	}
	if !c.resizeDue.IsZero() && time.Now().After(c.resizeDue) {
		w, h := c.pendingW, c.pendingH
		c.resizeDue = time.Time{}
		c.applyResize(w, h)
	}
	if c.Obs != nil {
		c.Obs.Step(dt)
	}
	c.Anim.Step(dt)
}

// Run drives the headless loop (ws and fake drivers). Windowed drivers call
// Step and RenderOnce from their own game loop instead.
func (c *Controller) Run(ctx context.Context, fps int) {
	if fps <= 0 {
		fps = 60
	}
	tick := time.NewTicker(time.Second / time.Duration(fps))
	defer tick.Stop()
	dt := 1.0 / float64(fps)
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			c.Step(dt)
			if err := c.Eng.RenderOnce(); err != nil {
				c.log.Warn().Err(err).Msg("present failed")
			}
		}
	}
}

// applyResize rebuilds the shared cylinder geometry at the new height,
// disposes the old one, reassigns it to every text layer, and reapplies
// the current progress without animation so the scene does not jump.
func (c *Controller) applyResize(w, h int) {
	if w == c.width && h == c.height {
		return
	}
	c.width, c.height = w, h

	old := c.geom
	geom, err := c.drv.CreateGeometry(cylinderGeometry(c.opt.Cylinder.Radius, h))
	if err != nil {
		c.log.Warn().Err(err).Msg("geometry rebuild failed; keeping old")
		return
	}
	c.geom = geom
	c.ownedGeom = append(c.ownedGeom, geom)
	c.cyl.AssignGeometry(geom)
	c.drv.DisposeGeometry(old)

	c.cyl.ApplyProgress(c.cyl.Progress(), render.Direct)
	c.log.Debug().Int("w", w).Int("h", h).Msg("resized; geometry rebuilt")
}

// attachImages builds image layers from the decode batch. A failed batch
// member was already dropped by the loader; zero survivors leave wheel
// transitions inert.
func (c *Controller) attachImages(loaded []texture.Loaded) {
	n := len(loaded)
	if n == 0 {
		c.log.Warn().Msg("no carousel images loaded")
		return
	}
	type slot struct {
		tex  render.TextureID
		geom render.GeometryID
		wW   float64
	}
	slots := make([]slot, 0, n)
	for _, ld := range loaded {
		tex, err := c.drv.CreateTexture(ld.Img, render.TextureOpts{Mipmap: true})
		if err != nil {
			c.log.Warn().Err(err).Str("path", ld.Path).Msg("image texture failed; skipping")
			continue
		}
		b := ld.Img.Bounds()
		wW := imageWorldHeight * float64(b.Dx()) / float64(b.Dy())
		geom, err := c.drv.CreateGeometry(render.GeometrySpec{
			Kind:   render.GeometryPlane,
			Width:  wW,
			Height: imageWorldHeight,
		})
		if err != nil {
			c.log.Warn().Err(err).Str("path", ld.Path).Msg("image geometry failed; skipping")
			c.drv.DisposeTexture(tex)
			continue
		}
		c.ownedTex = append(c.ownedTex, tex)
		c.ownedGeom = append(c.ownedGeom, geom)
		slots = append(slots, slot{tex: tex, geom: geom, wW: wW})
	}
	// phases are spaced over the layers that actually survived
	layers := make([]*layer.Layer, 0, len(slots))
	for i, sl := range slots {
		layers = append(layers, layer.NewImage(sl.tex, sl.geom, i, len(slots), sl.wW, imageWorldHeight, imageYAmplitude))
	}
	c.cyl.SetImageLayers(layers)
	c.log.Info().Int("count", len(layers)).Msg("carousel images attached")
}

// Close disposes every driver resource the controller owns.
func (c *Controller) Close() {
	for _, id := range c.ownedTex {
		c.drv.DisposeTexture(id)
	}
	c.ownedTex = nil
	for _, id := range c.ownedGeom {
		c.drv.DisposeGeometry(id)
	}
	c.ownedGeom = nil
}
