package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/softmatter/scrollstage/internal/app"
	"github.com/softmatter/scrollstage/internal/config"
	"github.com/softmatter/scrollstage/internal/driver/window"
	"github.com/softmatter/scrollstage/internal/render"
	"github.com/softmatter/scrollstage/internal/render/scenes/banner"
	"github.com/softmatter/scrollstage/internal/render/scenes/crawl"
	"github.com/softmatter/scrollstage/internal/render/scenes/cylinder"
	"github.com/softmatter/scrollstage/internal/ws"
)

func main() {
	// ---- Flags (config.yaml can override most) ----
	var (
		addr       = flag.String("addr", ":8080", "HTTP listen address (ws driver)")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		driver     = flag.String("driver", "ws", "driver: ws | window")
		fps        = flag.Int("fps", 60, "target frames per second")
		width      = flag.Int("width", 1280, "viewport width")
		height     = flag.Int("height", 720, "viewport height")
		scene      = flag.String("scene", "cylinder", "scene: cylinder | banner | crawl")
		preset     = flag.String("preset", "", "scene preset (e.g. Forward, Reverse, Snap)")
		fontSize   = flag.Float64("font-size", 48, "text rasterization size (px)")
		brightness = flag.Float64("brightness", 1.0, "global brightness 0..1")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// ---- Load config.yaml (optional) ----
	var cfg *config.Config
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		cfg = c
	}

	// ---- Effective params (config overrides flags where available) ----
	eAddr, eDriver := *addr, *driver
	eFPS, eW, eH := *fps, *width, *height
	eScene, ePreset := *scene, *preset
	eFont, eBright := *fontSize, *brightness

	texts := []string{"CRAFTED IN MOTION", "DESIGNED TO SCROLL", "BUILT TO LAST"}
	var images []string
	assetRoot := "assets"

	cyl := cylinder.DefaultConfig()
	scroll := config.Scroll{Start: 0, End: 3000, Smoothing: 0.25}

	if cfg != nil {
		if cfg.Addr != "" {
			eAddr = cfg.Addr
		}
		if cfg.Driver != "" {
			eDriver = cfg.Driver
		}
		if cfg.FPS > 0 {
			eFPS = cfg.FPS
		}
		if cfg.Width > 0 {
			eW = cfg.Width
		}
		if cfg.Height > 0 {
			eH = cfg.Height
		}
		if cfg.Scene != "" {
			eScene = cfg.Scene
		}
		if cfg.Preset != "" {
			ePreset = cfg.Preset
		}
		if cfg.FontSize > 0 {
			eFont = cfg.FontSize
		}
		if cfg.Brightness > 0 {
			eBright = cfg.Brightness
		}
		if len(cfg.Texts) > 0 {
			texts = cfg.Texts
		}
		if len(cfg.Images) > 0 {
			images = cfg.Images
		}
		if cfg.AssetRoot != "" {
			assetRoot = cfg.AssetRoot
		}
		if cfg.Cylinder.Radius > 0 {
			cyl.Radius = cfg.Cylinder.Radius
		}
		if cfg.Cylinder.EllipseScaleX > 0 {
			cyl.EllipseScaleX = cfg.Cylinder.EllipseScaleX
		}
		if cfg.Cylinder.Direction != 0 {
			cyl.Direction = cfg.Cylinder.Direction
		}
		if c := cfg.Cylinder.Dim; c != (config.RGB{}) {
			cyl.DimColor = render.Color{R: c.R, G: c.G, B: c.B, A: 1}
		}
		if c := cfg.Cylinder.Active; c != (config.RGB{}) {
			cyl.ActiveColor = render.Color{R: c.R, G: c.G, B: c.B, A: 1}
		}
		if cfg.Scroll.End > cfg.Scroll.Start {
			scroll = cfg.Scroll
		}
	}

	textSpeed := 0.0
	if cfg != nil {
		textSpeed = cfg.Cylinder.TextSpeed
	}

	opt := app.Options{
		Texts:       texts,
		ImagePaths:  images,
		Assets:      os.DirFS(assetRoot),
		FontSize:    eFont,
		TextSpeed:   textSpeed,
		Camera:      render.Camera{FOV: 60, Near: 0.1, Far: 100},
		Cylinder:    cyl,
		Banner:      banner.DefaultConfig(),
		Crawl:       crawl.DefaultConfig(),
		Scene:       eScene,
		Preset:      ePreset,
		Brightness:  eBright,
		ScrollStart: scroll.Start,
		ScrollEnd:   scroll.End,
		Smoothing:   scroll.Smoothing,
		Width:       eW,
		Height:      eH,
		Log:         log.Logger,
	}

	switch eDriver {
	case "window":
		runWindow(opt, eW, eH, eFPS)
	default:
		runWS(opt, eAddr, eFPS)
	}
}

// runWS serves the websocket preview: clients send scroll/wheel/resize
// events, the server streams layer states back.
func runWS(opt app.Options, addr string, fps int) {
	state := ws.NewState(log.Logger)

	ctrl, err := app.InitController(state, opt)
	if err != nil {
		// degrade, never crash the host: serve nothing
		log.Error().Err(err).Msg("scene unavailable; preview disabled")
		return
	}
	defer ctrl.Close()

	state.OnEvent = func(ev ws.Event) {
		ctrl.Post(func() {
			switch ev.Type {
			case "scroll":
				ctrl.Scroll(ev.Pos)
			case "wheel":
				ctrl.Wheel(ev.DeltaY)
			case "resize":
				ctrl.Resize(ev.W, ev.H)
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctrl.Run(ctx, fps)

	http.Handle("/ws", state)
	log.Info().Str("addr", addr).Msg("preview listening")
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Error().Err(err).Msg("http server stopped")
	}
}

// runWindow opens a desktop window; wheel drives snap transitions.
func runWindow(opt app.Options, w, h, fps int) {
	drv := window.New("scrollstage", w, h)

	if opt.Preset == "" && opt.Scene == "cylinder" {
		opt.Preset = "Snap"
	}
	ctrl, err := app.InitController(drv, opt)
	if err != nil {
		log.Error().Err(err).Msg("scene unavailable")
		return
	}
	defer ctrl.Close()

	dt := 1.0 / float64(fps)
	drv.OnUpdate = func() error {
		ctrl.Step(dt)
		return ctrl.Eng.RenderOnce()
	}
	drv.OnWheel = ctrl.Wheel
	drv.OnResize = ctrl.Resize

	if err := drv.Run(); err != nil {
		log.Error().Err(err).Msg("window closed with error")
	}
}
