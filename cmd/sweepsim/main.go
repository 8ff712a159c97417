package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/softmatter/scrollstage/internal/app"
	"github.com/softmatter/scrollstage/internal/driver/fake"
	"github.com/softmatter/scrollstage/internal/render"
	"github.com/softmatter/scrollstage/internal/render/scenes/banner"
	"github.com/softmatter/scrollstage/internal/render/scenes/crawl"
	"github.com/softmatter/scrollstage/internal/render/scenes/cylinder"
)

// sweepsim sweeps progress 0..1 in Direct mode through a headless fake
// driver and prints layer states, for eyeballing the layout math.
func main() {
	var (
		fps      = flag.Int("fps", 30, "simulation frames per second")
		duration = flag.Float64("duration", 4, "sweep duration in seconds")
		scene    = flag.String("scene", "cylinder", "scene: cylinder | banner | crawl")
		preset   = flag.String("preset", "", "scene preset")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	drv := fake.New()
	ctrl, err := app.InitController(drv, app.Options{
		Texts:       []string{"ONE", "TWO", "THREE"},
		Camera:      render.Camera{FOV: 60, Near: 0.1, Far: 100},
		Cylinder:    cylinder.DefaultConfig(),
		Banner:      banner.DefaultConfig(),
		Crawl:       crawl.DefaultConfig(),
		Scene:       *scene,
		Preset:      *preset,
		ScrollStart: 0,
		ScrollEnd:   1,
		Log:         log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("init failed")
	}
	defer ctrl.Close()

	steps := int(*duration * float64(*fps))
	dt := 1.0 / float64(*fps)
	for i := 0; i <= steps; i++ {
		p := float64(i) / float64(steps)
		ctrl.Scroll(p)
		ctrl.Step(dt)
		if err := ctrl.Eng.RenderOnce(); err != nil {
			log.Fatal().Err(err).Msg("render failed")
		}
		if i%*fps == 0 {
			dumpFrame(p, &drv.Last)
		}
	}
	log.Info().Int("frames", drv.Frames).Msg("sweep complete")
}

func dumpFrame(p float64, f *render.Frame) {
	fmt.Printf("progress=%.2f\n", p)
	for i, l := range f.Layers {
		fmt.Printf("  layer %d: pos=(%.2f,%.2f,%.2f) rotY=%.2f offsetX=%.3f color=(%.2f,%.2f,%.2f)\n",
			i, l.Pos.X, l.Pos.Y, l.Pos.Z, l.RotY, l.OffsetX, l.Color.R, l.Color.G, l.Color.B)
	}
}
