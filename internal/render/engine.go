package render

import (
	"errors"
	"time"
)

// Engine draws the active scene's current state through the driver once per
// frame. It never recomputes layout; scenes mutate their layers in progress
// and wheel callbacks, the engine only snapshots and presents.
type Engine struct {
	Drv        Driver
	Camera     Camera
	Brightness float64

	active  Scene
	frame   Frame
	frameID uint64
	t0      time.Time

	// metrics (last durations in ms)
	Last struct {
		RenderMS float64
	}
}

func NewEngine(drv Driver, cam Camera) (*Engine, error) {
	if drv == nil {
		return nil, errors.New("nil driver")
	}
	return &Engine{
		Drv:        drv,
		Camera:     cam,
		Brightness: 1.0,
		t0:         time.Now(),
	}, nil
}

// Now returns seconds since engine start.
func (e *Engine) Now() float64 { return time.Since(e.t0).Seconds() }

// SetScene switches the active scene by name, applying preset if non-empty.
func (e *Engine) SetScene(name, preset string, reg *Registry) error {
	if reg == nil {
		return errors.New("registry is nil")
	}
	s, ok := reg.Get(name)
	if !ok {
		return errors.New("scene not found: " + name)
	}
	if preset != "" {
		s.ApplyPreset(preset)
	}
	e.active = s
	return nil
}

func (e *Engine) Scene() Scene { return e.active }

// RenderOnce snapshots the active scene and presents one frame.
func (e *Engine) RenderOnce() error {
	start := time.Now()

	e.frameID++
	e.frame.ID = e.frameID
	e.frame.Camera = e.Camera
	e.frame.Layers = e.frame.Layers[:0]
	if e.active != nil {
		e.active.Frame(&e.frame)
	}
	if e.Brightness >= 0 && e.Brightness != 1 {
		for i := range e.frame.Layers {
			e.frame.Layers[i].Color = Scale(e.frame.Layers[i].Color, e.Brightness)
		}
	}

	err := e.Drv.Present(&e.frame)
	e.Last.RenderMS = float64(time.Since(start).Microseconds()) / 1000.0
	return err
}
