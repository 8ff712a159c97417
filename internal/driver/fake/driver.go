// Package fake provides a recording render driver for headless tests and
// simulations: it counts resource churn and keeps the last presented frame.
package fake

import (
	"errors"
	"image"

	"github.com/softmatter/scrollstage/internal/render"
)

type Driver struct {
	TexturesCreated    int
	TexturesDisposed   int
	GeometriesCreated  int
	GeometriesDisposed int
	Frames             int

	Last render.Frame

	// FailCreate makes the next texture/geometry creation fail, for
	// exercising degraded paths.
	FailCreate bool

	nextTex  render.TextureID
	nextGeom render.GeometryID

	LiveGeometries map[render.GeometryID]render.GeometrySpec
	TextureSizes   map[render.TextureID]image.Point
}

func New() *Driver {
	return &Driver{
		LiveGeometries: map[render.GeometryID]render.GeometrySpec{},
		TextureSizes:   map[render.TextureID]image.Point{},
	}
}

func (d *Driver) CreateTexture(img *image.RGBA, opts render.TextureOpts) (render.TextureID, error) {
	if d.FailCreate {
		return 0, errors.New("fake: create refused")
	}
	d.nextTex++
	d.TexturesCreated++
	d.TextureSizes[d.nextTex] = img.Bounds().Size()
	return d.nextTex, nil
}

func (d *Driver) DisposeTexture(id render.TextureID) {
	if _, ok := d.TextureSizes[id]; ok {
		delete(d.TextureSizes, id)
		d.TexturesDisposed++
	}
}

func (d *Driver) CreateGeometry(spec render.GeometrySpec) (render.GeometryID, error) {
	if d.FailCreate {
		return 0, errors.New("fake: create refused")
	}
	d.nextGeom++
	d.GeometriesCreated++
	d.LiveGeometries[d.nextGeom] = spec
	return d.nextGeom, nil
}

func (d *Driver) DisposeGeometry(id render.GeometryID) {
	if _, ok := d.LiveGeometries[id]; ok {
		delete(d.LiveGeometries, id)
		d.GeometriesDisposed++
	}
}

func (d *Driver) Present(f *render.Frame) error {
	d.Frames++
	d.Last.ID = f.ID
	d.Last.Camera = f.Camera
	d.Last.Layers = append(d.Last.Layers[:0], f.Layers...)
	return nil
}
