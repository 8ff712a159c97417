// Package texture rasterizes text lines and static images into RGBA
// buffers sized for driver texture upload.
package texture

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Style controls text rasterization. A nil Background leaves the canvas
// transparent; tinting happens at render time through the layer color.
type Style struct {
	Padding    int
	Foreground color.Color
	Background color.Color
}

// Builder rasterizes single text lines with a fixed face.
type Builder struct {
	face font.Face
}

// NewBuilder loads the bundled regular face at the given pixel size.
func NewBuilder(size float64) (*Builder, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	return &Builder{face: face}, nil
}

func (b *Builder) Close() error { return b.face.Close() }

// RasterizeText measures line with the target face and draws it into a
// power-of-two canvas: width = next pow2 >= measured + 2*padding, height =
// next pow2 >= line height + 2*padding. The result is drawn horizontally
// mirrored: the viewing camera sits inside the cylinder looking outward
// through the back face, which flips left and right.
func (b *Builder) RasterizeText(line string, style Style) *image.RGBA {
	fg := style.Foreground
	if fg == nil {
		fg = color.White
	}
	pad := style.Padding

	d := font.Drawer{Face: b.face, Src: image.NewUniform(fg)}
	adv := d.MeasureString(line)
	m := b.face.Metrics()
	w := adv.Ceil() + 2*pad
	h := (m.Ascent + m.Descent).Ceil() + 2*pad

	img := image.NewRGBA(image.Rect(0, 0, NextPow2(w), NextPow2(h)))
	if style.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(style.Background), image.Point{}, draw.Src)
	}
	d.Dst = img
	d.Dot = fixed.P(pad, pad+m.Ascent.Ceil())
	d.DrawString(line)

	mirrorX(img)
	return img
}

// mirrorX flips the image across its full width so the wrapped texture
// still tiles seamlessly.
func mirrorX(img *image.RGBA) {
	b := img.Bounds()
	w := b.Dx()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := 0; x < w/2; x++ {
			l := img.RGBAAt(b.Min.X+x, y)
			r := img.RGBAAt(b.Max.X-1-x, y)
			img.SetRGBA(b.Min.X+x, y, r)
			img.SetRGBA(b.Max.X-1-x, y, l)
		}
	}
}

// NextPow2 returns the smallest power of two >= n (minimum 1).
func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
