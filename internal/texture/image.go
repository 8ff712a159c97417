package texture

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// MaxImageDim bounds the largest texture edge produced from a source image.
const MaxImageDim = 1024

// RasterizeImage converts src to RGBA, downsampling so neither edge exceeds
// MaxImageDim while preserving aspect ratio.
func RasterizeImage(src image.Image) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	if w > MaxImageDim || h > MaxImageDim {
		if w >= h {
			h = h * MaxImageDim / w
			w = MaxImageDim
		} else {
			w = w * MaxImageDim / h
			h = MaxImageDim
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
