package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

func TestNextPow2(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {4, 4}, {5, 8},
		{63, 64}, {64, 64}, {65, 128}, {1000, 1024},
	}
	for _, c := range cases {
		if got := NextPow2(c.in); got != c.want {
			t.Fatalf("NextPow2(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestRasterizeTextDimensions(t *testing.T) {
	b, err := NewBuilder(32)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	img := b.RasterizeText("HELLO WORLD", Style{Padding: 8})
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w&(w-1) != 0 || h&(h-1) != 0 {
		t.Fatalf("canvas %dx%d is not power-of-two", w, h)
	}
	if w < 64 || h < 32 {
		t.Fatalf("canvas %dx%d too small for the measured line", w, h)
	}

	// transparent background by default, with some opaque glyph pixels
	opaque := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.RGBAAt(x, y).A > 0 {
				opaque++
			}
		}
	}
	if opaque == 0 {
		t.Fatal("no glyph pixels drawn")
	}
	if opaque == w*h {
		t.Fatal("default background is not transparent")
	}
}

// The rasterized line must come out horizontally flipped: the camera sits
// inside the cylinder and reads the texture through its back face.
func TestRasterizeTextMirrored(t *testing.T) {
	b, err := NewBuilder(32)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	const line = "L" // asymmetric glyph
	const pad = 4
	got := b.RasterizeText(line, Style{Padding: pad})

	// the same draw without the flip
	d := font.Drawer{Face: b.face, Src: image.NewUniform(color.White)}
	adv := d.MeasureString(line)
	m := b.face.Metrics()
	w := adv.Ceil() + 2*pad
	h := (m.Ascent + m.Descent).Ceil() + 2*pad
	plain := image.NewRGBA(image.Rect(0, 0, NextPow2(w), NextPow2(h)))
	d.Dst = plain
	d.Dot = fixed.P(pad, pad+m.Ascent.Ceil())
	d.DrawString(line)

	if got.Bounds() != plain.Bounds() {
		t.Fatalf("bounds %v vs %v", got.Bounds(), plain.Bounds())
	}
	cw, ch := plain.Bounds().Dx(), plain.Bounds().Dy()
	diff := 0
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			if got.RGBAAt(x, y) != plain.RGBAAt(cw-1-x, y) {
				t.Fatalf("pixel (%d,%d) is not the mirror of the plain draw", x, y)
			}
			if plain.RGBAAt(x, y) != plain.RGBAAt(cw-1-x, y) {
				diff++
			}
		}
	}
	if diff == 0 {
		t.Fatal("reference glyph is symmetric; mirror check proves nothing")
	}
}

func TestMirrorX(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 2))
	mark := color.RGBA{R: 255, A: 255}
	img.SetRGBA(1, 0, mark)
	mirrorX(img)
	if img.RGBAAt(1, 0) == mark {
		t.Fatal("marked pixel did not move")
	}
	if img.RGBAAt(6, 0) != mark {
		t.Fatalf("marked pixel at %v, want column 6", img.RGBAAt(6, 0))
	}
}

func TestRasterizeTextBackground(t *testing.T) {
	b, err := NewBuilder(24)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	img := b.RasterizeText("X", Style{Padding: 4, Background: color.Black})
	if c := img.RGBAAt(0, 0); c.A != 255 {
		t.Fatalf("corner pixel alpha = %d, want opaque background", c.A)
	}
}

func TestRasterizeImageDownsamples(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4096, 1024))
	out := RasterizeImage(src)
	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	if w != MaxImageDim {
		t.Fatalf("width = %d, want %d", w, MaxImageDim)
	}
	if h != 256 {
		t.Fatalf("height = %d, want 256 (aspect preserved)", h)
	}

	small := image.NewRGBA(image.Rect(0, 0, 100, 50))
	out = RasterizeImage(small)
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 50 {
		t.Fatalf("small image resized: %v", out.Bounds())
	}
}

func TestLoadImagesPartialSuccess(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}

	fsys := fstest.MapFS{
		"good.png": &fstest.MapFile{Data: buf.Bytes()},
		"bad.png":  &fstest.MapFile{Data: []byte("not an image")},
	}

	got := LoadImages(fsys, []string{"good.png", "missing.png", "bad.png"}, zerolog.Nop())
	if len(got) != 1 {
		t.Fatalf("loaded %d images, want 1", len(got))
	}
	if got[0].Path != "good.png" {
		t.Fatalf("path = %q, want good.png", got[0].Path)
	}
	if got[0].Img == nil {
		t.Fatal("nil decoded image")
	}
}

func TestLoadImagesPreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	fsys := fstest.MapFS{
		"a.png": &fstest.MapFile{Data: buf.Bytes()},
		"b.png": &fstest.MapFile{Data: buf.Bytes()},
		"c.png": &fstest.MapFile{Data: buf.Bytes()},
	}
	got := LoadImages(fsys, []string{"c.png", "a.png", "b.png"}, zerolog.Nop())
	want := []string{"c.png", "a.png", "b.png"}
	if len(got) != 3 {
		t.Fatalf("loaded %d images, want 3", len(got))
	}
	for i := range got {
		if got[i].Path != want[i] {
			t.Fatalf("order: got[%d] = %q, want %q", i, got[i].Path, want[i])
		}
	}
}
