package texture

import (
	"image"
	"io/fs"
	"sync"

	// decoders for the static asset formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rs/zerolog"
)

// Loaded is one successfully decoded and downsampled image.
type Loaded struct {
	Path string
	Img  *image.RGBA
}

// LoadImages decodes paths from fsys concurrently and returns the subset
// that decoded successfully, in input order. A failed image is logged and
// omitted, never retried; one bad file does not block the rest.
func LoadImages(fsys fs.FS, paths []string, log zerolog.Logger) []Loaded {
	results := make([]*Loaded, len(paths))
	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			f, err := fsys.Open(p)
			if err != nil {
				log.Warn().Err(err).Str("path", p).Msg("image open failed; skipping")
				return
			}
			defer f.Close()
			img, _, err := image.Decode(f)
			if err != nil {
				log.Warn().Err(err).Str("path", p).Msg("image decode failed; skipping")
				return
			}
			results[i] = &Loaded{Path: p, Img: RasterizeImage(img)}
		}(i, p)
	}
	wg.Wait()

	out := make([]Loaded, 0, len(paths))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}
