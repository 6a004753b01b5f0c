// Package assets loads the images the game draws: the background, the bird
// and the two tube parts. The defaults are embedded in the binary; a
// directory on disk can replace them.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"sync"

	"golang.org/x/image/draw"
)

// Resource names.
const (
	Background = "background.png"
	Bird       = "bird.png"
	TubeBody   = "tube_body.png"
	TubeMouth  = "tube_mouth.png"
)

// Required lists every image the game needs before it can start.
var Required = []string{Background, Bird, TubeBody, TubeMouth}

// ErrResourceMissing is returned when a required image cannot be found.
var ErrResourceMissing = errors.New("assets: resource missing")

//go:embed images/*.png
var embedded embed.FS

// Default returns the embedded image set.
func Default() fs.FS {
	sub, err := fs.Sub(embedded, "images")
	if err != nil {
		panic(err)
	}
	return sub
}

// Loader decodes images from a file system and hands out copies scaled to
// an exact size. Decoded sources are cached by name.
type Loader struct {
	fsys fs.FS

	mu      sync.Mutex
	decoded map[string]image.Image
}

// NewLoader creates a loader reading from fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{
		fsys:    fsys,
		decoded: make(map[string]image.Image),
	}
}

// Check verifies that every named resource exists.
func (l *Loader) Check(names ...string) error {
	for _, name := range names {
		if _, err := fs.Stat(l.fsys, name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%w: cannot find resource %q", ErrResourceMissing, name)
			}
			return fmt.Errorf("assets: stat %s: %w", name, err)
		}
	}
	return nil
}

// Load returns the named image scaled to exactly w×h.
func (l *Loader) Load(name string, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("assets: invalid size %dx%d for %s", w, h, name)
	}
	src, err := l.source(name)
	if err != nil {
		return nil, err
	}
	return Scale(src, w, h), nil
}

func (l *Loader) source(name string) (image.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if img, ok := l.decoded[name]; ok {
		return img, nil
	}

	f, err := l.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: cannot find resource %q", ErrResourceMissing, name)
		}
		return nil, fmt.Errorf("assets: open %s: %w", name, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}
	l.decoded[name] = img
	return img, nil
}

// Scale resizes src to w×h with nearest-neighbour sampling so pixel art
// keeps hard edges.
func Scale(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
