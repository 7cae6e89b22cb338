// Package media picks a photo from the device and turns it into the compact
// data URI stored in the profile.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/image/draw"
)

// JPEGDataURIPrefix starts every encoded photo.
const JPEGDataURIPrefix = "data:image/jpeg;base64,"

const (
	DefaultMaxDimension = 512
	DefaultQuality      = 70
)

var ErrCancelled = errors.New("selection cancelled")

// Encoder downsizes and re-compresses images.
type Encoder struct {
	// MaxDimension bounds the longest side, in pixels.
	MaxDimension int
	// Quality is the JPEG quality, 1..100.
	Quality int
}

// Encode decodes a JPEG, PNG or GIF image from r, scales it down to fit
// MaxDimension keeping the aspect ratio, and returns it as a JPEG data URI.
// Images already within the bound are only re-encoded. Transparent areas
// become white.
func (e Encoder) Encode(r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	img := e.fit(src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.quality()}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	return JPEGDataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (e Encoder) fit(src image.Image) image.Image {
	limit := e.MaxDimension
	if limit <= 0 {
		limit = DefaultMaxDimension
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	scale := w > limit || h > limit
	if scale {
		if w >= h {
			h = max(1, h*limit/w)
			w = limit
		} else {
			w = max(1, w*limit/h)
			h = limit
		}
	}

	// JPEG has no alpha channel.
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	if scale {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	} else {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	}
	return dst
}

func (e Encoder) quality() int {
	if e.Quality < 1 || e.Quality > 100 {
		return DefaultQuality
	}
	return e.Quality
}

// Picker reads the selected image from a filesystem and encodes it.
type Picker struct {
	fs  afero.Fs
	enc Encoder
}

func NewPicker(fs afero.Fs, enc Encoder) *Picker {
	return &Picker{fs: fs, enc: enc}
}

// Select encodes the image at path. An empty path means the user cancelled
// and yields ErrCancelled.
func (p *Picker) Select(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrCancelled
	}

	fi, err := p.fs.Stat(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	if fi.IsDir() {
		return "", fmt.Errorf("open %s: is a directory", path)
	}

	f, err := p.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return p.enc.Encode(f)
}
