// Package render holds a software rendering surface for the viewer plus the
// image decoding, HUD text and WebP export the hosts share.
package render

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// maxPixels bounds decoded images so a bad file cannot exhaust memory.
const maxPixels = 16384 * 16384

var ErrUnsupported = errors.New("render: unsupported format")

type fileFormat uint8

const (
	formatUnknown fileFormat = iota
	formatBMP
	formatPNG
	formatJPEG
	formatGIF
	formatWebP
	formatTGA
)

type decoder struct {
	decode func(io.Reader) (image.Image, error)
	config func(io.Reader) (image.Config, error)
}

var decoders = map[fileFormat]decoder{
	formatBMP:  {bmp.Decode, bmp.DecodeConfig},
	formatPNG:  {png.Decode, png.DecodeConfig},
	formatJPEG: {jpeg.Decode, jpeg.DecodeConfig},
	formatGIF:  {gif.Decode, gif.DecodeConfig},
	formatWebP: {webp.Decode, webp.DecodeConfig},
	formatTGA:  {tga.Decode, nil},
}

// detectFormat sniffs magic bytes and falls back to the extension. TGA has
// no magic number.
func detectFormat(head []byte, path string) fileFormat {
	switch {
	case len(head) >= 2 && head[0] == 'B' && head[1] == 'M':
		return formatBMP
	case len(head) >= 8 && string(head[:8]) == "\x89PNG\r\n\x1a\n":
		return formatPNG
	case len(head) >= 2 && head[0] == 0xFF && head[1] == 0xD8:
		return formatJPEG
	case len(head) >= 4 && string(head[:4]) == "GIF8":
		return formatGIF
	case len(head) >= 12 && string(head[:4]) == "RIFF" && string(head[8:12]) == "WEBP":
		return formatWebP
	}

	switch strings.ToLower(pathExt(path)) {
	case ".bmp":
		return formatBMP
	case ".png":
		return formatPNG
	case ".jpg", ".jpeg":
		return formatJPEG
	case ".gif":
		return formatGIF
	case ".webp":
		return formatWebP
	case ".tga":
		return formatTGA
	default:
		return formatUnknown
	}
}

func pathExt(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return ""
		}
		if p[i] == '.' {
			return p[i:]
		}
	}
	return ""
}

// LoadImage decodes the image at path.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("render: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := Decode(f, path)
	if err != nil {
		return nil, fmt.Errorf("render: %s: %w", path, err)
	}
	return img, nil
}

// Decode reads an image from r; name is only used as an extension hint.
func Decode(r io.ReadSeeker, name string) (image.Image, error) {
	head := make([]byte, 16)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("read header: %w", err)
	}
	format := detectFormat(head[:n], name)
	dec, ok := decoders[format]
	if !ok {
		return nil, ErrUnsupported
	}

	if dec.config != nil {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek: %w", err)
		}
		cfg, err := dec.config(bufio.NewReader(r))
		if err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
		if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxPixels {
			return nil, fmt.Errorf("invalid dimensions: %dx%d", cfg.Width, cfg.Height)
		}
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek: %w", err)
	}
	img, err := dec.decode(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if format != formatJPEG {
		return img, nil
	}

	// JPEGs may carry an EXIF rotation.
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek: %w", err)
	}
	return orient(img, exifOrientation(r)), nil
}

// Size returns the intrinsic pixel dimensions of img.
func Size(img image.Image) (w, h int) {
	b := img.Bounds()
	return b.Dx(), b.Dy()
}
