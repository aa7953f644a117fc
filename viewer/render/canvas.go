package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"zemljevid/viewer/motion"
)

var colorBackground = color.RGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}

// Affine returns the source-to-destination matrix for f, with the element
// placed at (x, y) inside the destination.
func Affine(f motion.Frame, x, y float64) f64.Aff3 {
	s := f.Scale
	return f64.Aff3{
		s, 0, x + f.TranslateX + f.OriginX - s*f.OriginX,
		0, s, y + f.TranslateY + f.OriginY - s*f.OriginY,
	}
}

// Canvas is a software rendering surface: a fixed-size viewport that draws
// the source image under the last frame's transform.
type Canvas struct {
	src   image.Image
	dst   *image.RGBA
	frame motion.Frame
	hud   []string
}

func NewCanvas(src image.Image, width, height int) *Canvas {
	return &Canvas{
		src:   src,
		dst:   image.NewRGBA(image.Rect(0, 0, width, height)),
		frame: motion.Frame{Scale: motion.BaseScale},
	}
}

func (c *Canvas) SetTransform(f motion.Frame) { c.frame = f }

func (c *Canvas) Frame() motion.Frame { return c.frame }

// SetHUD sets the overlay text drawn on the next Render. Nil disables it.
func (c *Canvas) SetHUD(lines []string) { c.hud = lines }

// Render draws the current frame and returns the canvas pixels. The result
// is reused by the next call.
func (c *Canvas) Render() *image.RGBA {
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)
	if c.src != nil && c.frame.Scale > 0 {
		draw.BiLinear.Transform(c.dst, Affine(c.frame, 0, 0), c.src, c.src.Bounds(), draw.Over, nil)
	}
	if len(c.hud) > 0 {
		DrawHUD(c.dst, c.hud)
	}
	return c.dst
}
