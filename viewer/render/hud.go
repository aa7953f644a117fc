package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"

	"zemljevid/viewer/motion"
	"zemljevid/viewer/transform"
)

var (
	colorHUDBG = color.RGBA{R: 0x08, G: 0x08, B: 0x08, A: 0xc0}
	colorHUDFG = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)

const (
	hudPad        = 4
	hudLineHeight = 16
	hudBaseline   = 12
)

var hudFont = &freemono.Regular9pt7b

// rgbaDisplay lets tinyfont draw into an *image.RGBA.
type rgbaDisplay struct {
	img *image.RGBA
}

var _ drivers.Displayer = rgbaDisplay{}

func (d rgbaDisplay) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d rgbaDisplay) SetPixel(x, y int16, c color.RGBA) {
	p := image.Pt(int(x), int(y)).Add(d.img.Bounds().Min)
	if !p.In(d.img.Bounds()) {
		return
	}
	d.img.SetRGBA(p.X, p.Y, c)
}

func (d rgbaDisplay) Display() error { return nil }

// HUDLines describes the rendered frame and the committed target.
func HUDLines(f motion.Frame, s transform.Snapshot) []string {
	return []string{
		fmt.Sprintf("zoom %.2f -> %.2f", f.Scale-motion.BaseScale, s.Zoom),
		fmt.Sprintf("pan %.0f,%.0f", f.TranslateX, f.TranslateY),
		"origin " + f.Origin(),
	}
}

// HUDSize returns the pixel size DrawHUD needs for lines.
func HUDSize(lines []string) (w, h int) {
	for _, s := range lines {
		lw, _ := tinyfont.LineWidth(hudFont, s)
		if int(lw) > w {
			w = int(lw)
		}
	}
	return w + 2*hudPad, len(lines)*hudLineHeight + 2*hudPad
}

// DrawHUD draws lines in the top-left corner of dst.
func DrawHUD(dst *image.RGBA, lines []string) {
	w, h := HUDSize(lines)
	box := image.Rect(0, 0, w, h).Add(dst.Bounds().Min).Intersect(dst.Bounds())
	draw.Draw(dst, box, image.NewUniform(colorHUDBG), image.Point{}, draw.Over)

	d := rgbaDisplay{img: dst}
	for i, s := range lines {
		y := int16(hudPad + hudBaseline + i*hudLineHeight)
		tinyfont.WriteLine(d, hudFont, hudPad, y, s, colorHUDFG)
	}
}
