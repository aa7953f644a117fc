//go:build cgo

package hal

import (
	"errors"
	"image"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"zemljevid/internal/buildinfo"
	"zemljevid/viewer/render"
	"zemljevid/viewer/transform"
)

var colorPage = color.RGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xff}

// RunWindow opens a desktop window showing img inside an inset viewport and
// forwards mouse, wheel, touch and keyboard input to the app's listeners.
// It blocks until the window closes or a step returns ErrStop.
func RunWindow(cfg WindowConfig, img image.Image, newApp func(Host) (func() error, error)) error {
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	g := newHostGame(cfg, img)
	step, err := newApp(g)
	if err != nil {
		return err
	}
	g.step = step

	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ErrStop) {
		return err
	}
	return nil
}

type hostGame struct {
	hostBase
	cfg WindowConfig

	img      *ebiten.Image
	viewport transform.Rect
	in       recognizer
	touchIDs []ebiten.TouchID
	touches  []touchPoint

	hud    []string
	hudSrc *image.RGBA
	hudImg *ebiten.Image

	step func() error
}

func newHostGame(cfg WindowConfig, img image.Image) *hostGame {
	w, h := render.Size(img)
	g := &hostGame{
		cfg: cfg,
		img: ebiten.NewImageFromImage(img),
		in:  recognizer{wheelLine: cfg.WheelLine},
	}
	g.log = NewLogger(os.Stdout)
	g.elem = NewElement(w, h, nil)
	return g
}

func (g *hostGame) SetHUD(lines []string) { g.hud = lines }

func (g *hostGame) sample() inputFrame {
	cx, cy := ebiten.CursorPosition()
	wx, wy := ebiten.Wheel()
	in := inputFrame{
		cursorX:     float64(cx),
		cursorY:     float64(cy),
		leftPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		leftDown:    ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		wheelX:      wx,
		wheelY:      wy,
		ctrl:        ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta),
		reset:       inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.Key0),
	}

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	g.touches = g.touches[:0]
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.touches = append(g.touches, touchPoint{id: int(id), x: float64(x), y: float64(y)})
	}
	in.touches = g.touches
	return in
}

func (g *hostGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrStop
	}
	g.in.update(g.sample(), g.viewport, g.Dispatch)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	screen.Fill(colorPage)

	vr := image.Rect(
		int(g.viewport.X), int(g.viewport.Y),
		int(g.viewport.X+g.viewport.Width), int(g.viewport.Y+g.viewport.Height),
	)
	view := screen.SubImage(vr).(*ebiten.Image)
	view.Fill(color.RGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff})

	f := g.elem.Frame()
	if f.Scale > 0 {
		o := g.elem.Origin()
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Translate(-f.OriginX, -f.OriginY)
		op.GeoM.Scale(f.Scale, f.Scale)
		op.GeoM.Translate(o.X+f.TranslateX+f.OriginX, o.Y+f.TranslateY+f.OriginY)
		view.DrawImage(g.img, op)
	}

	g.drawHUD(view, vr.Min)
}

func (g *hostGame) drawHUD(dst *ebiten.Image, at image.Point) {
	if len(g.hud) == 0 {
		return
	}
	w, h := render.HUDSize(g.hud)
	if g.hudSrc == nil || g.hudSrc.Bounds().Dx() != w || g.hudSrc.Bounds().Dy() != h {
		g.hudSrc = image.NewRGBA(image.Rect(0, 0, w, h))
		if g.hudImg != nil {
			g.hudImg.Deallocate()
		}
		g.hudImg = ebiten.NewImage(w, h)
	}
	clear(g.hudSrc.Pix)
	render.DrawHUD(g.hudSrc, g.hud)
	g.hudImg.WritePixels(g.hudSrc.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(at.X), float64(at.Y))
	dst.DrawImage(g.hudImg, op)
}

// Layout insets the viewport by the configured margin. Geometry becomes
// available from the first layout on.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	m := float64(g.cfg.Margin)
	w := float64(outsideWidth) - 2*m
	h := float64(outsideHeight) - 2*m
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	g.viewport = transform.Rect{X: m, Y: m, Width: w, Height: h}
	g.elem.Layout(g.viewport.Origin())
	return outsideWidth, outsideHeight
}
