package hal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"zemljevid/viewer/render"
	"zemljevid/viewer/transform"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	// Width and Height size the page; the viewport is inset by Margin.
	Width, Height int
	Margin        int
}

// HeadlessHost renders into a software canvas. Input only arrives through
// Dispatch.
type HeadlessHost struct {
	hostBase
	canvas *render.Canvas
}

// NewHeadlessHost returns a laid-out host showing img.
func NewHeadlessHost(img image.Image, cfg HeadlessConfig, log Logger) *HeadlessHost {
	vw, vh := cfg.Width-2*cfg.Margin, cfg.Height-2*cfg.Margin
	if vw < 1 {
		vw = 1
	}
	if vh < 1 {
		vh = 1
	}
	canvas := render.NewCanvas(img, vw, vh)
	w, h := render.Size(img)

	hh := &HeadlessHost{canvas: canvas}
	hh.log = log
	hh.elem = NewElement(w, h, canvas)
	hh.elem.Layout(transform.Point{X: float64(cfg.Margin), Y: float64(cfg.Margin)})
	return hh
}

func (h *HeadlessHost) SetHUD(lines []string) { h.canvas.SetHUD(lines) }

// Render draws the current frame into the viewport-sized canvas.
func (h *HeadlessHost) Render() *image.RGBA { return h.canvas.Render() }

// RunHeadless runs the viewer app without opening a window. A step returning
// ErrStop ends the run without error.
func RunHeadless(ctx context.Context, img image.Image, newApp func(Host) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := NewHeadlessHost(img, cfg, NewLogger(os.Stdout))
	step, err := newApp(h)
	if err != nil {
		return err
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrStop) {
						return nil
					}
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
