package app

import (
	"errors"
	"fmt"
	"image"

	"zemljevid/hal"
	"zemljevid/internal/buildinfo"
	"zemljevid/viewer/config"
	"zemljevid/viewer/render"
	"zemljevid/viewer/script"
	"zemljevid/viewer/widget"
)

var ErrNoExport = errors.New("app: host cannot export frames")

type Config struct {
	Viewer config.Config
	// Script is replayed one step per tick when non-nil.
	Script *script.Script
	// Out receives a WebP of the viewport once the script has finished and
	// the motion has settled.
	Out string
	// ExitWhenDone ends the host loop at that same point.
	ExitWhenDone bool
}

// frameSource is implemented by hosts that can hand out rendered pixels.
type frameSource interface {
	Render() *image.RGBA
}

type system struct {
	h      hal.Host
	cfg    Config
	viewer *widget.Viewer
	player *script.Player

	frames     uint64
	scriptDone bool
	finished   bool
}

// New mounts a viewer into h and returns the per-tick step.
func New(h hal.Host, cfg Config) (func() error, error) {
	s, err := newSystem(h, cfg)
	if err != nil {
		return nil, err
	}
	return s.step, nil
}

func newSystem(h hal.Host, cfg Config) (*system, error) {
	if cfg.Out != "" {
		if _, ok := h.(frameSource); !ok {
			return nil, ErrNoExport
		}
	}

	s := &system{
		h:          h,
		cfg:        cfg,
		viewer:     widget.New(cfg.Viewer.Widget(), h.Surface(), h.Logger()),
		scriptDone: cfg.Script == nil,
	}
	if cfg.Script != nil {
		s.player = script.NewPlayer(cfg.Script)
	}

	z := cfg.Viewer.Zoom
	s.logf("zemljevid %s: zoom [%g, %g] step %g", buildinfo.Short(), z.Min, z.Max, z.Step)
	if err := s.viewer.Mount(h); err != nil {
		return nil, fmt.Errorf("app: mount: %w", err)
	}
	return s, nil
}

func (s *system) step() error {
	if !s.scriptDone {
		done, err := s.player.Step(s)
		if err != nil {
			return err
		}
		if done {
			s.scriptDone = true
			s.logf("script: done after %d frames", s.frames+1)
		}
	}

	f, mounted := s.viewer.Frame()
	s.frames++
	if s.cfg.Viewer.Window.HUD {
		snap, ok := s.viewer.State()
		if mounted && ok {
			s.h.SetHUD(render.HUDLines(f, snap))
		} else {
			s.h.SetHUD(nil)
		}
	}

	if s.finished || !s.scriptDone || !s.viewer.Settled() {
		return nil
	}
	s.finished = true
	if s.cfg.Out != "" {
		if err := render.WriteWebP(s.cfg.Out, s.h.(frameSource).Render()); err != nil {
			return err
		}
		s.logf("frame %d written to %s", s.frames, s.cfg.Out)
	}
	if s.cfg.ExitWhenDone {
		return hal.ErrStop
	}
	return nil
}

// Dispatch, Mount and Unmount let the script player drive the host and the
// viewer lifecycle.
func (s *system) Dispatch(ev widget.Event) bool { return s.h.Dispatch(ev) }

func (s *system) Mount() error { return s.viewer.Mount(s.h) }

func (s *system) Unmount() { s.viewer.Unmount() }

func (s *system) logf(format string, args ...any) {
	if l := s.h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf(format, args...))
	}
}
