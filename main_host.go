package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"zemljevid/app"
	"zemljevid/hal"
	"zemljevid/internal/buildinfo"
	"zemljevid/viewer/config"
	"zemljevid/viewer/render"
	"zemljevid/viewer/script"
)

func main() {
	var (
		cfg         hal.HeadlessConfig
		configPath  string
		scriptPath  string
		outPath     string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "TOML settings file (defaults when empty).")
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = until the script finishes).")
	flag.StringVar(&scriptPath, "script", "", "Replay gestures from a TOML script.")
	flag.StringVar(&outPath, "out", "", "Write the settled viewport as WebP (headless only).")
	flag.BoolVar(&showVersion, "version", false, "Print the build version and exit.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] image\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Println(buildinfo.String())
		return
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(flag.Arg(0), configPath, scriptPath, outPath, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(imagePath, configPath, scriptPath, outPath string, hc hal.HeadlessConfig) error {
	vc, err := config.Load(configPath)
	if err != nil {
		return err
	}
	img, err := render.LoadImage(imagePath)
	if err != nil {
		return err
	}

	ac := app.Config{Viewer: vc, Out: outPath}
	if scriptPath != "" {
		if ac.Script, err = script.Load(scriptPath); err != nil {
			return err
		}
	}
	newApp := func(h hal.Host) (func() error, error) {
		return app.New(h, ac)
	}

	if !hc.Enabled {
		if outPath != "" {
			return errors.New("-out requires -headless")
		}
		return hal.RunWindow(hal.WindowConfig{
			Width:     vc.Window.Width,
			Height:    vc.Window.Height,
			Title:     vc.Window.Title,
			Margin:    vc.Viewport.Margin,
			TPS:       vc.Motion.FPS,
			WheelLine: vc.Gesture.WheelLine,
		}, img, newApp)
	}

	// Without a tick limit a headless run ends once the script is done.
	ac.ExitWhenDone = hc.Ticks == 0
	hc.Width, hc.Height = vc.Window.Width, vc.Window.Height
	hc.Margin = vc.Viewport.Margin

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := hal.RunHeadless(ctx, img, newApp, hc); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
