package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"gpx_overlay_image/internal/config"
	"gpx_overlay_image/internal/logging"
	"gpx_overlay_image/internal/pipeline"
)

// --- Main Logic ---

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stderr)
	stop()
	if code := exitCode(err); code != 0 {
		printError(os.Stderr, err)
		os.Exit(code)
	}
}

// run returns the first failure unreported; main prints it.
func run(ctx context.Context, argv []string, stderr io.Writer) error {
	args, err := parseArguments(argv, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load(args.ConfigFile)
	if err != nil {
		return err
	}
	cfg = applyArguments(cfg, args)

	level := cfg.Log.Level
	if args.Debug {
		level = "debug"
	}
	logging.Init(logging.Config{Level: level, Format: cfg.Log.Format, Output: stderr})

	logo := logoPath()
	if logo == "" {
		logging.Warn().Msg("Logo asset not found, drawing branding text only")
	}

	return pipeline.Run(ctx, pipeline.Options{
		GPXPath:        args.GpxFile,
		ImagePath:      args.ImageFile,
		OutputPath:     cfg.Output,
		Athlete:        cfg.Athlete,
		LogoPath:       logo,
		JPEGQuality:    cfg.JPEGQuality,
		Brightness:     cfg.Background.Brightness,
		Contrast:       cfg.Background.Contrast,
		ProgressWriter: stderr,
		Debug:          args.Debug,
	})
}
