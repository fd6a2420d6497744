package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gpx_overlay_image/internal/config"
	"gpx_overlay_image/internal/errs"
)

// --- Structs ---

type Arguments struct {
	GpxFile    string
	ImageFile  string
	OutputFile string
	Athlete    string
	ConfigFile string
	LogLevel   string
	LogFormat  string
	Debug      bool
}

// --- Argument Parsing ---

func newFlagSet(args *Arguments, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("gpx-overlay-image", flag.ContinueOnError)
	fs.SetOutput(output)

	for _, name := range []string{"g", "gpx"} {
		fs.StringVar(&args.GpxFile, name, "", "Path to the GPX track (required).")
	}
	for _, name := range []string{"i", "image"} {
		fs.StringVar(&args.ImageFile, name, "", "Background photo: .jpg, .jpeg, .png or .gif (required).")
	}
	for _, name := range []string{"o", "output"} {
		fs.StringVar(&args.OutputFile, name, "", "Output image; .png writes PNG, anything else JPEG. Default from config (out.jpg).")
	}
	for _, name := range []string{"a", "athlete"} {
		fs.StringVar(&args.Athlete, name, "", "Branding text drawn next to the logo.")
	}
	fs.StringVar(&args.ConfigFile, "config", "", "Optional YAML config file.")
	fs.StringVar(&args.LogLevel, "log-level", "", "Log level: debug, info, warn, error.")
	fs.StringVar(&args.LogFormat, "log-format", "", "Log format: console or json.")
	fs.BoolVar(&args.Debug, "debug", false, "Log every track point and the metrics, then exit without rendering.")
	return fs
}

func parseArguments(argv []string, output io.Writer) (*Arguments, error) {
	args := &Arguments{}
	fs := newFlagSet(args, output)
	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, errs.InvalidArgument("%v", err)
	}
	if fs.NArg() > 0 {
		return nil, errs.InvalidArgument("unexpected arguments: %v", fs.Args())
	}
	if args.GpxFile == "" {
		return nil, errs.InvalidArgument("--gpx is required")
	}
	if args.ImageFile == "" {
		return nil, errs.InvalidArgument("--image is required")
	}
	return args, nil
}

// applyArguments lets explicitly given flags win over file and env settings.
func applyArguments(cfg config.Config, args *Arguments) config.Config {
	if args.OutputFile != "" {
		cfg.Output = args.OutputFile
	}
	if args.Athlete != "" {
		cfg.Athlete = args.Athlete
	}
	if args.LogLevel != "" {
		cfg.Log.Level = args.LogLevel
	}
	if args.LogFormat != "" {
		cfg.Log.Format = args.LogFormat
	}
	return cfg
}

// logoPath finds assets/logo.png next to the executable, falling back to the
// working directory for `go run` builds.
func logoPath() string {
	const rel = "assets/logo.png"
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		candidate := filepath.Join(filepath.Dir(exe), filepath.FromSlash(rel))
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	if _, err := os.Stat(rel); err == nil {
		return filepath.FromSlash(rel)
	}
	return ""
}

func exitCode(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 1
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
