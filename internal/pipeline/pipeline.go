// Package pipeline runs one GPX + photo to annotated image conversion.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/schollz/progressbar/v3"

	"gpx_overlay_image/internal/errs"
	"gpx_overlay_image/internal/geo"
	"gpx_overlay_image/internal/logging"
	"gpx_overlay_image/internal/render"
	"gpx_overlay_image/internal/track"
)

const DefaultJPEGQuality = 90

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}

type Options struct {
	GPXPath    string
	ImagePath  string
	OutputPath string
	Athlete    string
	// LogoPath is optional. When set, the file must exist.
	LogoPath string

	JPEGQuality int
	Brightness  float64
	Contrast    float64

	// ProgressWriter receives the track rendering progress bar. nil discards it.
	ProgressWriter io.Writer
	// Debug logs every enriched point and the metrics, then stops before rendering.
	Debug bool
}

func (o Options) validate() error {
	if strings.ToLower(filepath.Ext(o.GPXPath)) != ".gpx" {
		return errs.InvalidArgument("track file %q must have a .gpx extension", o.GPXPath)
	}
	if !imageExtensions[strings.ToLower(filepath.Ext(o.ImagePath))] {
		return errs.InvalidArgument("image file %q must be .jpg, .jpeg, .png or .gif", o.ImagePath)
	}
	if o.OutputPath == "" && !o.Debug {
		return errs.InvalidArgument("output path is empty")
	}
	if o.JPEGQuality < 0 || o.JPEGQuality > 100 {
		return errs.InvalidArgument("jpeg quality must be within 1..100, got %d", o.JPEGQuality)
	}
	if o.Contrast < 0 {
		return errs.InvalidArgument("contrast must not be negative, got %v", o.Contrast)
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.JPEGQuality == 0 {
		o.JPEGQuality = DefaultJPEGQuality
	}
	if o.Contrast == 0 {
		o.Contrast = 1
	}
	if o.ProgressWriter == nil {
		o.ProgressWriter = io.Discard
	}
	return o
}

func checkExists(kind, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errs.FileNotFound("%s file %s does not exist", kind, path)
		}
		return errs.FileNotFound("%s file %s: %v", kind, path, err)
	}
	return nil
}

func loadImage(kind, path string) (image.Image, error) {
	img, err := gg.LoadImage(path)
	if err != nil {
		return nil, errs.Encoding(err, "failed to decode %s %s", kind, path)
	}
	return img, nil
}

func stage(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("stopped before %s: %w", name, err)
	}
	logging.Info().Str("stage", name).Msg("Starting stage")
	return nil
}

// Run reads the track and photo named in opts and writes the annotated image
// to opts.OutputPath. Nothing is written at the destination unless every
// stage succeeds.
func Run(ctx context.Context, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	opts = opts.withDefaults()

	if err := checkExists("track", opts.GPXPath); err != nil {
		return err
	}
	if err := checkExists("image", opts.ImagePath); err != nil {
		return err
	}
	if opts.LogoPath != "" {
		if err := checkExists("logo", opts.LogoPath); err != nil {
			return err
		}
	}

	if err := stage(ctx, "load track"); err != nil {
		return err
	}
	raw, err := track.LoadGPX(opts.GPXPath)
	if err != nil {
		return err
	}
	logging.Info().Str("gpx", opts.GPXPath).Int("points", len(raw)).Msg("Track loaded")

	if err := stage(ctx, "enrich"); err != nil {
		return err
	}
	points, metrics, err := track.Enrich(raw)
	if err != nil {
		return err
	}
	logMetrics(metrics)

	if opts.Debug {
		dumpPoints(points)
		return nil
	}

	if err := stage(ctx, "load images"); err != nil {
		return err
	}
	src, err := loadImage("image", opts.ImagePath)
	if err != nil {
		return err
	}
	var logo image.Image
	if opts.LogoPath != "" {
		if logo, err = loadImage("logo", opts.LogoPath); err != nil {
			return err
		}
	}

	if err := stage(ctx, "render"); err != nil {
		return err
	}
	img, err := renderImage(src, points, metrics, render.Branding{Logo: logo, Text: opts.Athlete}, opts)
	if err != nil {
		return err
	}

	if err := stage(ctx, "write output"); err != nil {
		return err
	}
	if err := writeImage(img, opts.OutputPath, opts.JPEGQuality); err != nil {
		return err
	}
	logging.Info().Str("output", opts.OutputPath).Msg("Image saved")
	return nil
}

func renderImage(src image.Image, points []track.ProjectedPoint, m track.Metrics, b render.Branding, opts Options) (image.Image, error) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	bb := geo.Bounds(xs, ys)

	bg, c := render.PrepareBackground(src, opts.Brightness, opts.Contrast)
	sp, err := render.SolveScale(bb, c)
	if err != nil {
		return nil, err
	}
	if bb.SpanX() == 0 || bb.SpanY() == 0 {
		logging.Warn().
			Float64("span_x", bb.SpanX()).
			Float64("span_y", bb.SpanY()).
			Msg("Track is flat on one axis, scaling from the other axis only")
	}

	surface, err := render.NewSurface(bg)
	if err != nil {
		return nil, err
	}

	bar := progressbar.NewOptions(len(points),
		progressbar.OptionSetWriter(opts.ProgressWriter),
		progressbar.OptionSetDescription("Drawing track"),
		progressbar.OptionShowCount(),
	)

	surface.Execute(render.BandCommands(c))
	surface.Execute(render.TrackCommands(points, m, bb, sp, c, bar))
	if err := bar.Finish(); err != nil {
		logging.Debug().Err(err).Msg("Progress bar did not finish")
	}
	fmt.Fprintln(opts.ProgressWriter)
	surface.Execute(render.OverlayCommands(c, m, b, surface))

	return surface.Image(), nil
}

func logMetrics(m track.Metrics) {
	logging.Info().
		Float64("distance_km", m.TotalDistance/1000).
		Float64("avg_kmh", m.AverageSpeed*3.6).
		Float64("max_kmh", m.SmoothedMaxSpeed*3.6).
		Float64("climb_m", m.TotalClimb).
		Dur("elapsed", time.Duration(m.ElapsedDuration*float64(time.Second))).
		Dur("active", time.Duration(m.ActiveDuration*float64(time.Second))).
		Msg("Track metrics")
}

func dumpPoints(points []track.ProjectedPoint) {
	t0 := points[0].Time
	var total float64
	for i, p := range points {
		total += p.Distance
		var bearing float64
		if i > 0 {
			prev := points[i-1]
			bearing = geo.BearingDegrees(prev.Lat, prev.Lon, p.Lat, p.Lon)
		}
		logging.Debug().
			Int("point", i).
			Dur("time", p.Time.Sub(t0)).
			Float64("dist_km", total/1000).
			Float64("ddist_m", p.Distance).
			Float64("speed_kmh", p.Speed*3.6).
			Float64("ele", p.Ele).
			Float64("bearing", bearing).
			Float64("x", p.X).
			Float64("y", p.Y).
			Msg("Point")
	}
}
