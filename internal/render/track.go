package render

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"gpx_overlay_image/internal/geo"
	"gpx_overlay_image/internal/track"
)

const (
	lineWidthRatio = 0.005 // of min(width, height)
	glowRatio      = 0.01  // of width
	saturation     = 0.9
	lightness      = 0.5
)

// Progress receives one Add(1) per rendered point. *progressbar.ProgressBar
// satisfies it.
type Progress interface {
	Add(num int) error
}

type nopProgress struct{}

func (nopProgress) Add(int) error { return nil }

// SegmentColor returns the stroke color for a segment ending at a point with
// the given speed and elevation: hue follows elevation, opacity follows speed.
func SegmentColor(speed, ele float64, m track.Metrics) color.NRGBA {
	hue := 255.0
	if dEle := m.MaxElevation - m.MinElevation; dEle > 0 {
		hue = clamp(255-(ele-m.MinElevation)/dEle*250, 0, 255)
	}

	alpha := 0.3
	if m.MaxSpeed > 0 {
		alpha = clamp(speed*0.7/m.MaxSpeed+0.3, 0, 1)
	}

	r, g, b := colorful.Hsl(hue, saturation, lightness).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 255))}
}

// TrackCommands returns one StrokeSegment per consecutive pair of points.
func TrackCommands(points []track.ProjectedPoint, m track.Metrics, bb geo.BoundingBox, sp ScaleParams, c Canvas, progress Progress) []Command {
	if progress == nil {
		progress = nopProgress{}
	}

	w, h := float64(c.Width), float64(c.Height)
	width := math.Min(w, h) * lineWidthRatio
	glow := Glow{
		Color:   color.NRGBA{R: 255, G: 255, B: 255, A: 128},
		Radius:  w * glowRatio,
		OffsetX: 1,
		OffsetY: 1,
	}

	cmds := make([]Command, 0, len(points))
	var prev Vec
	for i, p := range points {
		px := sp.Pixel(bb, p.X, p.Y)
		if i > 0 {
			cmds = append(cmds, StrokeSegment{
				From:  prev,
				To:    px,
				Color: SegmentColor(p.Speed, p.Ele, m),
				Width: width,
				Glow:  glow,
			})
		}
		prev = px
		progress.Add(1)
	}
	return cmds
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
