// Package render turns an enriched track into draw commands and executes
// them on a raster surface.
//
// Geometry (scale solving, pixel mapping, colors, label layout) is computed
// into plain Command values; only Surface knows about the graphics backend.
package render

import (
	"math"

	"gpx_overlay_image/internal/errs"
	"gpx_overlay_image/internal/geo"
)

// labelBand is the share of the canvas height kept free above the track.
const labelBand = 0.04

// Margins are in pixels.
type Margins struct {
	Left, Top, Right, Bottom float64
}

// Canvas is the fixed output geometry of a run.
type Canvas struct {
	Width, Height int
	Margins       Margins
}

// NewCanvas returns the square canvas for a source image of srcW x srcH:
// the side is the smaller source dimension.
func NewCanvas(srcW, srcH int) Canvas {
	side := min(srcW, srcH)
	w, h := float64(side), float64(side)
	return Canvas{
		Width:  side,
		Height: side,
		Margins: Margins{
			Left:   w * 0.01,
			Top:    h * 0.05,
			Right:  w * 0.05,
			Bottom: h * 0.10,
		},
	}
}

// ScaleParams maps planar coordinates to pixels with one scale for both axes.
type ScaleParams struct {
	Scale   float64 // pixels per planar unit
	OffsetX float64
	OffsetY float64
}

// SolveScale fits bb into the drawable area of c, preserving aspect.
// A box with no extent on either axis cannot be scaled. When only one axis
// is flat, the other axis alone determines the scale.
func SolveScale(bb geo.BoundingBox, c Canvas) (ScaleParams, error) {
	w, h := float64(c.Width), float64(c.Height)
	spanX, spanY := bb.SpanX(), bb.SpanY()

	ratioX := (w - c.Margins.Left - c.Margins.Right) / spanX
	ratioY := (h - c.Margins.Top - c.Margins.Bottom - h*labelBand) / spanY

	var scale float64
	switch {
	case spanX == 0 && spanY == 0:
		return ScaleParams{}, errs.Degenerate("track has zero spatial extent")
	case spanX == 0:
		scale = ratioY
	case spanY == 0:
		scale = ratioX
	default:
		scale = math.Min(ratioX, ratioY)
	}

	return ScaleParams{
		Scale:   scale,
		OffsetX: (w - spanX*scale) / 2,
		OffsetY: (h-c.Margins.Bottom+c.Margins.Top)/2 + spanY*scale/2,
	}, nil
}

// Pixel maps a planar point of bb to rounded canvas coordinates.
func (sp ScaleParams) Pixel(bb geo.BoundingBox, x, y float64) Vec {
	return Vec{
		X: math.Round(sp.OffsetX + (x-bb.MinX())*sp.Scale),
		Y: math.Round(sp.OffsetY - (y-bb.MinY())*sp.Scale),
	}
}
