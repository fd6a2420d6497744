package render

import (
	"image"
	"image/color"
)

// Vec is a point in canvas pixels.
type Vec struct {
	X, Y float64
}

// Command is a single drawing operation. The set of commands is closed.
type Command interface {
	command()
}

// Glow is a soft halo stroked beneath a segment.
type Glow struct {
	Color            color.NRGBA
	Radius           float64
	OffsetX, OffsetY float64
}

// StrokeSegment strokes one track segment with round caps and joins.
type StrokeSegment struct {
	From, To Vec
	Color    color.NRGBA
	Width    float64
	Glow     Glow
}

// StrokeLine strokes a plain straight line.
type StrokeLine struct {
	From, To Vec
	Color    color.NRGBA
	Width    float64
}

// FillGradientBand fills the full-width band [Y0, Y1] with a vertical gradient.
type FillGradientBand struct {
	Y0, Y1, Width float64
	From, To      color.NRGBA
}

// FillText draws text with its baseline at Y. AnchorX is 0 for left,
// 0.5 for centered and 1 for right aligned text.
type FillText struct {
	Text    string
	X, Y    float64
	AnchorX float64
	Font    FontSpec
	Color   color.NRGBA
}

// DrawImage draws an image at its natural size with its top-left corner at X, Y.
type DrawImage struct {
	Image image.Image
	X, Y  int
}

func (StrokeSegment) command()    {}
func (StrokeLine) command()       {}
func (FillGradientBand) command() {}
func (FillText) command()         {}
func (DrawImage) command()        {}

type FontWeight int

const (
	Regular FontWeight = iota
	Medium
)

// FontSpec selects a face. Size is in pixels.
type FontSpec struct {
	Weight FontWeight
	Size   float64
}

// Measurer reports the rendered width and height of text.
type Measurer interface {
	MeasureString(s string, f FontSpec) (w, h float64)
}
