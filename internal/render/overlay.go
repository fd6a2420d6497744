package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gpx_overlay_image/internal/track"
)

const (
	msToKmh    = 3.6
	unitKmh    = "km/h"
	columns    = 4
	logoToText = 0.8
)

var (
	labelColor = color.NRGBA{R: 255, G: 255, B: 255, A: 191}
	valueColor = color.NRGBA{R: 255, G: 255, B: 255, A: 128}
	bandTop    = color.NRGBA{}
	bandBottom = color.NRGBA{A: 217}
)

// Branding is the mark drawn at the top right: a logo followed by text.
type Branding struct {
	Logo image.Image
	Text string
}

// BandCommands darkens the lower half of the canvas so white labels stay
// readable on any photo.
func BandCommands(c Canvas) []Command {
	h := float64(c.Height)
	return []Command{FillGradientBand{
		Y0:    h / 2,
		Y1:    h,
		Width: float64(c.Width),
		From:  bandTop,
		To:    bandBottom,
	}}
}

// FormatElapsed renders a duration in seconds as "{h}h{m}" from one hour
// on and as plain minutes below that.
func FormatElapsed(sec float64) string {
	total := int(math.Round(sec / 60))
	if total >= 60 {
		return fmt.Sprintf("%dh%d", total/60, total%60)
	}
	return fmt.Sprintf("%d", total)
}

// overlay lays out metric blocks for one canvas.
type overlay struct {
	c     Canvas
	meas  Measurer
	xGrid float64
	cmds  []Command
}

// OverlayCommands returns the metric blocks and the branding mark.
func OverlayCommands(c Canvas, m track.Metrics, b Branding, meas Measurer) []Command {
	h := float64(c.Height)
	o := &overlay{
		c:     c,
		meas:  meas,
		xGrid: (float64(c.Width) - c.Margins.Left - c.Margins.Right) / columns,
	}

	bottom := h - c.Margins.Bottom
	o.metric("Distance", fmt.Sprintf("%.1f", m.TotalDistance/1000), "km", o.column(0), bottom)
	o.metric("Avg Speed", fmt.Sprintf("%.1f", m.AverageSpeed*msToKmh), unitKmh, o.column(1), bottom)
	o.metric("Max Speed", fmt.Sprintf("%.1f", m.SmoothedMaxSpeed*msToKmh), unitKmh, o.column(2), bottom)
	o.metric("Elevation", fmt.Sprintf("%.0f", m.TotalClimb), "m", o.column(3), h*3/4)
	o.metric("Total Time", FormatElapsed(m.ElapsedDuration), "m", o.column(3), bottom)
	o.branding(b)

	return o.cmds
}

func (o *overlay) column(n int) float64 {
	return o.c.Margins.Left + o.xGrid*float64(n)
}

func (o *overlay) font(w FontWeight, ratio float64) FontSpec {
	return FontSpec{Weight: w, Size: math.Round(float64(o.c.Height) * ratio)}
}

// metric draws a small label, a large value right-aligned under it and the
// unit to the right of the value. "km/h" is drawn as a fraction.
func (o *overlay) metric(label, value, unit string, x, y float64) {
	w, h := float64(o.c.Width), float64(o.c.Height)
	unitFont := o.font(Regular, 0.03)

	measured := unit
	if unit == unitKmh {
		measured = "km"
	}
	unitW, _ := o.meas.MeasureString(measured, unitFont)
	ux := x + o.xGrid - unitW
	valueY := y + h*0.08

	o.cmds = append(o.cmds,
		FillText{Text: label, X: ux, Y: y, AnchorX: 1, Font: o.font(Regular, 0.04), Color: labelColor},
		FillText{Text: value, X: ux, Y: valueY, AnchorX: 1, Font: o.font(Medium, 0.09), Color: valueColor},
	)

	if unit != unitKmh {
		o.cmds = append(o.cmds, FillText{Text: unit, X: ux, Y: valueY, Font: unitFont, Color: valueColor})
		return
	}

	dividerY := y + h*0.055
	o.cmds = append(o.cmds,
		FillText{Text: "km", X: ux, Y: y + h*0.05, Font: unitFont, Color: valueColor},
		StrokeLine{
			From:  Vec{X: ux, Y: dividerY},
			To:    Vec{X: ux + unitW, Y: dividerY},
			Color: labelColor,
			Width: math.Min(w, h) * 0.001,
		},
		FillText{Text: "h", X: ux + unitW/2, Y: valueY, AnchorX: 0.5, Font: unitFont, Color: valueColor},
	)
}

// branding right-aligns the text at the top margin and puts the logo just
// left of it. The text is sized from the logo height.
func (o *overlay) branding(b Branding) {
	if b.Logo == nil && b.Text == "" {
		return
	}
	right := float64(o.c.Width) - o.c.Margins.Right
	top := o.c.Margins.Top

	var logoW, logoH int
	if b.Logo != nil {
		size := b.Logo.Bounds().Size()
		logoW, logoH = size.X, size.Y
	}
	textFont := FontSpec{Weight: Regular, Size: float64(logoH) * logoToText}
	if textFont.Size <= 0 {
		textFont.Size = math.Round(float64(o.c.Height) * 0.03)
	}

	var textW float64
	if b.Text != "" {
		textW, _ = o.meas.MeasureString(b.Text, textFont)
	}

	if b.Logo != nil {
		o.cmds = append(o.cmds, DrawImage{
			Image: b.Logo,
			X:     int(math.Round(right - float64(logoW) - textW)),
			Y:     int(math.Round(top)),
		})
	}
	if b.Text != "" {
		o.cmds = append(o.cmds, FillText{
			Text:    b.Text,
			X:       right,
			Y:       top + textFont.Size,
			AnchorX: 1,
			Font:    textFont,
			Color:   valueColor,
		})
	}
}
