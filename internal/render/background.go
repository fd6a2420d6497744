package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// CropSquare centers img on a square of side min(width, height), cutting off
// the overflow of the longer dimension.
func CropSquare(img image.Image) *image.RGBA {
	size := img.Bounds().Size()
	side := min(size.X, size.Y)
	dc := gg.NewContext(side, side)
	dc.DrawImage(img, (side-size.X)/2, (side-size.Y)/2)
	return dc.Image().(*image.RGBA)
}

// AdjustBrightnessContrast shifts brightness (in units of full scale, so 0.1
// is +10%) and then stretches contrast around mid-gray. Channels are adjusted
// unpremultiplied so translucent pixels keep their alpha.
func AdjustBrightnessContrast(img image.Image, brightness, contrast float64) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)

	adjust := func(v uint8) uint8 {
		c := float64(v) + brightness*255
		c = (c-128)*contrast + 128
		return uint8(math.Max(0, math.Min(255, c)))
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.SetNRGBA(x, y, color.NRGBA{R: adjust(c.R), G: adjust(c.G), B: adjust(c.B), A: c.A})
		}
	}
	return out
}

// PrepareBackground crops the source photo to the output canvas and applies
// the optional tone adjustment.
func PrepareBackground(src image.Image, brightness, contrast float64) (image.Image, Canvas) {
	size := src.Bounds().Size()
	c := NewCanvas(size.X, size.Y)
	var bg image.Image = CropSquare(src)
	if brightness != 0 || contrast != 1 {
		bg = AdjustBrightnessContrast(bg, brightness, contrast)
	}
	return bg, c
}
