package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) image.Image {
	dc := gg.NewContext(w, h)
	dc.SetColor(c)
	dc.Clear()
	return dc.Image()
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestSurfaceStrokeSegment(t *testing.T) {
	s, err := NewSurface(solid(100, 100, color.Black))
	require.NoError(t, err)

	s.Execute([]Command{StrokeSegment{
		From:  Vec{X: 10, Y: 50},
		To:    Vec{X: 90, Y: 50},
		Color: color.NRGBA{R: 255, A: 255},
		Width: 6,
		Glow:  Glow{Color: color.NRGBA{R: 255, G: 255, B: 255, A: 128}, Radius: 4, OffsetX: 1, OffsetY: 1},
	}})

	img := s.Image()
	center := rgbaAt(img, 50, 50)
	assert.Equal(t, uint8(255), center.R)
	assert.Less(t, center.G, uint8(10))

	halo := rgbaAt(img, 50, 57)
	assert.Greater(t, halo.G, uint8(0), "glow should lighten pixels next to the line")
	assert.Equal(t, color.RGBA{A: 255}, rgbaAt(img, 50, 5))
}

func TestSurfaceGradientBand(t *testing.T) {
	s, err := NewSurface(solid(50, 100, color.White))
	require.NoError(t, err)
	s.Execute(BandCommands(Canvas{Width: 50, Height: 100}))

	img := s.Image()
	assert.Equal(t, uint8(255), rgbaAt(img, 25, 10).R)
	top := rgbaAt(img, 25, 52).R
	bottom := rgbaAt(img, 25, 99).R
	assert.Greater(t, top, bottom)
	assert.Less(t, bottom, uint8(60))
}

func TestSurfaceTextAndImage(t *testing.T) {
	s, err := NewSurface(solid(200, 100, color.Black))
	require.NoError(t, err)

	f := FontSpec{Weight: Medium, Size: 40}
	w, h := s.MeasureString("88", f)
	assert.Greater(t, w, 0.0)
	assert.Greater(t, h, 0.0)

	wr, _ := s.MeasureString("88", FontSpec{Weight: Regular, Size: 20})
	assert.Less(t, wr, w)

	s.Execute([]Command{
		FillText{Text: "88", X: 190, Y: 80, AnchorX: 1, Font: f, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		DrawImage{Image: solid(10, 10, color.White), X: 5, Y: 5},
	})

	img := s.Image()
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, rgbaAt(img, 9, 9))

	lit := 0
	for y := 40; y < 85; y++ {
		for x := int(190 - w); x < 190; x++ {
			if rgbaAt(img, x, y).R > 128 {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 50)

	leftOfText := 0
	for y := 40; y < 85; y++ {
		for x := 20; x < int(190-w)-2; x++ {
			if rgbaAt(img, x, y).R > 0 {
				leftOfText++
			}
		}
	}
	assert.Zero(t, leftOfText, "right-aligned text must end at its anchor")
}
