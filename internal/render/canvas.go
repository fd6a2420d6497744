package render

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

const glowPasses = 3

// Surface executes draw commands on a gg context.
type Surface struct {
	dc    *gg.Context
	fonts map[FontWeight]*truetype.Font
	faces map[FontSpec]font.Face
}

// NewSurface starts a surface with a copy of background as its first layer.
func NewSurface(background image.Image) (*Surface, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	medium, err := truetype.Parse(gomedium.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse medium font: %w", err)
	}

	size := background.Bounds().Size()
	dc := gg.NewContext(size.X, size.Y)
	dc.DrawImage(background, 0, 0)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	return &Surface{
		dc:    dc,
		fonts: map[FontWeight]*truetype.Font{Regular: regular, Medium: medium},
		faces: make(map[FontSpec]font.Face),
	}, nil
}

func (s *Surface) face(f FontSpec) font.Face {
	if face, ok := s.faces[f]; ok {
		return face
	}
	face := truetype.NewFace(s.fonts[f.Weight], &truetype.Options{Size: f.Size})
	s.faces[f] = face
	return face
}

// MeasureString implements Measurer.
func (s *Surface) MeasureString(text string, f FontSpec) (float64, float64) {
	s.dc.SetFontFace(s.face(f))
	return s.dc.MeasureString(text)
}

// Execute runs cmds in order.
func (s *Surface) Execute(cmds []Command) {
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case StrokeSegment:
			s.strokeSegment(c)
		case StrokeLine:
			s.dc.SetColor(c.Color)
			s.dc.SetLineWidth(c.Width)
			s.dc.DrawLine(c.From.X, c.From.Y, c.To.X, c.To.Y)
			s.dc.Stroke()
		case FillGradientBand:
			grad := gg.NewLinearGradient(0, c.Y0, 0, c.Y1)
			grad.AddColorStop(0, c.From)
			grad.AddColorStop(1, c.To)
			s.dc.SetFillStyle(grad)
			s.dc.DrawRectangle(0, c.Y0, c.Width, c.Y1-c.Y0)
			s.dc.Fill()
		case FillText:
			s.dc.SetFontFace(s.face(c.Font))
			s.dc.SetColor(c.Color)
			s.dc.DrawStringAnchored(c.Text, c.X, c.Y, c.AnchorX, 0)
		case DrawImage:
			s.dc.DrawImage(c.Image, c.X, c.Y)
		}
	}
}

// strokeSegment approximates a blurred shadow with a few translucent strokes
// of decreasing width under the segment itself.
func (s *Surface) strokeSegment(c StrokeSegment) {
	if c.Glow.Radius > 0 && c.Glow.Color.A > 0 {
		g := c.Glow.Color
		g.A = uint8(int(g.A) / glowPasses)
		s.dc.SetColor(g)
		for pass := glowPasses; pass >= 1; pass-- {
			s.dc.SetLineWidth(c.Width + 2*c.Glow.Radius*float64(pass)/glowPasses)
			s.dc.DrawLine(c.From.X+c.Glow.OffsetX, c.From.Y+c.Glow.OffsetY, c.To.X+c.Glow.OffsetX, c.To.Y+c.Glow.OffsetY)
			s.dc.Stroke()
		}
	}
	s.dc.SetColor(c.Color)
	s.dc.SetLineWidth(c.Width)
	s.dc.DrawLine(c.From.X, c.From.Y, c.To.X, c.To.Y)
	s.dc.Stroke()
}

// Image returns the rendered canvas.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}
