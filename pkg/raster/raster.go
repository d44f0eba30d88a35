// Package raster draws a carousel into an image.
//
// [Surface] is a render surface that remembers where the controller placed
// each item and can paint the current frame with item boxes and text labels
// in a fixed-width bitmap font. It is used for PNG previews and for tests
// that want to look at a layout rather than read numbers.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/geometry"
	"github.com/go-drift/carousel/pkg/registry"
)

// Palette colors a rendered frame.
type Palette struct {
	Background color.Color
	Item       color.Color
	Selected   color.Color
	Border     color.Color
	Label      color.Color
}

// DefaultPalette is a light theme.
var DefaultPalette = Palette{
	Background: color.RGBA{0xf4, 0xf4, 0xf5, 0xff},
	Item:       color.RGBA{0xd4, 0xd4, 0xd8, 0xff},
	Selected:   color.RGBA{0x60, 0xa5, 0xfa, 0xff},
	Border:     color.RGBA{0x3f, 0x3f, 0x46, 0xff},
	Label:      color.RGBA{0x18, 0x18, 0x1b, 0xff},
}

// Face is the font used for labels.
var Face font.Face = basicfont.Face7x13

// Surface is a carousel render surface that paints into an image.
type Surface struct {
	*animation.Surface

	// Palette colors frames. The zero value uses DefaultPalette.
	Palette Palette
	// Label returns the text drawn inside item. Nil prints Content.
	Label func(item *registry.Item) string
}

// NewSurface creates a raster surface reading time from clk. Nil uses the
// animation package clock.
func NewSurface(clk animation.Clock) *Surface {
	return &Surface{Surface: animation.NewSurface(clk)}
}

// MeasureLabel returns the advance width of s in the label font.
func MeasureLabel(s string) float64 {
	return fixedToFloat(font.MeasureString(Face, s))
}

// Render paints items as currently drawn into a width by height image.
// selected is highlighted; pass nil for none.
func (s *Surface) Render(items []*registry.Item, selected *registry.Item, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster: invalid image size %dx%d", width, height)
	}
	pal := s.palette()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(pal.Background), image.Point{}, draw.Src)

	for _, item := range items {
		frame := toRect(s.Frame(item))
		if !frame.Overlaps(img.Bounds()) {
			continue
		}
		fill := pal.Item
		if item == selected {
			fill = pal.Selected
		}
		alpha := s.Opacity(item)
		draw.DrawMask(img, frame, image.NewUniform(fill), image.Point{}, opacityMask(alpha), image.Point{}, draw.Over)
		strokeRect(img, frame, fadeColor(pal.Border, alpha))
		s.drawLabel(img, frame, s.label(item), fadeColor(pal.Label, alpha))
	}
	return img, nil
}

// WritePNG renders a frame and encodes it as PNG to w.
func (s *Surface) WritePNG(w io.Writer, items []*registry.Item, selected *registry.Item, width, height int) error {
	img, err := s.Render(items, selected, width, height)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	return nil
}

func (s *Surface) palette() Palette {
	if s.Palette == (Palette{}) {
		return DefaultPalette
	}
	return s.Palette
}

func (s *Surface) label(item *registry.Item) string {
	if s.Label != nil {
		return s.Label(item)
	}
	if item.Content == nil {
		return ""
	}
	return fmt.Sprint(item.Content)
}

func (s *Surface) drawLabel(img *image.RGBA, frame image.Rectangle, text string, c color.Color) {
	if text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: Face,
	}
	advance := d.MeasureString(text)
	metrics := Face.Metrics()
	x := fixed.I(frame.Min.X+frame.Dx()/2) - advance/2
	y := fixed.I(frame.Min.Y+frame.Dy()/2) + (metrics.Ascent-metrics.Descent)/2
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(text)
}

func toRect(r geometry.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.Left)), int(math.Round(r.Top)),
		int(math.Round(r.Right)), int(math.Round(r.Bottom)),
	)
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(img, e, src, image.Point{}, draw.Over)
	}
}

func opacityMask(alpha float64) image.Image {
	return image.NewUniform(color.Alpha{A: uint8(math.Round(clamp01(alpha) * 0xff))})
}

func fadeColor(c color.Color, alpha float64) color.Color {
	r, g, b, a := c.RGBA()
	k := clamp01(alpha)
	return color.RGBA64{
		R: uint16(float64(r) * k),
		G: uint16(float64(g) * k),
		B: uint16(float64(b) * k),
		A: uint16(float64(a) * k),
	}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
