package render

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/coffeetier/pkg/errors"
	"github.com/matzehuels/coffeetier/pkg/fonts"
)

// canvas is a drawing surface owned by a single render call.
type canvas struct {
	dc *gg.Context
}

func newCanvas(w, h int, bg color.Color) *canvas {
	dc := gg.NewContext(w, h)
	dc.SetColor(bg)
	dc.Clear()
	return &canvas{dc: dc}
}

// snapshot returns the pixels drawn so far.
func (c *canvas) snapshot() image.Image {
	return c.dc.Image()
}

// faceSet tracks the font faces opened during one render call.
type faceSet struct {
	faces []font.Face
}

func (s *faceSet) open(style fonts.Style, points float64) (font.Face, error) {
	f, err := fonts.Face(style, points)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "load %s font", style)
	}
	s.faces = append(s.faces, f)
	return f, nil
}

// fit opens a face of the given style no larger than points whose widest
// string fits maxW and whose line height fits maxH.
func (s *faceSet) fit(style fonts.Style, points float64, texts []string, maxW, maxH float64) (font.Face, error) {
	face, err := s.open(style, points)
	if err != nil {
		return nil, err
	}
	ratio := 1.0
	if w := widest(face, texts); w > maxW && w > 0 {
		ratio = maxW / w
	}
	if h := lineHeight(face); h > maxH && h > 0 {
		ratio = math.Min(ratio, maxH/h)
	}
	if ratio >= 1 {
		return face, nil
	}
	return s.open(style, math.Max(minFontSize, points*ratio))
}

// Close releases every face in the set.
func (s *faceSet) Close() error {
	var first error
	for _, f := range s.faces {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	s.faces = nil
	return first
}

func textWidth(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

func widest(face font.Face, texts []string) float64 {
	var w float64
	for _, t := range texts {
		w = math.Max(w, textWidth(face, t))
	}
	return w
}

func lineHeight(face font.Face) float64 {
	return float64(face.Metrics().Height) / 64
}

// rect is a region of the canvas in pixels.
type rect struct {
	x, y, w, h float64
}

// table is one labelled list.
type table struct {
	label  string
	rows   []string
	header color.Color
}

// drawTable draws t into r: a header cell on the header colour followed by
// one cell per row, all of equal height, with default cell borders and
// centred text.
func drawTable(dc *gg.Context, r rect, t table, face font.Face, cfg config) {
	n := len(t.rows) + 1
	rowH := r.h / float64(n)
	dc.SetFontFace(face)
	dc.SetLineWidth(1)

	for i := 0; i < n; i++ {
		y := r.y + float64(i)*rowH
		fill, text := cfg.background, ""
		if i == 0 {
			fill, text = t.header, t.label
		} else {
			text = t.rows[i-1]
		}

		dc.DrawRectangle(r.x, y, r.w, rowH)
		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetColor(cfg.border)
		dc.Stroke()

		dc.SetColor(cfg.ink)
		dc.DrawStringAnchored(text, r.x+r.w/2, y+rowH/2, 0.5, 0.5)
	}
}

// crop trims img to the pixels that differ from bg, plus padding on every
// side. An image with no content is returned unchanged.
func crop(img image.Image, bg color.Color, padding int) image.Image {
	content := contentBounds(img, bg)
	if content.Empty() {
		return img
	}
	return imaging.Crop(img, content.Inset(-padding).Intersect(img.Bounds()))
}

func contentBounds(img image.Image, bg color.Color) image.Rectangle {
	want := color.RGBAModel.Convert(bg).(color.RGBA)
	at := func(x, y int) color.RGBA {
		return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		at = rgba.RGBAAt
	}

	b := img.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if at(x, y) == want {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < minX || maxY < minY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// encode writes img as PNG into a fresh in-memory reader at offset 0.
func encode(img image.Image) (*bytes.Reader, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode png")
	}
	return bytes.NewReader(buf.Bytes()), nil
}
