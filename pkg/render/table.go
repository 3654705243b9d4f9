package render

import (
	"bytes"
	"image"
	"math"

	"github.com/matzehuels/coffeetier/pkg/fonts"
)

// Table renders rows as a standalone one-column table with a single header
// cell labelled label on a colorSpec background.
//
// Text is set at the configured font size (14pt by default) and cells are
// scaled by the configured factor on both axes (2x by default). Rows are drawn
// as given, one per cell; an empty slice yields a header-only table. The
// result is cropped to the table plus padding.
//
// The only failures are an unparseable colour spec and encoder errors.
func Table(rows []string, label, colorSpec string, opts ...Option) (*bytes.Reader, error) {
	cfg := newConfig(opts)
	img, err := drawStandalone(rows, label, colorSpec, cfg)
	if err != nil {
		return nil, err
	}
	return encode(crop(img, cfg.background, cfg.padding))
}

func drawStandalone(rows []string, label, colorSpec string, cfg config) (image.Image, error) {
	header, err := ParseColor(colorSpec)
	if err != nil {
		return nil, err
	}

	var faces faceSet
	defer faces.Close()

	face, err := faces.open(fonts.Regular, cfg.fontSize)
	if err != nil {
		return nil, err
	}

	lh := lineHeight(face)
	texts := append([]string{label}, rows...)
	cellW := (widest(face, texts) + lh) * cfg.scale
	rowH := lh * 1.5 * cfg.scale
	tableH := rowH * float64(len(rows)+1)

	m := cfg.margin()
	cv := newCanvas(int(math.Ceil(cellW))+2*m, int(math.Ceil(tableH))+2*m, cfg.background)

	region := rect{x: float64(m), y: float64(m), w: cellW, h: tableH}
	drawTable(cv.dc, region, table{label: label, rows: rows, header: header}, face, cfg)
	return cv.snapshot(), nil
}
