package render

import (
	"bytes"
	"image"
	"math"

	"github.com/matzehuels/coffeetier/pkg/fonts"
	"github.com/matzehuels/coffeetier/pkg/tier"
)

// Composite renders the full report for sub: a centred bold title above a
// 2x3 grid holding one table per category.
//
// Composite does not validate sub. Categories without entries leave their
// grid slot blank; callers that require every category gate on
// [tier.Submission.Validate] first.
func Composite(sub tier.Submission, opts ...Option) (*bytes.Reader, error) {
	cfg := newConfig(opts)
	rep, err := compose(sub, cfg)
	if err != nil {
		return nil, err
	}
	return encode(crop(rep.img, cfg.background, cfg.padding))
}

// report is an uncropped composite and where each grid slot landed.
type report struct {
	img   image.Image
	title rect
	cells map[tier.Category]rect
	drawn map[tier.Category]bool
}

func compose(sub tier.Submission, cfg config) (*report, error) {
	var faces faceSet
	defer faces.Close()

	gridW, gridH := float64(cfg.width), float64(cfg.height)
	title := sub.Title()
	titleFace, err := faces.fit(fonts.Bold, cfg.titleSize, []string{title}, gridW, math.Inf(1))
	if err != nil {
		return nil, err
	}
	titleBand := math.Ceil(lineHeight(titleFace) * 2)

	m := cfg.margin()
	cv := newCanvas(cfg.width+2*m, int(titleBand)+cfg.height+2*m, cfg.background)
	dc := cv.dc

	rep := &report{
		title: rect{x: float64(m), y: float64(m), w: gridW, h: titleBand},
		cells: make(map[tier.Category]rect, len(tier.Tiers)),
		drawn: make(map[tier.Category]bool, len(tier.Tiers)),
	}

	dc.SetFontFace(titleFace)
	dc.SetColor(mustColor(tier.TitleColor))
	dc.DrawStringAnchored(title, rep.title.x+gridW/2, rep.title.y+titleBand/2, 0.5, 0.5)

	cellW, cellH := gridW/tier.GridCols, gridH/tier.GridRows
	for _, t := range tier.Tiers {
		r := rect{
			x: float64(m) + float64(t.Col)*cellW,
			y: float64(m) + titleBand + float64(t.Row)*cellH,
			w: cellW,
			h: cellH,
		}
		rep.cells[t.Category] = r

		rows := sub.Entries(t.Category)
		if len(rows) == 0 {
			continue
		}

		header, err := ParseColor(t.Color)
		if err != nil {
			return nil, err
		}
		label := t.Category.Label()
		rowH := r.h / float64(len(rows)+1)
		inset := fonts.PointsToPixels(cfg.fontSize) / 2
		face, err := faces.fit(fonts.Regular, cfg.fontSize, append([]string{label}, rows...), r.w-2*inset, rowH*0.8)
		if err != nil {
			return nil, err
		}

		drawTable(dc, r, table{label: label, rows: rows, header: header}, face, cfg)
		rep.drawn[t.Category] = true
	}

	rep.img = cv.snapshot()
	return rep, nil
}
