// Package fonts provides the typefaces used for PNG rendering.
//
// The Go font family is compiled into the binary (golang.org/x/image/font/gofont),
// so rendering never depends on fonts installed on the host. Parsed fonts are
// immutable and shared; faces are cheap, stateful and must be closed by the
// caller once drawing is done.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// DPI is the resolution used to convert point sizes into pixels.
const DPI = 100

// Style selects a weight of the embedded family.
type Style int

const (
	Regular Style = iota
	Bold
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case Bold:
		return "bold"
	default:
		return "regular"
	}
}

// Parsed fonts (computed once on first access).
var (
	parseOnce sync.Once
	parsed    map[Style]*truetype.Font
	parseErr  error
)

func load() (map[Style]*truetype.Font, error) {
	parseOnce.Do(func() {
		regular, err := truetype.Parse(goregular.TTF)
		if err != nil {
			parseErr = fmt.Errorf("parse regular font: %w", err)
			return
		}
		bold, err := truetype.Parse(gobold.TTF)
		if err != nil {
			parseErr = fmt.Errorf("parse bold font: %w", err)
			return
		}
		parsed = map[Style]*truetype.Font{Regular: regular, Bold: bold}
	})
	return parsed, parseErr
}

// Face returns a new face of the given style at size points.
// The caller owns the face and must Close it.
func Face(style Style, points float64) (font.Face, error) {
	fs, err := load()
	if err != nil {
		return nil, err
	}
	f, ok := fs[style]
	if !ok {
		return nil, fmt.Errorf("unknown font style %d", style)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    points,
		DPI:     DPI,
		Hinting: font.HintingFull,
	}), nil
}

// PointsToPixels converts a point size to pixels at DPI.
func PointsToPixels(points float64) float64 {
	return points * DPI / 72
}
