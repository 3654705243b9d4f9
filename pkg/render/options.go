package render

import (
	"image/color"
)

// Defaults mirror a 15x10 inch figure at 100 DPI.
const (
	DefaultScale     = 2.0
	DefaultPadding   = 10
	DefaultFontSize  = 14.0
	DefaultTitleSize = 20.0
	DefaultWidth     = 1500
	DefaultHeight    = 1000

	minFontSize = 6.0
)

// Option configures rendering.
type Option func(*config)

type config struct {
	scale     float64
	padding   int
	fontSize  float64
	titleSize float64
	width     int
	height    int

	background color.Color
	ink        color.Color
	border     color.Color
}

func newConfig(opts []Option) config {
	cfg := config{
		scale:      DefaultScale,
		padding:    DefaultPadding,
		fontSize:   DefaultFontSize,
		titleSize:  DefaultTitleSize,
		width:      DefaultWidth,
		height:     DefaultHeight,
		background: color.White,
		ink:        color.Black,
		border:     color.Black,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// margin is the blank border around the drawing, wide enough that cropping
// with padding never runs off the canvas.
func (c config) margin() int {
	return c.padding + 4
}

// WithScale sets the cell scale factor of standalone tables (default 2.0).
func WithScale(s float64) Option {
	return func(c *config) {
		if s > 0 {
			c.scale = s
		}
	}
}

// WithPadding sets the padding kept around the content when cropping.
func WithPadding(px int) Option {
	return func(c *config) {
		if px >= 0 {
			c.padding = px
		}
	}
}

// WithFontSize sets the table font size in points (default 14).
func WithFontSize(pt float64) Option {
	return func(c *config) {
		if pt > 0 {
			c.fontSize = pt
		}
	}
}

// WithGridSize sets the composite grid area in pixels, excluding the title.
func WithGridSize(w, h int) Option {
	return func(c *config) {
		if w > 0 && h > 0 {
			c.width, c.height = w, h
		}
	}
}
