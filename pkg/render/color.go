package render

import (
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/coffeetier/pkg/errors"
)

// ParseColor parses a hex colour ("#RGB", "#RGBA", "#RRGGBB", "#RRGGBBAA")
// or an SVG/CSS colour name such as "thistle" or "skyblue". Names are
// matched case-insensitively.
func ParseColor(spec string) (color.Color, error) {
	if err := errors.ValidateColorSpec(spec); err != nil {
		return nil, err
	}
	s := strings.ToLower(strings.TrimSpace(spec))
	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[s]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidColor, "unknown colour %q", spec)
		}
		return c, nil
	}

	hex, alpha := s, "ff"
	switch len(s) {
	case 5:
		hex, alpha = s[:4], strings.Repeat(s[4:], 2)
	case 9:
		hex, alpha = s[:7], s[7:]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse colour %q", spec)
	}
	a, err := strconv.ParseUint(alpha, 16, 8)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse alpha of %q", spec)
	}
	if a == 0xff {
		return c, nil
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
}

// mustColor is for the fixed colours of the tier table, which are known-good.
func mustColor(spec string) color.Color {
	c, err := ParseColor(spec)
	if err != nil {
		panic(err)
	}
	return c
}
