package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/pkg/errors"
)

var (
	Green       = color.RGBA{R: 0, G: 255, B: 0, A: 255} // #00FF00
	Red         = color.RGBA{R: 255, G: 0, B: 0, A: 255} // #FF0000
	Blue        = color.RGBA{R: 0, G: 0, B: 255, A: 255} // #0000FF
	Transparent = color.RGBA{R: 0, G: 0, B: 0, A: 0}
)

// ParseHex parses a CSS style hex color in the form #RRGGBB or #RRGGBBAA
func ParseHex(s string) (color.RGBA, error) {

	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	c := color.RGBA{A: 255}

	var err error

	switch len(s) {
	case 6:
		_, err = fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		return c, errors.Errorf("invalid hex color %q", s)
	}

	if err != nil {
		return c, errors.Wrapf(err, "invalid hex color %q", s)
	}

	return c, nil
}

// Hex returns the color in #RRGGBB form, with alpha appended when not opaque
func Hex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
