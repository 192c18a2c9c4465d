package preview

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// defaultBackground fills padding and rotated corners when no b_ is given.
var defaultBackground color.Color = color.White

// parseBackground reads the value of a b_ parameter: "rgb:RRGGBB",
// "rgb:RGB", or a CSS colour name such as "red".
func parseBackground(value string) (color.Color, error) {
	if hex, ok := strings.CutPrefix(value, "rgb:"); ok {
		c, err := colorful.Hex("#" + hex)
		if err != nil {
			return nil, fmt.Errorf("invalid background %q: %w", value, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
	}

	if c, ok := colornames.Map[strings.ToLower(value)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown background colour %q", value)
}
