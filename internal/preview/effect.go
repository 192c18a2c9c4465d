package preview

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// effectFunc applies one e_ effect. level is the optional ":n" argument and
// has is false when it was omitted.
type effectFunc func(img image.Image, level float64, has bool) image.Image

var effects = map[string]effectFunc{
	"sepia": func(img image.Image, _ float64, _ bool) image.Image {
		return effect.Sepia(img)
	},
	"grayscale": func(img image.Image, _ float64, _ bool) image.Image {
		return effect.Grayscale(img)
	},
	"negate": func(img image.Image, _ float64, _ bool) image.Image {
		return effect.Invert(img)
	},
	"sharpen": func(img image.Image, _ float64, _ bool) image.Image {
		return effect.Sharpen(img)
	},
	"emboss": func(img image.Image, _ float64, _ bool) image.Image {
		return effect.Emboss(img)
	},
	"edge": func(img image.Image, _ float64, _ bool) image.Image {
		return effect.EdgeDetection(img, 1)
	},
	// The CDN blur strength runs 1..2000 with 100 as default; 50 per pixel
	// of radius keeps the default visibly soft.
	"blur": func(img image.Image, level float64, has bool) image.Image {
		if !has {
			level = 100
		}
		return blur.Gaussian(img, level/50)
	},
	"brightness": func(img image.Image, level float64, has bool) image.Image {
		if !has {
			level = 80
		}
		return adjust.Brightness(img, level/100)
	},
	"contrast": func(img image.Image, level float64, has bool) image.Image {
		if !has {
			level = 50
		}
		return adjust.Contrast(img, level/100)
	},
	"saturation": func(img image.Image, level float64, has bool) image.Image {
		if !has {
			level = 80
		}
		return adjust.Saturation(img, level/100)
	},
	"hue": func(img image.Image, level float64, has bool) image.Image {
		if !has {
			level = 80
		}
		return adjust.Hue(img, int(level))
	},
}

// levelRanges holds the level bounds the CDN accepts; levels outside are
// clamped.
var levelRanges = map[string][2]float64{
	"blur":       {1, 2000},
	"brightness": {-99, 100},
	"contrast":   {-100, 100},
	"saturation": {-100, 100},
	"hue":        {-100, 100},
}

// applyEffect parses "name[:level]" and runs the matching effect.
func applyEffect(img image.Image, value string) (image.Image, error) {
	name, arg, has := strings.Cut(value, ":")

	fn, ok := effects[name]
	if !ok {
		return nil, fmt.Errorf("unsupported effect %q", name)
	}

	var level float64
	if has {
		var err error
		level, err = strconv.ParseFloat(arg, 64)
		if err != nil || math.IsNaN(level) || math.IsInf(level, 0) {
			return nil, fmt.Errorf("effect %s: invalid level %q", name, arg)
		}
		if r, ok := levelRanges[name]; ok {
			level = min(max(level, r[0]), r[1])
		}
	}
	return fn(img, level, has), nil
}
