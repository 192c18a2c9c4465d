package preview

import (
	"fmt"

	"github.com/ironsheep/imgcdn-mcp/internal/cdnurl"
)

// File compiles opts the same way cdnurl does for a URL and applies the
// result to the image at path.
//
// The output format starts as the "format" option when set (the extension
// the CDN would deliver), else the source file's own format; an f_ parameter
// in any segment overrides it.
func File(cache *ImageCache, path string, opts cdnurl.Options) (*Output, error) {
	segs, err := cdnurl.Segments(opts)
	if err != nil {
		return nil, err
	}

	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	format := FormatFromPath(path)
	if v, ok := opts["format"].(string); ok {
		f, known := normalizeFormat(v)
		if !known {
			return nil, fmt.Errorf("unsupported preview format %q", v)
		}
		format = f
	}

	return Apply(img, segs, format), nil
}
