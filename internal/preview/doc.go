// Package preview renders an offline approximation of a compiled CDN
// transformation on a local image.
//
// The renderer consumes the segments produced by cdnurl.Segments and applies
// them in order, one segment per step, the way the CDN chains them. Only the
// directives that can be reproduced without the CDN are applied:
//
//   - c (crop mode) with w and h: scale, fit, limit, fill, thumb, crop, pad
//   - g (gravity): center and the eight compass directions
//   - x, y: the crop origin for c_crop
//   - a (angle): degrees clockwise, hflip, vflip
//   - e (effect): sepia, grayscale, negate, blur, sharpen, brightness,
//     contrast, saturation, hue, emboss, edge
//   - b (background): rgb:RRGGBB, rgb:RGB or a CSS colour name
//   - q (quality) and f (format) for the encoded output
//
// Everything else (overlays, radius, named transformations, ...) is reported
// in Result.Skipped instead of failing, so a preview never blocks on a
// directive it cannot imitate.
//
// Widths and heights written with a decimal point and at most 1.0 are
// relative to the current image size, so w_0.5 halves the width.
//
// # Thread Safety
//
// Render and Apply are stateless. ImageCache is safe for concurrent use.
package preview
