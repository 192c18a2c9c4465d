// Package cdnurl builds delivery URLs for an image CDN from a resource name
// and a map of transformation and delivery options.
//
// The package is pure: it performs no I/O and keeps no mutable state. A
// configured Resource may be shared by any number of goroutines.
//
// # URL Layout
//
// Every URL is assembled from the same parts, joined with "/" and with empty
// parts dropped:
//
//	scheme+host / cloud name / resource type / delivery type / transformations / name
//
// For example:
//
//	http://res.cloudinary.com/demo/image/upload/c_fill,w_200,x_100,y_100/r_10/c_crop,w_100/sample.jpg
//
// # Transformations
//
// Options are compiled into comma-separated parameter segments. Each option
// name is abbreviated ("width" becomes "w", "overlay" becomes "l", "density"
// becomes "dn") and parameters are sorted by their abbreviation, so the map
// iteration order of the input never affects the result.
//
// A nested chain of transformations is supplied through the "transformation"
// option as one of three explicit variants:
//   - Options: one map, compiled into one segment
//   - Chain: several maps, one segment each, empty maps skipped
//   - Named: named transformation tokens, rendered "t_a.b"
//
// ParseTransformation converts loosely typed values, such as those decoded
// from JSON, into one of these variants.
//
// The top-level options always form the last segment.
//
// # Errors
//
// Malformed options fail with an error wrapping ErrInvalidOption; use
// errors.Is to detect it and errors.As with *OptionError to find the key.
package cdnurl
