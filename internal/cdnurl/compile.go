package cdnurl

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// abbreviations maps option names whose code is not simply their first
// letter.
var abbreviations = map[string]string{
	"overlay": "l",
	"density": "dn",
	"page":    "pg",
}

// ignoredKeys control URL assembly and never appear as parameters.
var ignoredKeys = map[string]bool{
	"type":                true,
	"resource_type":       true,
	"cloud_name":          true,
	"secure":              true,
	"secure_distribution": true,
	"private_cdn":         true,
	"format":              true,
	"transformation":      true,
	"size":                true,
	"cname":               true,
}

// Abbreviate returns the URL code for an option name.
func Abbreviate(name string) string {
	if code, ok := abbreviations[name]; ok {
		return code
	}
	if utf8.RuneCountInString(name) > 1 {
		_, n := utf8.DecodeRuneInString(name)
		return name[:n]
	}
	return name
}

// CompileOptions compiles a single option map into one comma-joined
// segment. The "transformation" key is ignored; see CompileSegments.
func CompileOptions(opts Options) (string, error) {
	seg, err := compileSegment(opts)
	if err != nil {
		return "", err
	}
	return seg.String(), nil
}

// CompileSegments compiles opts into the full transformation path: the
// segments of the "transformation" option first, then the segment built from
// the remaining top-level options.
func CompileSegments(opts Options) (string, error) {
	segs, err := Segments(opts)
	if err != nil {
		return "", err
	}
	return JoinSegments(segs), nil
}

// Segments is the structured form of CompileSegments.
func Segments(opts Options) ([]Segment, error) {
	if len(opts) == 0 {
		return nil, nil
	}

	var segs []Segment

	if opts.has("transformation") {
		t, err := ParseTransformation(opts["transformation"])
		if err != nil {
			return nil, err
		}
		if t != nil {
			nested, err := t.Compile()
			if err != nil {
				return nil, err
			}
			segs = append(segs, nested...)
		}
	}

	base, err := compileSegment(opts)
	if err != nil {
		return nil, err
	}
	if len(base) > 0 {
		segs = append(segs, base)
	}
	return segs, nil
}

// JoinSegments renders segments "/"-joined, dropping empty ones.
func JoinSegments(segs []Segment) string {
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		if str := s.String(); str != "" {
			parts = append(parts, str)
		}
	}
	return strings.Join(parts, "/")
}

// compileSegment turns one option map into a sorted parameter list.
func compileSegment(opts Options) (Segment, error) {
	if len(opts) == 0 {
		return nil, nil
	}

	// Bare width and height have no visual effect without one of these.
	positioned := opts.has("crop") || opts.has("overlay") || opts.has("underlay")

	values := make(map[string]any, len(opts))
	for k, v := range opts {
		values[k] = v
	}

	if opts.has("size") {
		size, err := formatScalar("size", opts["size"])
		if err != nil {
			return nil, err
		}
		dims := strings.Split(size, "x")
		if len(dims) < 2 {
			return nil, invalidOption("size", opts["size"], "want WIDTHxHEIGHT")
		}
		values["width"], values["height"] = dims[0], dims[1]
	}

	seg := make(Segment, 0, len(values))
	for name, v := range values {
		if v == nil || ignoredKeys[name] {
			continue
		}
		if name == "" {
			return nil, invalidOption(name, v, "empty option name")
		}

		value, err := renderValue(name, v)
		if err != nil {
			return nil, err
		}

		key := Abbreviate(name)
		if (key == "w" || key == "h") && !positioned {
			continue
		}
		seg = append(seg, Param{Key: key, Value: value})
	}

	sort.Slice(seg, func(i, j int) bool {
		if seg[i].Key != seg[j].Key {
			return seg[i].Key < seg[j].Key
		}
		return seg[i].Value < seg[j].Value
	})
	return seg, nil
}

// renderValue applies the per-option value rewrites.
func renderValue(name string, v any) (string, error) {
	if items, ok := asList(v); ok {
		if name != "effect" {
			return "", invalidOption(name, v, "a list is only accepted for effect")
		}
		parts := make([]string, len(items))
		for i, item := range items {
			s, err := formatScalar(name, item)
			if err != nil {
				return "", fmt.Errorf("effect element %d: %w", i, err)
			}
			parts[i] = s
		}
		return strings.Join(parts, ":"), nil
	}

	s, err := formatScalar(name, v)
	if err != nil {
		return "", err
	}
	if name == "background" && strings.HasPrefix(s, "#") {
		s = "rgb:" + s[1:]
	}
	return s, nil
}
