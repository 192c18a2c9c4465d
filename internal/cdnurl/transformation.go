package cdnurl

import (
	"fmt"
	"strings"
)

// Param is one compiled directive, rendered as "key_value".
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (p Param) String() string {
	return p.Key + "_" + p.Value
}

// Segment is one "/"-delimited group of directives, rendered comma-joined.
type Segment []Param

func (s Segment) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",")
}

// Get returns the value of the first parameter with the given abbreviated key.
func (s Segment) Get(key string) (string, bool) {
	for _, p := range s {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Transformation is the value of the "transformation" option. It is
// implemented by Options, Chain and Named.
type Transformation interface {
	// Compile returns the segments of the transformation, without empty ones.
	Compile() ([]Segment, error)
}

// Chain is an ordered sequence of option maps, each compiled into its own
// segment. Empty maps contribute nothing.
type Chain []Options

// Named is a list of named transformations, compiled into a single "t_"
// parameter with the names joined by ".".
type Named []string

// Compile compiles o into at most one segment.
func (o Options) Compile() ([]Segment, error) {
	seg, err := compileSegment(o)
	if err != nil || len(seg) == 0 {
		return nil, err
	}
	return []Segment{seg}, nil
}

func (c Chain) Compile() ([]Segment, error) {
	var segs []Segment
	for i, o := range c {
		if len(o) == 0 {
			continue
		}
		seg, err := compileSegment(o)
		if err != nil {
			return nil, fmt.Errorf("transformation %d: %w", i, err)
		}
		if len(seg) > 0 {
			segs = append(segs, seg)
		}
	}
	return segs, nil
}

func (n Named) Compile() ([]Segment, error) {
	if len(n) == 0 {
		return nil, nil
	}
	return []Segment{{{Key: "t", Value: strings.Join(n, ".")}}}, nil
}

// ParseTransformation converts a loosely typed "transformation" value into
// one of the Transformation variants.
//
// Accepted shapes:
//   - a Transformation (Options, Chain or Named), returned as is
//   - a string or number: a single named transformation
//   - a map: Options
//   - a list whose first element is a map: Chain (every element must be a map)
//   - any other list: Named (every element must be a scalar)
//
// A nil value, an empty string and an empty list yield a nil Transformation.
func ParseTransformation(v any) (Transformation, error) {
	const key = "transformation"

	switch t := v.(type) {
	case nil:
		return nil, nil
	case Transformation:
		return t, nil
	case map[string]any:
		return Options(t), nil
	case []map[string]any:
		chain := make(Chain, len(t))
		for i, m := range t {
			chain[i] = Options(m)
		}
		return chain, nil
	case []Options:
		return Chain(t), nil
	case string:
		if t == "" {
			return nil, nil
		}
		return Named{t}, nil
	}

	items, ok := asList(v)
	if !ok {
		if isMap(v) {
			return nil, invalidOption(key, v, "map keys must be strings")
		}
		s, err := formatScalar(key, v)
		if err != nil {
			return nil, err
		}
		return Named{s}, nil
	}
	if len(items) == 0 {
		return nil, nil
	}

	if isMap(items[0]) {
		chain := make(Chain, 0, len(items))
		for i, item := range items {
			switch m := item.(type) {
			case Options:
				chain = append(chain, m)
			case map[string]any:
				chain = append(chain, Options(m))
			default:
				return nil, invalidOption(key, v, "element %d is %T, want a map like element 0", i, item)
			}
		}
		return chain, nil
	}

	named := make(Named, 0, len(items))
	for i, item := range items {
		s, err := formatScalar(key, item)
		if err != nil {
			return nil, invalidOption(key, v, "element %d: want a transformation name, got %T", i, item)
		}
		named = append(named, s)
	}
	return named, nil
}
