package preview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/imgcdn-mcp/internal/cdnurl"
)

// Output is an applied transformation before encoding.
type Output struct {
	// Image is the transformed image.
	Image *image.NRGBA

	// Format is the output format: "png", "jpg" or "gif".
	Format string

	// Quality is the JPEG quality, 1..100.
	Quality int

	// Applied lists the reproduced parameters as "key_value".
	Applied []string

	// Skipped lists the parameters that were not reproduced, as
	// "key_value: reason".
	Skipped []string
}

// Result is an encoded preview.
type Result struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Format      string   `json:"format"`
	Applied     []string `json:"applied"`
	Skipped     []string `json:"skipped"`
	ImageBase64 string   `json:"image_base64,omitempty"`
	MimeType    string   `json:"mime_type"`
	OutputPath  string   `json:"output_path,omitempty"`
}

const (
	// DefaultQuality is used for JPEG output without q_.
	DefaultQuality = 90

	// MaxDimension bounds each side of an intermediate or final image.
	// Larger requests are skipped.
	MaxDimension = 10000
)

// gravities maps g_ values onto imaging anchors.
var gravities = map[string]imaging.Anchor{
	"center":     imaging.Center,
	"north":      imaging.Top,
	"south":      imaging.Bottom,
	"east":       imaging.Right,
	"west":       imaging.Left,
	"north_east": imaging.TopRight,
	"north_west": imaging.TopLeft,
	"south_east": imaging.BottomRight,
	"south_west": imaging.BottomLeft,
}

// Apply runs segs over img in order. format is the initial output format,
// used unless a segment carries f_. Parameters that cannot be reproduced are
// recorded in Output.Skipped.
func Apply(img image.Image, segs []cdnurl.Segment, format string) *Output {
	if format == "" {
		format = "png"
	}
	out := &Output{
		Image:   imaging.Clone(img),
		Format:  format,
		Quality: DefaultQuality,
	}

	for _, seg := range segs {
		out.applySegment(seg)
	}
	return out
}

// Render applies segs and encodes the result.
func Render(img image.Image, segs []cdnurl.Segment, format string) (*Result, error) {
	return Apply(img, segs, format).Result()
}

// Result encodes o.
func (o *Output) Result() (*Result, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, o.Image, o.Format, o.Quality); err != nil {
		return nil, err
	}

	bounds := o.Image.Bounds()
	return &Result{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Format:      o.Format,
		Applied:     o.Applied,
		Skipped:     o.Skipped,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    MimeType(o.Format),
	}, nil
}

// step holds one segment's parameters while it is applied.
type step struct {
	params map[string]cdnurl.Param
	used   map[string]bool
}

func (s *step) get(key string) (string, bool) {
	p, ok := s.params[key]
	return p.Value, ok
}

func (o *Output) applySegment(seg cdnurl.Segment) {
	st := &step{
		params: make(map[string]cdnurl.Param, len(seg)),
		used:   make(map[string]bool, len(seg)),
	}
	for _, p := range seg {
		if _, dup := st.params[p.Key]; dup {
			o.skip(p, "repeated parameter")
			continue
		}
		st.params[p.Key] = p
	}

	bg := defaultBackground
	if v, ok := st.get("b"); ok {
		c, err := parseBackground(v)
		if err != nil {
			o.skipKey(st, "b", err.Error())
		} else {
			bg = c
			o.apply(st, "b")
		}
	}

	anchor := imaging.Center
	if v, ok := st.get("g"); ok {
		if a, known := gravities[v]; known {
			anchor = a
			o.apply(st, "g")
		} else {
			o.skipKey(st, "g", "unsupported gravity")
		}
	}

	if _, ok := st.get("c"); ok {
		if err := o.crop(st, anchor, bg); err != nil {
			o.skipKey(st, "c", err.Error())
		}
	}

	if v, ok := st.get("a"); ok {
		if err := o.rotate(v, bg); err != nil {
			o.skipKey(st, "a", err.Error())
		} else {
			o.apply(st, "a")
		}
	}

	if v, ok := st.get("e"); ok {
		img, err := applyEffect(o.Image, v)
		if err != nil {
			o.skipKey(st, "e", err.Error())
		} else {
			o.Image = imaging.Clone(img)
			o.apply(st, "e")
		}
	}

	if v, ok := st.get("q"); ok {
		q, err := strconv.Atoi(v)
		if err != nil || q < 1 || q > 100 {
			o.skipKey(st, "q", "quality must be an integer 1..100")
		} else {
			o.Quality = q
			o.apply(st, "q")
		}
	}

	if v, ok := st.get("f"); ok {
		if f, known := normalizeFormat(v); known {
			o.Format = f
			o.apply(st, "f")
		} else {
			o.skipKey(st, "f", "unsupported format")
		}
	}

	for _, p := range seg {
		if !st.used[p.Key] {
			st.used[p.Key] = true
			o.skip(p, "not reproduced offline")
		}
	}
}

// crop applies the c_ mode together with w, h, x and y.
func (o *Output) crop(st *step, anchor imaging.Anchor, bg color.Color) error {
	mode, _ := st.get("c")
	cur := o.Image.Bounds()

	w, hasW, err := dimension(st, "w", cur.Dx())
	if err != nil {
		return err
	}
	h, hasH, err := dimension(st, "h", cur.Dy())
	if err != nil {
		return err
	}
	if !hasW && !hasH {
		return fmt.Errorf("crop mode without width or height")
	}

	// A missing side keeps the aspect ratio for the modes that need both.
	fw, fh := float64(w), float64(h)
	if !hasW {
		fw = math.Round(float64(cur.Dx()) * fh / float64(cur.Dy()))
	}
	if !hasH {
		fh = math.Round(float64(cur.Dy()) * fw / float64(cur.Dx()))
	}
	if fw > MaxDimension || fh > MaxDimension {
		return fmt.Errorf("output of %.0fx%.0f exceeds %d pixels a side", fw, fh, MaxDimension)
	}
	fullW, fullH := max(int(fw), 1), max(int(fh), 1)

	switch mode {
	case "scale":
		o.Image = imaging.Resize(o.Image, w, h, imaging.Lanczos)
	case "fit":
		o.Image = imaging.Fit(o.Image, fullW, fullH, imaging.Lanczos)
	case "limit":
		if cur.Dx() > fullW || cur.Dy() > fullH {
			o.Image = imaging.Fit(o.Image, fullW, fullH, imaging.Lanczos)
		}
	case "fill", "thumb":
		o.Image = imaging.Fill(o.Image, fullW, fullH, anchor, imaging.Lanczos)
	case "crop":
		if !hasW {
			w = cur.Dx()
		}
		if !hasH {
			h = cur.Dy()
		}
		if err := o.cropBox(st, w, h, anchor); err != nil {
			return err
		}
	case "pad":
		fitted := imaging.Fit(o.Image, fullW, fullH, imaging.Lanczos)
		canvas := imaging.New(fullW, fullH, bg)
		o.Image = imaging.PasteCenter(canvas, fitted)
	default:
		return fmt.Errorf("unsupported crop mode")
	}

	o.apply(st, "c", "w", "h")
	return nil
}

// cropBox cuts a w*h box at x,y when either is given, else at the anchor.
func (o *Output) cropBox(st *step, w, h int, anchor imaging.Anchor) error {
	xs, hasX := st.get("x")
	ys, hasY := st.get("y")
	if !hasX && !hasY {
		o.Image = imaging.CropAnchor(o.Image, w, h, anchor)
		return nil
	}

	var x, y int
	var err error
	if hasX {
		if x, err = strconv.Atoi(xs); err != nil {
			return fmt.Errorf("invalid x %q", xs)
		}
	}
	if hasY {
		if y, err = strconv.Atoi(ys); err != nil {
			return fmt.Errorf("invalid y %q", ys)
		}
	}

	box := image.Rect(x, y, x+w, y+h).Intersect(o.Image.Bounds())
	if box.Empty() {
		return fmt.Errorf("crop box at (%d,%d) is outside the image", x, y)
	}
	o.Image = imaging.Crop(o.Image, box)
	o.apply(st, "x", "y")
	return nil
}

// rotate handles numeric angles and the hflip and vflip modes, which can be
// combined with ".".
func (o *Output) rotate(value string, bg color.Color) error {
	if deg, err := strconv.ParseFloat(value, 64); err == nil {
		if math.IsNaN(deg) || math.IsInf(deg, 0) {
			return fmt.Errorf("invalid angle %q", value)
		}
		deg = math.Mod(deg, 360)

		w, h := rotatedSize(o.Image.Bounds(), deg)
		if w > MaxDimension || h > MaxDimension {
			return fmt.Errorf("rotated size %.0fx%.0f exceeds %d pixels a side", w, h, MaxDimension)
		}
		// imaging rotates counter-clockwise.
		o.Image = imaging.Rotate(o.Image, -deg, bg)
		return nil
	}

	modes := strings.Split(value, ".")
	for _, mode := range modes {
		if mode != "hflip" && mode != "vflip" {
			return fmt.Errorf("unsupported angle %q", mode)
		}
	}
	for _, mode := range modes {
		if mode == "hflip" {
			o.Image = imaging.FlipH(o.Image)
		} else {
			o.Image = imaging.FlipV(o.Image)
		}
	}
	return nil
}

// rotatedSize is the bounding box of b turned by deg degrees.
func rotatedSize(b image.Rectangle, deg float64) (float64, float64) {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	sin, cos = math.Abs(sin), math.Abs(cos)
	w, h := float64(b.Dx()), float64(b.Dy())
	return math.Ceil(w*cos + h*sin), math.Ceil(w*sin + h*cos)
}

// dimension reads w_ or h_. Values with a decimal point up to 1.0 are a
// fraction of current; anything above MaxDimension is an error.
func dimension(st *step, key string, current int) (int, bool, error) {
	v, ok := st.get(key)
	if !ok {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false, fmt.Errorf("invalid %s %q", key, v)
	}
	if strings.Contains(v, ".") && f <= 1 {
		f *= float64(current)
	}
	if f > MaxDimension {
		return 0, false, fmt.Errorf("%s %q exceeds %d", key, v, MaxDimension)
	}
	n := int(math.Round(f))
	if n < 1 {
		n = 1
	}
	return n, true, nil
}

func (o *Output) apply(st *step, keys ...string) {
	for _, k := range keys {
		p, ok := st.params[k]
		if !ok || st.used[k] {
			continue
		}
		st.used[k] = true
		o.Applied = append(o.Applied, p.String())
	}
}

func (o *Output) skip(p cdnurl.Param, reason string) {
	o.Skipped = append(o.Skipped, p.String()+": "+reason)
}

// skipKey records the step's parameter key as skipped.
func (o *Output) skipKey(st *step, key, reason string) {
	p, ok := st.params[key]
	if !ok || st.used[key] {
		return
	}
	st.used[key] = true
	o.skip(p, reason)
}
