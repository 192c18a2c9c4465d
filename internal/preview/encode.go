package preview

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// normalizeFormat maps an f_ value or file extension to an output format.
func normalizeFormat(f string) (string, bool) {
	switch strings.ToLower(strings.TrimPrefix(f, ".")) {
	case "png":
		return "png", true
	case "jpg", "jpeg":
		return "jpg", true
	case "gif":
		return "gif", true
	}
	return "", false
}

// FormatFromPath returns the output format implied by a file name, or "png".
func FormatFromPath(path string) string {
	if f, ok := normalizeFormat(filepath.Ext(path)); ok {
		return f
	}
	return "png"
}

// MimeType returns the MIME type of an output format.
func MimeType(format string) string {
	switch format {
	case "jpg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	default:
		return "image/png"
	}
}

// Encode writes img in format. quality applies to JPEG only.
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	var err error
	switch format {
	case "jpg":
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case "gif":
		err = imaging.Encode(w, img, imaging.GIF)
	case "png", "":
		err = imaging.Encode(w, img, imaging.PNG)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// WriteFile encodes out to path.
func WriteFile(path string, out *Output) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(f, out.Image, out.Format, out.Quality); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Save writes o to path and returns its Result without the inline image.
func (o *Output) Save(path string) (*Result, error) {
	if err := WriteFile(path, o); err != nil {
		return nil, err
	}
	bounds := o.Image.Bounds()
	return &Result{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Format:     o.Format,
		Applied:    o.Applied,
		Skipped:    o.Skipped,
		MimeType:   MimeType(o.Format),
		OutputPath: path,
	}, nil
}
