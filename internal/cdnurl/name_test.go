package cdnurl

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
		want   string
	}{
		{"append format", "test", "jpg", "test.jpg"},
		{"replace png", "a.png", "jpg", "a.jpg"},
		{"replace gif", "anim.gif", "png", "anim.png"},
		{"replace jpeg", "photo.jpeg", "webp", "photo.webp"},
		{"unknown extension is kept", "doc.pdf", "jpg", "doc.pdf.jpg"},
		{"extension match is case-sensitive", "a.PNG", "jpg", "a.PNG.jpg"},
		{"jpeg without dot is left alone", "photojpeg", "png", "photojpeg"},
		{"short name", "a", "png", "a.png"},
		{"no format", "sample", "", "sample"},
		{"dots in name", "Crocos.Inc.png", "", "Crocos.Inc.png"},
		{"space is percent-encoded", "my image", "", "my%20image"},
		{"plus is percent-encoded", "a+b", "", "a%2Bb"},
		{"query is escaped", "hello?a=b&c", "", "hello%3Fa%3Db%26c"},
		{"literal characters", "a!b*c'd(e)f:g/h", "", "a!b*c'd(e)f:g/h"},
		{"unreserved characters", "A-z_0.9~", "", "A-z_0.9~"},
		{"utf-8", "café", "", "caf%C3%A9"},
		{"hash and percent", "50%#1", "", "50%25%231"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input, tt.format); got != tt.want {
				t.Errorf("NormalizeName(%q, %q): got %q, want %q", tt.input, tt.format, got, tt.want)
			}
		})
	}
}
