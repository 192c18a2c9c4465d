package cdnurl

import (
	"net/url"
	"regexp"
	"strings"
)

// formatSuffixes are compared against the last four bytes of a name. "jpeg"
// has no leading dot, so "photo.jpeg" matches but so does "photojpeg"; the
// latter is then left untouched because extPattern requires the dot.
var formatSuffixes = map[string]bool{
	".png": true,
	".gif": true,
	".jpg": true,
	"jpeg": true,
}

var extPattern = regexp.MustCompile(`\.(png|gif|jpg|jpeg)$`)

// literalEscapes are kept unescaped in resource names.
var literalEscapes = strings.NewReplacer(
	"%21", "!",
	"%2A", "*",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%3A", ":",
	"%2F", "/",
)

// NormalizeName applies the optional format extension to name and
// percent-encodes the result.
//
// With a non-empty format, a trailing .png, .gif, .jpg or .jpeg is replaced
// by "."+format, and any other name gets "."+format appended. Encoding keeps
// ASCII letters, digits and "-_.~" plus the characters ! * ' ( ) : / as they
// are; everything else becomes %XX, with a space encoded as %20.
func NormalizeName(name, format string) string {
	if format != "" {
		if len(name) >= 4 && formatSuffixes[name[len(name)-4:]] {
			name = extPattern.ReplaceAllLiteralString(name, "."+format)
		} else {
			name += "." + format
		}
	}
	return literalEscapes.Replace(rawURLEncode(name))
}

// rawURLEncode escapes everything outside the RFC 3986 unreserved set.
// QueryEscape does the same except that it writes spaces as "+", and it
// escapes a literal "+" as "%2B", so replacing "+" afterwards is exact.
func rawURLEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
