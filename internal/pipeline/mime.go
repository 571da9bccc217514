package pipeline

import (
	"path"
	"strings"

	"github.com/alnah/go-htmlinline/internal/assets"
)

// DefaultMIMEType is used for extensions missing from the table.
const DefaultMIMEType = "image/png"

// MIMETable maps a lower-case file extension (without dot) to a mime type.
type MIMETable map[string]string

// defaultMIMETypes covers what a web build emits next to its index page.
var defaultMIMETypes = map[string]string{
	"svg":         "image/svg+xml",
	"png":         "image/png",
	"jpg":         "image/jpeg",
	"jpeg":        "image/jpeg",
	"gif":         "image/gif",
	"webp":        "image/webp",
	"avif":        "image/avif",
	"ico":         "image/x-icon",
	"woff":        "application/font-woff",
	"woff2":       "application/font-woff",
	"ttf":         "font/ttf",
	"otf":         "font/otf",
	"json":        "application/json",
	"css":         "text/css",
	"js":          "text/javascript",
	"mjs":         "text/javascript",
	"webmanifest": "application/manifest+json",
}

// DefaultMIMETable returns a fresh copy of the built-in table.
func DefaultMIMETable() MIMETable {
	t := make(MIMETable, len(defaultMIMETypes))
	for ext, mimeType := range defaultMIMETypes {
		t[ext] = mimeType
	}
	return t
}

// With returns a copy of t with overrides applied. Override keys are
// normalised, so ".SVG" and "svg" are the same entry.
func (t MIMETable) With(overrides map[string]string) MIMETable {
	merged := make(MIMETable, len(t)+len(overrides))
	for ext, mimeType := range t {
		merged[ext] = mimeType
	}
	for ext, mimeType := range overrides {
		merged[NormalizeExt(ext)] = mimeType
	}
	return merged
}

// TypeOf returns the mime type for the file a reference names.
func (t MIMETable) TypeOf(ref string) string {
	ext := NormalizeExt(path.Ext(assets.CleanRef(ref)))
	if mimeType, ok := t[ext]; ok {
		return mimeType
	}
	return DefaultMIMEType
}

// NormalizeExt lower-cases ext and strips its leading dot.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
