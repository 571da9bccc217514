package pipeline

import "testing"

// ---------------------------------------------------------------------------
// TestMIMETable - Extension Lookup
// ---------------------------------------------------------------------------

func TestMIMETable_TypeOf(t *testing.T) {
	t.Parallel()

	table := DefaultMIMETable()
	tests := []struct {
		ref  string
		want string
	}{
		{"logo.svg", "image/svg+xml"},
		{"a/b/photo.JPG", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"anim.gif", "image/gif"},
		{"pic.webp", "image/webp"},
		{"favicon.ico", "image/x-icon"},
		{"font.woff", "application/font-woff"},
		{"font.woff2?v=2#x", "application/font-woff"},
		{"font.ttf", "font/ttf"},
		{"font.otf", "font/otf"},
		{"site.webmanifest", "application/manifest+json"},
		{"data.json", "application/json"},
		{"theme.css", "text/css"},
		{"chunk.js", "text/javascript"},
		{"module.MJS", "text/javascript"},
		{"no-extension", DefaultMIMEType},
		{"archive.tar.gz", DefaultMIMEType},
		{"https://cdn.example.com/x.svg?h=1", "image/svg+xml"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			t.Parallel()

			if got := table.TypeOf(tt.ref); got != tt.want {
				t.Errorf("TypeOf(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestMIMETable_With(t *testing.T) {
	t.Parallel()

	base := DefaultMIMETable()
	merged := base.With(map[string]string{".AVIF": "image/avif-test", "png": "image/x-png"})

	if got := merged.TypeOf("a.avif"); got != "image/avif-test" {
		t.Errorf("TypeOf(a.avif) = %q, want image/avif-test", got)
	}
	if got := merged.TypeOf("a.png"); got != "image/x-png" {
		t.Errorf("TypeOf(a.png) = %q, want image/x-png", got)
	}
	if got := base.TypeOf("a.png"); got != "image/png" {
		t.Errorf("base table modified: TypeOf(a.png) = %q", got)
	}
}

func TestDefaultMIMETable_IsCopy(t *testing.T) {
	t.Parallel()

	a := DefaultMIMETable()
	a["svg"] = "changed"
	if got := DefaultMIMETable().TypeOf("x.svg"); got != "image/svg+xml" {
		t.Errorf("DefaultMIMETable shared state: TypeOf(x.svg) = %q", got)
	}
}

func TestNormalizeExt(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{".PNG": "png", "svg": "svg", " .Woff2 ": "woff2", "": ""} {
		if got := NormalizeExt(in); got != want {
			t.Errorf("NormalizeExt(%q) = %q, want %q", in, got, want)
		}
	}
}
