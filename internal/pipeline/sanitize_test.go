package pipeline

import "testing"

func TestSanitizeScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, in, want string
	}{
		{"no tag", "a < b", "a < b"},
		{"lower", `"</script>"`, `"<\/script>"`},
		{"mixed case", `"</ScRiPt >"`, `"<\/ScRiPt >"`},
		{"other closing tag", `"</div>"`, `"</div>"`},
	}
	for _, tt := range tests {
		if got := string(sanitizeScript([]byte(tt.in))); got != tt.want {
			t.Errorf("%s: sanitizeScript(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, in, want string
	}{
		{"plain", "body{color:red}", "body{color:red}"},
		{"closing style", `a{content:"</style>"}`, `a{content:"<\/style>"}`},
		{"any closing tag", `</x></y>`, `<\/x><\/y>`},
	}
	for _, tt := range tests {
		if got := string(sanitizeCSS([]byte(tt.in))); got != tt.want {
			t.Errorf("%s: sanitizeCSS(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}
