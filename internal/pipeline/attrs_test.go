package pipeline

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// attrsOf builds an attribute list from key/value pairs.
func attrsOf(pairs ...string) Attributes {
	var a Attributes
	for i := 0; i+1 < len(pairs); i += 2 {
		a.list = append(a.list, html.Attribute{Key: pairs[i], Val: pairs[i+1]})
	}
	return a
}

// ---------------------------------------------------------------------------
// TestAttributes - Ordered Attribute List
// ---------------------------------------------------------------------------

func TestAttributes_Access(t *testing.T) {
	t.Parallel()

	a := attrsOf("src", "a.js", "defer", "", "type", "module")

	if v, ok := a.Get("src"); !ok || v != "a.js" {
		t.Errorf("Get(src) = %q, %v, want %q, true", v, ok, "a.js")
	}
	if _, ok := a.Get("defer"); !ok {
		t.Error("Get(defer) reported missing, want present")
	}
	if a.Value("missing") != "" {
		t.Errorf("Value(missing) = %q, want empty", a.Value("missing"))
	}

	a.Remove("src", "defer")

	if _, ok := a.Get("src"); ok {
		t.Error("Remove() left src behind")
	}
	if _, ok := a.Get("defer"); ok {
		t.Error("Remove() left attributes behind")
	}
	if a.Value("type") != "module" {
		t.Errorf("Value(type) = %q, want module", a.Value("type"))
	}
}

func TestAttributes_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		attrs Attributes
		skip  []string
		want  string
	}{
		{"empty", attrsOf(), nil, ""},
		{"order kept", attrsOf("b", "2", "a", "1"), nil, ` b="2" a="1"`},
		{"skipped", attrsOf("src", "x", "alt", "y"), []string{"src"}, ` alt="y"`},
		{"skip case insensitive", attrsOf("src", "x"), []string{"SRC"}, ""},
		{"boolean attribute", attrsOf("async", ""), nil, ` async=""`},
		{"escaped", attrsOf("alt", `"a" <b> & c`), nil, ` alt="&#34;a&#34; &lt;b&gt; &amp; c"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var sb strings.Builder
			if err := tt.attrs.Render(&sb, tt.skip...); err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			if sb.String() != tt.want {
				t.Errorf("Render() = %q, want %q", sb.String(), tt.want)
			}
		})
	}
}

func TestEscapeAttr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`"`, "&#34;"},
		{"<>", "&lt;&gt;"},
		{"&amp;", "&amp;amp;"},
		{"it's", "it's"},
	}
	for _, tt := range tests {
		if got := EscapeAttr(tt.in); got != tt.want {
			t.Errorf("EscapeAttr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
