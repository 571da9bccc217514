package pipeline

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Attributes is the ordered attribute list of one start tag.
// Keys are lower-case, as the tokenizer reports them.
type Attributes struct {
	list []html.Attribute
}

// Get returns the value of the first attribute named key.
func (a *Attributes) Get(key string) (string, bool) {
	for _, attr := range a.list {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// Value returns the value of key, or "" if absent.
func (a *Attributes) Value(key string) string {
	v, _ := a.Get(key)
	return v
}

// Remove deletes every attribute named by keys.
func (a *Attributes) Remove(keys ...string) {
	kept := a.list[:0]
	for _, attr := range a.list {
		if !containsKey(keys, attr.Key) {
			kept = append(kept, attr)
		}
	}
	a.list = kept
}

// Render writes every attribute except those named in skip as
// ` key="value"`, escaping the value.
func (a *Attributes) Render(w io.StringWriter, skip ...string) error {
	for _, attr := range a.list {
		if containsKey(skip, attr.Key) {
			continue
		}
		if _, err := w.WriteString(" " + attr.Key + `="` + EscapeAttr(attr.Val) + `"`); err != nil {
			return err
		}
	}
	return nil
}

// attrEscaper re-encodes a decoded attribute value for a double-quoted
// attribute. "&" is included because the tokenizer decodes entities.
var attrEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`"`, "&#34;",
	`<`, "&lt;",
	`>`, "&gt;",
)

// EscapeAttr escapes a value for use inside a double-quoted attribute.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}
