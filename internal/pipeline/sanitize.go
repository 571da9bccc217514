package pipeline

import (
	"bytes"
	"regexp"
)

// scriptCloseTag matches "</script" in any letter case.
var scriptCloseTag = regexp.MustCompile(`(?i)</(script)`)

// sanitizeScript escapes "</script" so inlined code cannot end its own element.
// "<\/" is equivalent to "</" inside JS strings, templates and regexes.
func sanitizeScript(js []byte) []byte {
	return scriptCloseTag.ReplaceAll(js, []byte(`<\/$1`))
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css []byte) []byte {
	return bytes.ReplaceAll(css, []byte("</"), []byte(`<\/`))
}
