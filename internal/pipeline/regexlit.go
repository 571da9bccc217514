package pipeline

import (
	"bytes"
	"io"
	"regexp"
)

// regexLiteralPattern matches slash-delimited regex literals made only of
// '<' and '>' with up to two g/i flags, e.g. /</g or />+/gi.
var regexLiteralPattern = regexp.MustCompile(`/([<>]+?)/([gi]{0,2})`)

// RewriteRegexLiterals replaces every /[<>]+/flags literal in a script with
// the equivalent RegExp constructor call: /</g becomes new RegExp('<', 'g').
// A match directly followed by an identifier character is not a literal of
// this shape (e.g. /</gim) and is left alone.
//
// The whole script must be passed at once: a literal split across two
// buffers would not match.
func RewriteRegexLiterals(src []byte) []byte {
	matches := regexLiteralPattern.FindAllSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src
	}

	var buf bytes.Buffer
	buf.Grow(len(src) + len(matches)*16)
	last := 0
	for _, m := range matches {
		if m[1] < len(src) && isIdentByte(src[m[1]]) {
			continue
		}
		buf.Write(src[last:m[0]])
		buf.WriteString("new RegExp('")
		buf.Write(src[m[2]:m[3]])
		buf.WriteByte('\'')
		if m[5] > m[4] {
			buf.WriteString(", '")
			buf.Write(src[m[4]:m[5]])
			buf.WriteByte('\'')
		}
		buf.WriteByte(')')
		last = m[1]
	}
	if last == 0 {
		return src
	}
	buf.Write(src[last:])
	return buf.Bytes()
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z' ||
		'0' <= c && c <= '9'
}

// RegexLiteralWriter buffers a whole script and writes it, rewritten, on Close.
type RegexLiteralWriter struct {
	w      io.Writer
	buf    bytes.Buffer
	closed bool
}

// NewRegexLiteralWriter returns a RegexLiteralWriter writing to w.
func NewRegexLiteralWriter(w io.Writer) *RegexLiteralWriter {
	return &RegexLiteralWriter{w: w}
}

// Write buffers p.
func (r *RegexLiteralWriter) Write(p []byte) (int, error) {
	if r.closed {
		return 0, ErrWriterClosed
	}
	return r.buf.Write(p)
}

// Close rewrites the buffered script and writes it to the underlying writer.
func (r *RegexLiteralWriter) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	_, err := r.w.Write(RewriteRegexLiterals(r.buf.Bytes()))
	r.buf.Reset()
	return err
}
