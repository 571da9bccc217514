package pipeline

import (
	"errors"
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
)

const cssMediaType = "text/css"

// ErrMinify indicates a stylesheet could not be minified.
var ErrMinify = errors.New("CSS minification failed")

// CSSMinifier shrinks stylesheet text before it is inlined.
type CSSMinifier struct {
	m *minify.M
}

// NewCSSMinifier creates a CSSMinifier.
func NewCSSMinifier() *CSSMinifier {
	m := minify.New()
	m.AddFunc(cssMediaType, css.Minify)
	return &CSSMinifier{m: m}
}

// Minify returns the minified form of src.
func (c *CSSMinifier) Minify(src []byte) ([]byte, error) {
	out, err := c.m.Bytes(cssMediaType, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMinify, err)
	}
	return out, nil
}
