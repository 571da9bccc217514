package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"github.com/alnah/go-htmlinline/internal/assets"
	"github.com/alnah/go-htmlinline/internal/logging"
)

// DefaultConcurrency bounds concurrent url() loads within one style block.
const DefaultConcurrency = 4

// AssetOpener opens the asset a src/href/url() reference names.
//
// Open must return an error wrapping assets.ErrRemoteDisabled for remote
// references it will not fetch; the rewriter leaves those as written.
type AssetOpener interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// Options configures a Rewriter.
type Options struct {
	// RewriteRegexLiterals turns /[<>]+/flags literals in inlined scripts
	// into RegExp constructor calls.
	RewriteRegexLiterals bool

	// DropScriptAttrs are removed from inlined script elements, besides src.
	DropScriptAttrs []string

	// RewriteStyleURLs inlines url() references in style blocks and
	// inlined stylesheets.
	RewriteStyleURLs bool

	// MinifyCSS minifies inlined stylesheets.
	MinifyCSS bool

	// MIMETypes types base64 payloads by extension.
	MIMETypes MIMETable

	// Concurrency bounds concurrent url() loads, local and remote alike.
	// Values < 1 mean DefaultConcurrency.
	Concurrency int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		RewriteRegexLiterals: true,
		DropScriptAttrs:      []string{"defer"},
		RewriteStyleURLs:     true,
		MIMETypes:            DefaultMIMETable(),
		Concurrency:          DefaultConcurrency,
	}
}

// Rewriter inlines the assets referenced by an HTML document.
// A Rewriter holds no per-document state and may be reused.
type Rewriter struct {
	opener   AssetOpener
	opts     Options
	minifier *CSSMinifier
}

// NewRewriter creates a Rewriter that loads assets through opener.
func NewRewriter(opener AssetOpener, opts Options) *Rewriter {
	if opts.MIMETypes == nil {
		opts.MIMETypes = DefaultMIMETable()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = DefaultConcurrency
	}
	rw := &Rewriter{opener: opener, opts: opts}
	if opts.MinifyCSS {
		rw.minifier = NewCSSMinifier()
	}
	return rw
}

// Rewrite reads a document from r and writes it to w with its assets inlined.
//
// Elements handled, in document order:
//   - script[src]: replaced by an inline script holding the file text
//   - img[src]: src becomes a base64 data URI
//   - link[href] with rel=stylesheet: replaced by a style element
//   - other link[href]: href becomes a base64 data URI
//   - style: url() references become base64 data URIs
//   - noscript: its body is rewritten by the same rules
//
// Every other token is copied with its original bytes. On error, w may hold a
// prefix of the output.
func (rw *Rewriter) Rewrite(ctx context.Context, r io.Reader, w io.Writer) error {
	out := bufio.NewWriter(w)
	p := &pass{
		Rewriter: rw,
		z:        html.NewTokenizer(r),
		out:      out,
		logger:   logging.FromContext(ctx),
	}
	if err := p.run(ctx); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}
	p.logger.Debug("rewrote document", logging.FieldCount, p.inlined)
	return nil
}

// pass is the state of one Rewrite call.
type pass struct {
	*Rewriter
	z       *html.Tokenizer
	out     *bufio.Writer
	logger  *log.Logger
	inlined int
}

// element is a start tag captured before the tokenizer moves on.
type element struct {
	name  string
	attrs Attributes
	raw   []byte
}

func (p *pass) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		tt := p.z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(p.z.Err(), io.EOF) {
				_, err := p.out.Write(p.z.Raw())
				return err
			}
			return p.z.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			// Raw must be copied before TagName, which rewrites the buffer.
			el := element{raw: bytes.Clone(p.z.Raw())}
			name, hasAttr := p.z.TagName()
			el.name = string(name)
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = p.z.TagAttr()
				el.attrs.list = append(el.attrs.list, html.Attribute{Key: string(key), Val: string(val)})
			}

			// The tokenizer reads noscript bodies as raw text.
			if el.name == "noscript" {
				if err := p.rewriteNoscript(ctx, el); err != nil {
					return err
				}
				continue
			}

			done, err := p.rewriteElement(ctx, el)
			if err != nil {
				return err
			}
			if done {
				p.inlined++
				continue
			}
			if _, err := p.out.Write(el.raw); err != nil {
				return err
			}

		default:
			if _, err := p.out.Write(p.z.Raw()); err != nil {
				return err
			}
		}
	}
}

// rewriteElement writes the inlined form of el and reports whether it did.
// When it reports false nothing has been written.
func (p *pass) rewriteElement(ctx context.Context, el element) (bool, error) {
	switch el.name {
	case "script":
		return p.inlineScript(ctx, el)
	case "img":
		return p.inlineBase64(ctx, el, "src")
	case "link":
		href, ok := el.attrs.Get("href")
		if !ok || skipRef(href) {
			return false, nil
		}
		if strings.EqualFold(strings.TrimSpace(el.attrs.Value("rel")), "stylesheet") {
			return p.inlineStylesheet(ctx, el, href)
		}
		return p.inlineBase64(ctx, el, "href")
	case "style":
		if !p.opts.RewriteStyleURLs {
			return false, nil
		}
		return p.rewriteStyle(ctx, el)
	}
	return false, nil
}

// inlineScript replaces a script[src] element with an inline script.
// Whatever body the element had is dropped; its end tag is kept.
func (p *pass) inlineScript(ctx context.Context, el element) (bool, error) {
	src, ok := el.attrs.Get("src")
	if !ok || skipRef(src) {
		return false, nil
	}
	rc, err := p.opener.Open(ctx, src)
	if errors.Is(err, assets.ErrRemoteDisabled) {
		p.logger.Debug("leaving remote script", logging.FieldRef, src)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("inlining script %q: %w", src, err)
	}
	defer func() { _ = rc.Close() }()

	var body bytes.Buffer
	dst := io.WriteCloser(nopWriteCloser{&body})
	if p.opts.RewriteRegexLiterals {
		dst = NewRegexLiteralWriter(&body)
	}
	if _, err := copyAsset(dst, rc); err != nil {
		return false, fmt.Errorf("inlining script %q: %w", src, err)
	}
	if err := dst.Close(); err != nil {
		return false, err
	}
	script := sanitizeScript(body.Bytes())

	end, err := p.skipBody("script")
	if err != nil {
		return false, err
	}
	if end == nil {
		end = []byte("</script>")
	}

	el.attrs.Remove(append([]string{"src"}, p.opts.DropScriptAttrs...)...)
	p.out.WriteString("<script")
	if err := el.attrs.Render(p.out); err != nil {
		return false, err
	}
	p.out.WriteString(">")
	p.out.Write(script)
	if _, err := p.out.Write(end); err != nil {
		return false, err
	}

	p.logger.Debug("inlined script",
		logging.FieldRef, src,
		logging.FieldBytes, len(script))
	return true, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// inlineBase64 rewrites attribute key of el into a base64 data URI. The
// rewritten attribute moves to the end of the tag.
func (p *pass) inlineBase64(ctx context.Context, el element, key string) (bool, error) {
	ref, ok := el.attrs.Get(key)
	if !ok || skipRef(ref) {
		return false, nil
	}
	rc, err := p.opener.Open(ctx, ref)
	if errors.Is(err, assets.ErrRemoteDisabled) {
		p.logger.Debug("leaving remote reference",
			logging.FieldElement, el.name,
			logging.FieldRef, ref)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("inlining <%s %s=%q>: %w", el.name, key, ref, err)
	}
	defer func() { _ = rc.Close() }()

	mimeType := strings.TrimSpace(el.attrs.Value("type"))
	if mimeType == "" {
		mimeType = p.opts.MIMETypes.TypeOf(ref)
	}

	p.out.WriteString("<" + el.name)
	if err := el.attrs.Render(p.out, key); err != nil {
		return false, err
	}
	p.out.WriteString(" " + key + `="data:` + EscapeAttr(mimeType) + ";base64,")
	enc := NewBase64Writer(p.out)
	n, err := copyAsset(enc, rc)
	if err != nil {
		return false, fmt.Errorf("inlining <%s %s=%q>: %w", el.name, key, ref, err)
	}
	if err := enc.Close(); err != nil {
		return false, err
	}
	if _, err := p.out.WriteString(`">`); err != nil {
		return false, err
	}

	p.logger.Debug("inlined asset",
		logging.FieldElement, el.name,
		logging.FieldRef, ref,
		logging.FieldMIME, mimeType,
		logging.FieldBytes, n)
	return true, nil
}

// inlineStylesheet replaces a link[rel=stylesheet] element with a style
// element holding the stylesheet text. The text is not copied verbatim: it is
// minified when MinifyCSS is set, its url() references are inlined when
// RewriteStyleURLs is set, and "</" is escaped so it cannot close the element.
func (p *pass) inlineStylesheet(ctx context.Context, el element, href string) (bool, error) {
	css, err := p.readAsset(ctx, href)
	if errors.Is(err, assets.ErrRemoteDisabled) {
		p.logger.Debug("leaving remote stylesheet", logging.FieldRef, href)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("inlining stylesheet %q: %w", href, err)
	}

	if p.minifier != nil {
		if css, err = p.minifier.Minify(css); err != nil {
			return false, fmt.Errorf("inlining stylesheet %q: %w", href, err)
		}
	}
	if p.opts.RewriteStyleURLs {
		if css, err = p.inlineCSSURLs(ctx, css, href); err != nil {
			return false, fmt.Errorf("inlining stylesheet %q: %w", href, err)
		}
	}

	p.out.WriteString("<style>")
	p.out.Write(sanitizeCSS(css))
	if _, err := p.out.WriteString("</style>"); err != nil {
		return false, err
	}

	p.logger.Debug("inlined stylesheet",
		logging.FieldRef, href,
		logging.FieldBytes, len(css))
	return true, nil
}

// rewriteStyle inlines the url() references of a style block. The start and
// end tags are kept as written.
func (p *pass) rewriteStyle(ctx context.Context, el element) (bool, error) {
	body, end, err := p.rawBody()
	if err != nil {
		return false, err
	}

	css, err := p.inlineCSSURLs(ctx, body, "")
	if err != nil {
		return false, fmt.Errorf("inlining style block: %w", err)
	}

	p.out.Write(el.raw)
	p.out.Write(css)
	if _, err := p.out.Write(end); err != nil {
		return false, err
	}
	return true, nil
}

// rewriteNoscript runs the body of a noscript element through a nested pass,
// keeping the start and end tags as written.
func (p *pass) rewriteNoscript(ctx context.Context, el element) error {
	body, end, err := p.rawBody()
	if err != nil {
		return err
	}

	p.out.Write(el.raw)
	nested := &pass{
		Rewriter: p.Rewriter,
		z:        html.NewTokenizer(bytes.NewReader(body)),
		out:      p.out,
		logger:   p.logger,
	}
	if err := nested.run(ctx); err != nil {
		return fmt.Errorf("inlining noscript block: %w", err)
	}
	p.inlined += nested.inlined
	_, err = p.out.Write(end)
	return err
}

// rawBody collects the text of a raw-text element up to its end tag. It
// returns the body and the end tag's bytes, which are nil at end of input.
func (p *pass) rawBody() (body, end []byte, err error) {
	var buf bytes.Buffer
	for {
		tt := p.z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(p.z.Err(), io.EOF) {
				buf.Write(p.z.Raw())
				return buf.Bytes(), nil, nil
			}
			return nil, nil, p.z.Err()
		case html.EndTagToken:
			return buf.Bytes(), bytes.Clone(p.z.Raw()), nil
		default:
			buf.Write(p.z.Raw())
		}
	}
}

// skipBody discards tokens up to and including the end tag of a raw-text
// element and returns that end tag's bytes, or nil at end of input.
func (p *pass) skipBody(name string) ([]byte, error) {
	for {
		switch p.z.Next() {
		case html.ErrorToken:
			if errors.Is(p.z.Err(), io.EOF) {
				return nil, nil
			}
			return nil, p.z.Err()
		case html.EndTagToken:
			raw := bytes.Clone(p.z.Raw())
			if tn, _ := p.z.TagName(); string(tn) == name {
				return raw, nil
			}
		}
	}
}

// readAsset returns the full contents of ref.
func (rw *Rewriter) readAsset(ctx context.Context, ref string) ([]byte, error) {
	rc, err := rw.opener.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	var buf bytes.Buffer
	if _, err := copyAsset(&buf, rc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// copyAsset copies src to dst, reporting read failures as assets.ErrAssetRead.
func copyAsset(dst io.Writer, src io.Reader) (int64, error) {
	r := &errReader{r: src}
	n, err := io.Copy(dst, r)
	if err != nil && r.err != nil {
		return n, fmt.Errorf("%w: %v", assets.ErrAssetRead, r.err)
	}
	return n, err
}

// errReader remembers the last non-EOF error of r.
type errReader struct {
	r   io.Reader
	err error
}

func (e *errReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		e.err = err
	}
	return n, err
}
