package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-htmlinline/internal/assets"
	"github.com/alnah/go-htmlinline/internal/fileutil"
	"github.com/alnah/go-htmlinline/internal/logging"
)

// cssURLPattern matches url(...) with a double-quoted, single-quoted or bare
// argument. Group 1 is the argument including any quotes.
var cssURLPattern = regexp.MustCompile(`(?i)url\(\s*("[^"]*"|'[^']*'|[^)"']*?)\s*\)`)

// cssRef is one url() occurrence.
type cssRef struct {
	start, end int    // byte span of the whole url(...) token
	ref        string // reference resolved against the containing stylesheet
}

// findCSSRefs returns every url() in css that names a loadable asset.
// container is the reference of the stylesheet css was read from, or "" for
// CSS that lives in the document itself.
func findCSSRefs(css []byte, container string) []cssRef {
	matches := cssURLPattern.FindAllSubmatchIndex(css, -1)
	refs := make([]cssRef, 0, len(matches))
	for _, m := range matches {
		raw := unquoteCSS(string(css[m[2]:m[3]]))
		if skipRef(raw) {
			continue
		}
		refs = append(refs, cssRef{start: m[0], end: m[1], ref: assets.JoinRef(container, raw)})
	}
	return refs
}

// unquoteCSS strips one pair of matching quotes and surrounding space.
func unquoteCSS(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// skipRef reports whether ref names nothing to inline.
func skipRef(ref string) bool {
	ref = strings.TrimSpace(ref)
	return ref == "" || fileutil.IsDataURI(ref) || fileutil.IsFragment(ref)
}

// inlineCSSURLs replaces every url() reference in css with a base64 data URI.
// Distinct targets are loaded concurrently, bounded by the configured
// concurrency, and substituted in document order. Remote references are left
// as written when remote fetching is disabled.
func (rw *Rewriter) inlineCSSURLs(ctx context.Context, css []byte, container string) ([]byte, error) {
	refs := findCSSRefs(css, container)
	if len(refs) == 0 {
		return css, nil
	}

	var targets []string
	index := make(map[string]int, len(refs))
	for _, r := range refs {
		if _, seen := index[r.ref]; !seen {
			index[r.ref] = len(targets)
			targets = append(targets, r.ref)
		}
	}

	uris := make([]string, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rw.opts.Concurrency)
	for i, target := range targets {
		g.Go(func() error {
			uri, err := rw.dataURI(gctx, target, "")
			if err != nil {
				return fmt.Errorf("inlining url(%s): %w", target, err)
			}
			uris[i] = uri
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(css))
	last := 0
	for _, r := range refs {
		uri := uris[index[r.ref]]
		if uri == "" {
			continue
		}
		buf.Write(css[last:r.start])
		buf.WriteString(`url("`)
		buf.WriteString(uri)
		buf.WriteString(`")`)
		last = r.end
	}
	buf.Write(css[last:])

	logging.FromContext(ctx).Debug("inlined url() references",
		logging.FieldCount, len(targets))

	return buf.Bytes(), nil
}

// dataURI loads ref and returns it as "data:<mime>;base64,<payload>".
// mimeType falls back to the extension table when empty. A remote reference
// with remote fetching disabled yields "" and no error.
func (rw *Rewriter) dataURI(ctx context.Context, ref, mimeType string) (string, error) {
	rc, err := rw.opener.Open(ctx, ref)
	if errors.Is(err, assets.ErrRemoteDisabled) {
		logging.FromContext(ctx).Debug("leaving remote reference", logging.FieldRef, ref)
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	if mimeType == "" {
		mimeType = rw.opts.MIMETypes.TypeOf(ref)
	}

	var sb strings.Builder
	sb.WriteString("data:" + mimeType + ";base64,")
	enc := NewBase64Writer(&sb)
	if _, err := copyAsset(enc, rc); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
