// Package htmlinline turns a built web application's entry HTML and the
// assets next to it into one self-contained HTML document.
//
// # Quick Start
//
// Create an inliner and pass it the document and the directory its
// references resolve against:
//
//	inl, err := htmlinline.NewInliner()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := inl.Inline(ctx, indexHTML, "/path/to/build")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// InlineFile reads the document itself and uses its directory as the base:
//
//	out, err := inl.InlineFile(ctx, "/path/to/build/index.html")
//
// # What Gets Inlined
//
// The document is processed in a single streaming pass:
//
//  1. script[src] becomes an inline script holding the file text. Regex
//     literals made only of '<' and '>' (e.g. /</g) are rewritten to
//     new RegExp(...) calls so they cannot be read as markup.
//  2. img[src] and link[href] become base64 data URIs, typed by the
//     element's type attribute or the file extension.
//  3. link[rel=stylesheet] is replaced by a style element holding the
//     stylesheet text.
//  4. url() references inside style elements and inlined stylesheets
//     become base64 data URIs.
//
// Everything else is copied through byte for byte. References that already
// hold a data: URI are left alone, and so are http(s) references unless
// remote fetching is enabled.
//
// # Configuration
//
// Use functional options to customize the inliner:
//
//	inl, err := htmlinline.NewInliner(
//	    htmlinline.WithRemoteFetch(true),
//	    htmlinline.WithFetchTimeout(10 * time.Second),
//	    htmlinline.WithMIMEType("avif", "image/avif"),
//	    htmlinline.WithCSSMinify(true),
//	)
//
// Or load a YAML file (see LoadConfig) and pass it with WithConfig. Options
// after WithConfig override the file.
//
// # Error Handling
//
// The package exports sentinel errors for errors.Is():
//
//	out, err := inl.Inline(ctx, doc, dir)
//	if errors.Is(err, htmlinline.ErrAssetNotFound) {
//	    // a referenced file is missing
//	}
//
// Any error aborts the whole document; no partial output is returned.
//
// # Thread Safety
//
// An Inliner is immutable after NewInliner and safe for concurrent use.
package htmlinline
