// Package pipeline implements the streaming asset-inlining transform.
//
// This package handles the HTML-to-HTML stages:
//   - Element rewriting over a single tokenizer pass (Rewriter)
//   - Script inlining with regex-literal rewriting
//   - Stylesheet inlining, with optional url() inlining and minification
//   - Image and link inlining as base64 data URIs
//
// Asset lookup is delegated to an AssetOpener (internal/assets.Resolver in
// production). Tokens the rewriter does not target are copied through with
// their original bytes, so a document without matching elements comes out
// unchanged.
package pipeline
