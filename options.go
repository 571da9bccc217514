package htmlinline

import (
	"net/http"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// Option configures an Inliner.
type Option func(*Inliner)

// WithConfig applies a loaded configuration. Options given after it
// override its values. A nil config is ignored; an invalid one makes
// NewInliner fail with ErrInvalidConfig.
func WithConfig(cfg *Config) Option {
	return func(i *Inliner) {
		if cfg == nil {
			return
		}
		if err := cfg.Validate(); err != nil {
			i.err = convertError(err)
			return
		}
		i.opts.RewriteRegexLiterals = cfg.Scripts.RewriteRegexLiterals
		i.opts.DropScriptAttrs = slices.Clone(cfg.Scripts.DropAttributes)
		i.opts.RewriteStyleURLs = cfg.Styles.RewriteURLs
		i.opts.MinifyCSS = cfg.Styles.Minify
		i.opts.MIMETypes = i.opts.MIMETypes.With(cfg.MIMETypes)
		i.remote = cfg.Remote.Enabled
		i.fetchTimeout = cfg.Remote.FetchTimeout()
		if cfg.Remote.MaxBytes > 0 {
			i.maxFetchBytes = cfg.Remote.MaxBytes
		}
		if cfg.Remote.Concurrency > 0 {
			i.opts.Concurrency = cfg.Remote.Concurrency
		}
		i.logLevel = cfg.Log.Level
	}
}

// WithRemoteFetch enables or disables fetching of http(s) and
// protocol-relative references. Disabled references are left as written.
func WithRemoteFetch(enabled bool) Option {
	return func(i *Inliner) {
		i.remote = enabled
	}
}

// WithHTTPClient sets the client used for remote fetches.
// It does not enable remote fetching by itself.
func WithHTTPClient(client *http.Client) Option {
	return func(i *Inliner) {
		i.httpClient = client
	}
}

// WithFetchTimeout sets the timeout for each remote fetch.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithFetchTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("htmlinline: WithFetchTimeout duration must be positive")
	}
	return func(i *Inliner) {
		i.fetchTimeout = d
	}
}

// WithMaxFetchBytes caps the size of each remote asset.
// Panics if n <= 0.
func WithMaxFetchBytes(n int64) Option {
	if n <= 0 {
		panic("htmlinline: WithMaxFetchBytes limit must be positive")
	}
	return func(i *Inliner) {
		i.maxFetchBytes = n
	}
}

// WithMIMEType maps a file extension ("avif" or ".avif") to a mime type,
// overriding the built-in table.
func WithMIMEType(ext, mimeType string) Option {
	return func(i *Inliner) {
		i.opts.MIMETypes = i.opts.MIMETypes.With(map[string]string{ext: mimeType})
	}
}

// WithStyleURLRewrite toggles inlining of url() references in style
// elements and inlined stylesheets. Enabled by default.
func WithStyleURLRewrite(enabled bool) Option {
	return func(i *Inliner) {
		i.opts.RewriteStyleURLs = enabled
	}
}

// WithRegexRewrite toggles rewriting of /[<>]+/ regex literals in inlined
// scripts. Enabled by default.
func WithRegexRewrite(enabled bool) Option {
	return func(i *Inliner) {
		i.opts.RewriteRegexLiterals = enabled
	}
}

// WithCSSMinify toggles minification of inlined stylesheets. Disabled by default.
func WithCSSMinify(enabled bool) Option {
	return func(i *Inliner) {
		i.opts.MinifyCSS = enabled
	}
}

// WithDropScriptAttributes sets the attributes removed from inlined scripts
// besides src. The default is "defer".
func WithDropScriptAttributes(attrs ...string) Option {
	return func(i *Inliner) {
		i.opts.DropScriptAttrs = slices.Clone(attrs)
	}
}

// WithConcurrency bounds concurrent url() loads within one style block,
// local files included.
// Panics if n < 1.
func WithConcurrency(n int) Option {
	if n < 1 {
		panic("htmlinline: WithConcurrency must be at least 1")
	}
	return func(i *Inliner) {
		i.opts.Concurrency = n
	}
}

// WithLogger sets the logger. Without it the logger attached to the call's
// context is used, then a stderr logger at the configured log.level.
func WithLogger(logger *log.Logger) Option {
	return func(i *Inliner) {
		i.logger = logger
	}
}

