package htmlinline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-htmlinline/internal/assets"
	"github.com/alnah/go-htmlinline/internal/logging"
	"github.com/alnah/go-htmlinline/internal/pipeline"
)

// Compile-time interface implementation check.
var _ pipeline.AssetOpener = (*assets.Resolver)(nil)

// Inliner turns an HTML document and its on-disk assets into one
// self-contained document. Create with NewInliner.
type Inliner struct {
	opts          pipeline.Options
	remote        bool
	httpClient    *http.Client
	fetchTimeout  time.Duration
	maxFetchBytes int64
	logger        *log.Logger // set by WithLogger, wins over the context
	logLevel      string
	levelLogger   *log.Logger // built from logLevel, used when the context has none

	loader *assets.HTTPLoader // nil when remote fetching is disabled
	err    error              // first option error, reported by NewInliner
}

// NewInliner creates an Inliner with default configuration.
// Use options to customize behavior (e.g., WithConfig, WithRemoteFetch).
// Returns ErrInvalidConfig if a config passed with WithConfig is invalid.
func NewInliner(opts ...Option) (*Inliner, error) {
	i := &Inliner{
		opts:          pipeline.DefaultOptions(),
		fetchTimeout:  assets.DefaultFetchTimeout,
		maxFetchBytes: assets.DefaultMaxFetchBytes,
	}

	for _, opt := range opts {
		opt(i)
	}
	if i.err != nil {
		return nil, i.err
	}

	if i.logger == nil && i.logLevel != "" {
		i.levelLogger = logging.New(i.logLevel)
	}
	if i.remote {
		i.loader = assets.NewHTTPLoader(i.httpClient, i.fetchTimeout, i.maxFetchBytes)
	}

	return i, nil
}

// Inline returns html with its assets inlined. References resolve against
// baseDir. Any failure aborts the document: on error the result is "".
func (i *Inliner) Inline(ctx context.Context, html, baseDir string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(html))
	if err := i.InlineStream(ctx, strings.NewReader(html), &sb, baseDir); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// InlineFile reads the document at indexPath and inlines it against the
// directory that contains it.
func (i *Inliner) InlineFile(ctx context.Context, indexPath string) (string, error) {
	data, err := os.ReadFile(indexPath) // #nosec G304 -- path is caller-provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", wrapError(ErrAssetNotFound, fmt.Errorf("%w: %s", assets.ErrAssetNotFound, indexPath))
		}
		return "", wrapError(ErrAssetRead, fmt.Errorf("%w: %v", assets.ErrAssetRead, err))
	}
	return i.Inline(ctx, string(data), filepath.Dir(indexPath))
}

// InlineStream reads a document from r and writes it to w with its assets
// inlined. On error, w may already hold a prefix of the output; use Inline
// for all-or-nothing results.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (i *Inliner) InlineStream(ctx context.Context, r io.Reader, w io.Writer, baseDir string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if strings.TrimSpace(baseDir) == "" {
		return ErrEmptyBaseDir
	}

	resolver, err := assets.NewResolver(baseDir, i.loader)
	if err != nil {
		return convertError(err)
	}

	switch {
	case i.logger != nil:
		ctx = logging.WithLogger(ctx, i.logger)
	case i.levelLogger != nil && !logging.HasLogger(ctx):
		ctx = logging.WithLogger(ctx, i.levelLogger)
	}
	logger := logging.FromContext(ctx)
	logger.Debug("inlining document",
		logging.FieldBaseDir, resolver.BasePath(),
		"remote", resolver.HasRemote())

	if err := pipeline.NewRewriter(resolver, i.opts).Rewrite(ctx, r, w); err != nil {
		logger.Debug("inlining failed", logging.FieldError, err)
		return convertError(err)
	}
	return nil
}
