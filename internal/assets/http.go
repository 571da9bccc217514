package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alnah/go-htmlinline/internal/hints"
	"github.com/alnah/go-htmlinline/internal/logging"
)

// Remote fetch defaults.
const (
	DefaultFetchTimeout        = 30 * time.Second
	DefaultMaxFetchBytes int64 = 10 << 20
)

// HTTPLoader fetches remote assets over HTTP(S).
type HTTPLoader struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// NewHTTPLoader creates an HTTPLoader. A nil client means http.DefaultClient,
// a non-positive timeout means DefaultFetchTimeout and a non-positive
// maxBytes means DefaultMaxFetchBytes.
func NewHTTPLoader(client *http.Client, timeout time.Duration, maxBytes int64) *HTTPLoader {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFetchBytes
	}
	return &HTTPLoader{client: client, timeout: timeout, maxBytes: maxBytes}
}

// Open fetches rawURL and returns its body. The body is read in full before
// Open returns, so the timeout covers the whole transfer.
func (h *HTTPLoader) Open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteFetch, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v%s", ErrRemoteFetch, err, hints.ForTimeout())
		}
		return nil, fmt.Errorf("%w: %v", ErrRemoteFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s%s", ErrRemoteFetch, rawURL, resp.Status,
			hints.ForRemoteStatus(resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrRemoteFetch, rawURL, err)
	}
	if int64(len(data)) > h.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrRemoteFetch, rawURL, h.maxBytes)
	}

	logging.FromContext(ctx).Debug("fetched remote asset",
		logging.FieldURL, rawURL,
		logging.FieldStatus, resp.StatusCode,
		logging.FieldBytes, len(data))

	return io.NopCloser(bytes.NewReader(data)), nil
}
