package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/alnah/go-htmlinline/internal/assets"
	"github.com/alnah/go-htmlinline/internal/fileutil"
)

// memOpener serves assets from memory and refuses remote references.
type memOpener struct {
	mu     sync.Mutex
	files  map[string][]byte
	opened []string
}

func newMemOpener(files map[string]string) *memOpener {
	m := &memOpener{files: make(map[string][]byte, len(files))}
	for name, content := range files {
		m.files[name] = []byte(content)
	}
	return m
}

func (m *memOpener) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fileutil.IsRemote(ref) {
		return nil, fmt.Errorf("%w: %s", assets.ErrRemoteDisabled, ref)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = append(m.opened, ref)
	b, ok := m.files[assets.CleanRef(strings.TrimPrefix(ref, "/"))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", assets.ErrAssetNotFound, ref)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memOpener) openCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.opened)
}

// rewrite runs a Rewriter over doc and fails the test on error.
func rewrite(t *testing.T, opener AssetOpener, opts Options, doc string) string {
	t.Helper()
	var out bytes.Buffer
	if err := NewRewriter(opener, opts).Rewrite(context.Background(), strings.NewReader(doc), &out); err != nil {
		t.Fatalf("Rewrite() unexpected error: %v", err)
	}
	return out.String()
}

// brokenOpener fails reads of "broken.png" and delegates everything else.
type brokenOpener struct {
	*memOpener
}

func (b brokenOpener) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if ref == "broken.png" {
		return io.NopCloser(iotest.ErrReader(errDiskFailure)), nil
	}
	return b.memOpener.Open(ctx, ref)
}

var errDiskFailure = errors.New("disk failure")
