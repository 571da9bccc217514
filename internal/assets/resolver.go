package assets

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-htmlinline/internal/fileutil"
)

// Resolver routes a reference to the loader that can open it.
type Resolver struct {
	local  *FilesystemLoader
	remote *HTTPLoader // nil when remote fetching is disabled
}

// NewResolver creates a Resolver rooted at baseDir.
// A nil remote loader disables remote fetching.
// Returns ErrInvalidBasePath if baseDir is not a readable directory.
func NewResolver(baseDir string, remote *HTTPLoader) (*Resolver, error) {
	local, err := NewFilesystemLoader(baseDir)
	if err != nil {
		return nil, err
	}
	return &Resolver{local: local, remote: remote}, nil
}

// Open opens the asset named by ref.
//
// data: URIs yield ErrDataURI. Remote references yield ErrRemoteDisabled
// when no HTTPLoader is configured. Everything else is read from disk.
func (r *Resolver) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return nil, ErrEmptyReference
	case fileutil.IsDataURI(ref):
		return nil, ErrDataURI
	case fileutil.IsRemote(ref):
		if r.remote == nil {
			return nil, fmt.Errorf("%w: %s", ErrRemoteDisabled, ref)
		}
		if strings.HasPrefix(ref, "//") {
			ref = "https:" + ref
		}
		return r.remote.Open(ctx, ref)
	default:
		return r.local.Open(ref)
	}
}

// BasePath returns the directory local references resolve against.
func (r *Resolver) BasePath() string {
	return r.local.BasePath()
}

// HasRemote returns true if remote fetching is enabled.
func (r *Resolver) HasRemote() bool {
	return r.remote != nil
}
