package htmlinline

import (
	"errors"

	"github.com/alnah/go-htmlinline/internal/assets"
	"github.com/alnah/go-htmlinline/internal/config"
	"github.com/alnah/go-htmlinline/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyBaseDir   = errors.New("base directory cannot be empty")
	ErrInvalidBaseDir = errors.New("invalid base directory")

	// Asset errors.
	ErrAssetNotFound = errors.New("asset not found")
	ErrAssetRead     = errors.New("failed to read asset")
	ErrPathTraversal = errors.New("asset reference escapes base directory")
	ErrRemoteFetch   = errors.New("failed to fetch remote asset")
	ErrCSSMinify     = errors.New("CSS minification failed")

	// Config errors.
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidConfig  = errors.New("invalid config")
)

// convertError maps internal errors to public errors.
func convertError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidBaseDir, err)
	case errors.Is(err, assets.ErrAssetNotFound):
		return wrapError(ErrAssetNotFound, err)
	case errors.Is(err, assets.ErrAssetRead):
		return wrapError(ErrAssetRead, err)
	case errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrPathTraversal, err)
	case errors.Is(err, assets.ErrRemoteFetch):
		return wrapError(ErrRemoteFetch, err)
	case errors.Is(err, pipeline.ErrMinify):
		return wrapError(ErrCSSMinify, err)
	case errors.Is(err, config.ErrConfigNotFound):
		return wrapError(ErrConfigNotFound, err)
	case errors.Is(err, config.ErrConfigParse):
		return wrapError(ErrConfigParse, err)
	case errors.Is(err, config.ErrEmptyConfigName),
		errors.Is(err, config.ErrFieldTooLong),
		errors.Is(err, config.ErrInvalidField):
		return wrapError(ErrInvalidConfig, err)
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedError) Unwrap() error {
	return e.sentinel
}
