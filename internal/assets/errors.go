package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrAssetNotFound indicates the referenced file does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrEmptyReference indicates an empty src/href value.
	ErrEmptyReference = errors.New("empty asset reference")

	// ErrDataURI indicates the reference already embeds its content.
	ErrDataURI = errors.New("reference is a data URI")

	// ErrInvalidBasePath indicates the base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrRemoteDisabled indicates a remote reference was found while remote
	// fetching is turned off.
	ErrRemoteDisabled = errors.New("remote fetching disabled")

	// ErrRemoteFetch indicates a remote asset could not be fetched.
	ErrRemoteFetch = errors.New("failed to fetch remote asset")
)
