package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-htmlinline/internal/hints"
)

// FilesystemLoader opens assets from a build output directory.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks in base path so containment checks compare real paths.
	realPath, err := filepath.EvalSymlinks(absPath)
	if err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}

	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// BasePath returns the absolute, symlink-resolved base directory.
func (f *FilesystemLoader) BasePath() string {
	return f.basePath
}

// Resolve maps ref to an absolute path inside the base directory.
func (f *FilesystemLoader) Resolve(ref string) (string, error) {
	filePath, err := ResolvePath(f.basePath, ref)
	if err != nil {
		return "", err
	}
	if err := f.verifyPathContainment(filePath); err != nil {
		return "", fmt.Errorf("%w: %q%s", err, ref, hints.ForPathTraversal())
	}
	return filePath, nil
}

// Open opens the file ref points to. The caller closes the returned reader.
func (f *FilesystemLoader) Open(ref string) (io.ReadCloser, error) {
	filePath, err := f.Resolve(ref)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath) // #nosec G304 -- path validated above
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q (%s)%s", ErrAssetNotFound, ref, filePath, hints.ForAssetNotFound())
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %q is a directory", ErrAssetRead, ref)
	}

	return file, nil
}

// verifyPathContainment ensures the resolved file path is within basePath.
// Symlinks are resolved first so a link cannot point outside basePath.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// A missing file fails EvalSymlinks; keep the lexical path, the open
	// will report the missing file.
	realPath, err := filepath.EvalSymlinks(absFilePath)
	if err == nil {
		absFilePath = realPath
	}

	// Trailing separator prevents /base/path matching /base/pathevil.
	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}

	return nil
}
