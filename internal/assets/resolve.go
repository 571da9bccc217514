package assets

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// CleanRef strips the query string and fragment from an asset reference.
func CleanRef(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		return ref[:i]
	}
	return ref
}

// ResolvePath maps ref onto the filesystem under baseDir.
//
// Absolute references are rooted at baseDir, not at the filesystem root.
// Relative references are joined to baseDir and may still point outside it;
// FilesystemLoader rejects those.
func ResolvePath(baseDir, ref string) (string, error) {
	p := CleanRef(ref)
	if strings.TrimSpace(p) == "" {
		return "", ErrEmptyReference
	}
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	p = strings.ReplaceAll(p, `\`, "/")

	if strings.HasPrefix(p, "/") {
		return filepath.Join(baseDir, filepath.FromSlash(path.Clean(p))), nil
	}
	return filepath.Join(baseDir, filepath.FromSlash(p)), nil
}

// JoinRef resolves ref against the reference of the document that contains
// it, so a url() inside "css/app.css" pointing at "../img/a.png" becomes
// "img/a.png". References that do not depend on their container (absolute,
// remote, data:, fragments) are returned unchanged, as is everything when
// container is empty.
func JoinRef(container, ref string) string {
	if container == "" || ref == "" {
		return ref
	}
	if strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "#") || hasScheme(ref) {
		return ref
	}
	if hasScheme(container) || strings.HasPrefix(container, "//") {
		base, err := url.Parse(container)
		if err != nil {
			return ref
		}
		rel, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		return base.ResolveReference(rel).String()
	}
	return path.Join(path.Dir(CleanRef(container)), ref)
}

// hasScheme reports whether ref starts with a URI scheme such as "data:" or "https:".
func hasScheme(ref string) bool {
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9', c == '+', c == '-', c == '.':
			if i == 0 {
				return false
			}
		case c == ':':
			return i > 1
		default:
			return false
		}
	}
	return false
}
