// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests passing a path and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "pass a file path such as ./inline.yaml"

	// Find a user config path (inside go-htmlinline/) to suggest
	for _, p := range searchedPaths {
		if filepath.Base(filepath.Dir(p)) == "go-htmlinline" {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForTimeout returns a hint about increasing the remote fetch timeout.
func ForTimeout() string {
	return format("for slow hosts, raise remote.timeout or use WithFetchTimeout")
}

// ForAssetNotFound returns hints for missing asset errors.
func ForAssetNotFound() string {
	return format("references resolve against the base directory, including those starting with /")
}

// ForPathTraversal returns hints for references that leave the base directory.
func ForPathTraversal() string {
	return format("use a base directory that contains every referenced asset")
}

// ForRemoteStatus returns hints for non-2xx remote responses.
func ForRemoteStatus(status int) string {
	var hints []string
	switch {
	case status == 401 || status == 403:
		hints = append(hints, "the host refused access; use WithHTTPClient to add credentials")
	case status == 404:
		hints = append(hints, "check the URL in the document")
	case status >= 500:
		hints = append(hints, "the host failed; retry later")
	}
	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
