// Package fileutil provides file, path and reference classification helpers.
package fileutil

import (
	"os"
	"strings"
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "inline" -> false (name)
//   - "./inline.yaml" -> true (relative path)
//   - "/etc/inline.yaml" -> true (absolute)
//   - "C:\config\inline.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string is an http or https URL.
func IsURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// IsRemote returns true for http(s) URLs and protocol-relative references ("//host/x").
func IsRemote(s string) bool {
	return IsURL(s) || strings.HasPrefix(s, "//")
}

// IsDataURI returns true if the reference already embeds its content.
func IsDataURI(s string) bool {
	return len(s) >= len("data:") && strings.EqualFold(s[:len("data:")], "data:")
}

// IsFragment returns true for same-document references such as "#clip".
func IsFragment(s string) bool {
	return strings.HasPrefix(s, "#")
}
