// Package pageid provides a deterministic page ID from the document source.
package pageid

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

const prefix = "page:"

// FromURL returns a stable page ID for the given source URL.
// The URL is lowercased and stripped of a trailing slash so that
// minor variations map to the same page.
func FromURL(rawURL string) string {
	normalized := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(rawURL)), "/")
	return hash(normalized)
}

// FromPath returns a stable page ID for an uploaded file path.
// Same path always yields the same ID, so regenerating from the same
// upload overwrites the previous page.
func FromPath(path string) string {
	return hash(filepath.Clean(path))
}

func hash(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return prefix + hex.EncodeToString(sum[:])
}
