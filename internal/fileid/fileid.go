// Package fileid provides a deterministic template ID from a file path for watched files.
package fileid

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

const prefix = "file:"

// TemplateID returns a stable template ID for the given absolute path.
// Same path always yields the same ID, so re-ingesting a changed file
// replaces its template instead of duplicating it.
func TemplateID(absolutePath string) string {
	normalized := filepath.Clean(absolutePath)
	hash := sha256.Sum256([]byte(normalized))
	return prefix + hex.EncodeToString(hash[:])
}
