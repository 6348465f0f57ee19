package parchment

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable hex identity for a source document's raw
// bytes. Caching collaborators key memoized ChapterContent results by
// (Fingerprint(data), href); the engine itself never caches.
func Fingerprint(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
