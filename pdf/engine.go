// Package pdf implements the paginated-document parser: metadata and
// bookmark extraction plus page-range chapter slicing over an external PDF
// text/outline-extraction engine.
package pdf

import "sync"

// DocInfo carries best-effort document-level metadata.
type DocInfo struct {
	Title  string
	Author string
}

// OutlineEntry is one flattened bookmark with its destination resolved to a
// 1-based page number. Engines drop entries whose destination cannot be
// resolved.
type OutlineEntry struct {
	Title string
	Page  int
}

// TextRun is one text item on a page in reading order. EndOfLine marks runs
// that terminate their line.
type TextRun struct {
	Text      string
	EndOfLine bool
}

// Document is one opened PDF. Implementations decode lazily but may cache;
// a Document must not be shared across concurrent logical requests.
type Document interface {
	NumPages() int
	Info() (DocInfo, error)
	Outline() ([]OutlineEntry, error)
	PageText(page int) ([]TextRun, error)
}

// Engine opens PDF documents from in-memory bytes. It is the single opaque
// boundary to the external extraction machinery.
type Engine interface {
	Open(data []byte) (Document, error)
}

var setupOnce sync.Once

// Setup performs the process-wide, one-time engine configuration. It is
// idempotent and safe for concurrent use; the engine is configured at first
// use and never reconfigured afterwards.
func Setup() {
	setupOnce.Do(configureEngine)
}
