package parchment

import (
	"path/filepath"
	"strings"
)

// DefaultTitle is used whenever a source carries no detectable title.
const DefaultTitle = "Untitled"

// Metadata describes a parsed source. Title is always set (defaulted to
// DefaultTitle if unknown); every other field is best-effort and may be empty.
type Metadata struct {
	Title       string `json:"title"`
	Author      string `json:"author,omitempty"`
	Language    string `json:"language,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	Description string `json:"description,omitempty"`
}

// TOCItem is one entry in the hierarchical table of contents. Href is an
// opaque anchor token meaningful only to the parser that produced it.
type TOCItem struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Href     string     `json:"href"`
	Order    int        `json:"order"`
	Children []*TOCItem `json:"children,omitempty"`
}

// SpineItem is one entry in the flat linear reading order, independent of the
// TOC tree's nesting.
type SpineItem struct {
	ID    string `json:"id"`
	Href  string `json:"href"`
	Order int    `json:"order"`
}

// Source aggregates everything a single Parse call extracts. A Source is
// created fresh on every Parse invocation and is never cached or shared by
// the engine.
type Source struct {
	Metadata  Metadata    `json:"metadata"`
	TOC       []*TOCItem  `json:"toc"`
	Spine     []SpineItem `json:"spine"`
	Cover     []byte      `json:"-"`
	CoverMIME string      `json:"coverMimeType,omitempty"`
}

// Validate returns an error if the source violates the shared invariants:
// spine orders must be contiguous 0..N-1 and TOC orders must increase
// depth-first with every child ordered after its parent.
func (s *Source) Validate() error {
	for i, item := range s.Spine {
		if item.Order != i {
			return Errorf(EINVALID, "spine order %d at position %d; want %d", item.Order, i, i)
		}
	}
	next := 0
	return validateTOCOrder(s.TOC, -1, &next)
}

func validateTOCOrder(items []*TOCItem, parentOrder int, next *int) error {
	for _, item := range items {
		if item.Order != *next {
			return Errorf(EINVALID, "toc order %d for %q; want %d", item.Order, item.Title, *next)
		}
		if item.Order <= parentOrder {
			return Errorf(EINVALID, "toc child %q ordered before its parent", item.Title)
		}
		*next++
		if err := validateTOCOrder(item.Children, item.Order, next); err != nil {
			return err
		}
	}
	return nil
}

// Snippet is one timestamped paragraph of a transcript source. Start and
// Duration are expressed in seconds.
type Snippet struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Parser is the capability contract every format parser implements. The two
// operations are all a caller ever needs: Parse produces the uniform source
// model, ChapterContent renders one section as safe, injectable HTML.
//
// Href tokens are opaque outside the owning parser: a token emitted by one
// parser's Parse is only meaningful to the same parser's ChapterContent.
// Unresolvable tokens are not errors; parsers return a deterministic
// fallback (empty string or whole-document content) instead.
type Parser interface {
	Parse() (*Source, error)
	ChapterContent(href string) (string, error)
}

// Format identifies the source document format a parser handles.
type Format string

// Supported source formats.
const (
	FormatEPUB     Format = "epub"
	FormatDOCX     Format = "docx"
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "markdown"
	FormatUnknown  Format = ""
)

// DetectFormat selects a format by file extension. Callers use this to pick
// a parser; the parsers themselves never inspect filenames.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".epub":
		return FormatEPUB
	case ".docx":
		return FormatDOCX
	case ".pdf":
		return FormatPDF
	case ".md", ".markdown", ".txt":
		return FormatMarkdown
	default:
		return FormatUnknown
	}
}
