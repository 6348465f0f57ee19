package pdf

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/telmet/parchment"
)

// Ensure Parser implements parchment.Parser at compile time.
var _ parchment.Parser = (*Parser)(nil)

// Parser parses paginated documents from an in-memory byte buffer. Unlike
// the other parsers it memoizes its opened document handle for the lifetime
// of the instance, so metadata extraction, TOC building and chapter
// extraction avoid re-decoding the whole file. The handle is private to the
// instance: one Parser must not serve concurrent logical requests, but
// distinct Parsers parallelize freely.
type Parser struct {
	data   []byte
	engine Engine
	doc    Document
}

// Option configures a Parser.
type Option func(*Parser)

// WithEngine substitutes the extraction engine, chiefly for tests.
func WithEngine(e Engine) Option {
	return func(p *Parser) { p.engine = e }
}

// New returns a Parser over the raw bytes of a paginated document.
func New(data []byte, opts ...Option) *Parser {
	p := &Parser{data: data}
	for _, opt := range opts {
		opt(p)
	}
	if p.engine == nil {
		p.engine = NewEngine()
	}
	return p
}

func (p *Parser) document() (Document, error) {
	if p.doc != nil {
		return p.doc, nil
	}
	doc, err := p.engine.Open(p.data)
	if err != nil {
		return nil, err
	}
	p.doc = doc
	return doc, nil
}

// Parse extracts metadata and derives the TOC from the embedded outline,
// falling back to one entry per page. Page ranges are computed here, once;
// this parser is the single source of truth for chapter boundaries.
func (p *Parser) Parse() (*parchment.Source, error) {
	doc, err := p.document()
	if err != nil {
		return nil, err
	}

	src := &parchment.Source{Metadata: p.metadata(doc)}

	entries := p.outline(doc)
	pageCount := doc.NumPages()

	if len(entries) == 0 {
		for page := 1; page <= pageCount; page++ {
			href := fmt.Sprintf("page-%d", page)
			src.TOC = append(src.TOC, &parchment.TOCItem{
				ID:    href,
				Title: fmt.Sprintf("Page %d", page),
				Href:  href,
				Order: page - 1,
			})
			src.Spine = append(src.Spine, parchment.SpineItem{ID: href, Href: href, Order: page - 1})
		}
		if src.TOC == nil {
			src.TOC = []*parchment.TOCItem{}
		}
		return src, nil
	}

	for i, e := range entries {
		span := rangeFor(entries, i, pageCount)
		href := span.token()
		src.TOC = append(src.TOC, &parchment.TOCItem{
			ID:    href,
			Title: e.Title,
			Href:  href,
			Order: i,
		})
		src.Spine = append(src.Spine, parchment.SpineItem{ID: href, Href: href, Order: i})
	}
	return src, nil
}

// metadata never fails: any extraction error degrades to a defaulted
// record.
func (p *Parser) metadata(doc Document) parchment.Metadata {
	md := parchment.Metadata{Title: parchment.DefaultTitle}
	info, err := doc.Info()
	if err != nil {
		return md
	}
	if info.Title != "" {
		md.Title = info.Title
	}
	md.Author = info.Author
	return md
}

// outline returns the flattened, resolvable bookmark entries, dropping
// entries whose page falls outside the document. Failures yield nil; the
// caller falls back to per-page entries.
func (p *Parser) outline(doc Document) []OutlineEntry {
	raw, err := doc.Outline()
	if err != nil {
		return nil
	}
	pageCount := doc.NumPages()
	var entries []OutlineEntry
	for _, e := range raw {
		if e.Page < 1 || e.Page > pageCount {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

// pageSpan is the internal, typed form of a page href token.
type pageSpan struct {
	start, end int
}

func (s pageSpan) token() string {
	if s.start == s.end {
		return fmt.Sprintf("page-%d", s.start)
	}
	return fmt.Sprintf("page-%d-%d", s.start, s.end)
}

// rangeFor computes the page range for outline entry i: the end page is the
// next entry's start page minus one, clamped to be at least the entry's own
// start page and at most the page count. When two bookmarks share a start
// page the earlier one collapses to a single-page range, which is the one
// tie-break every caller sees.
func rangeFor(entries []OutlineEntry, i, pageCount int) pageSpan {
	start := entries[i].Page
	end := pageCount
	if i+1 < len(entries) {
		end = entries[i+1].Page - 1
	}
	if end < start {
		end = start
	}
	if end > pageCount {
		end = pageCount
	}
	return pageSpan{start: start, end: end}
}

// parseHref turns a token back into a page span. A token missing the range
// suffix behaves as start=end; anything malformed deterministically maps to
// page one. Bounds are clamped by the caller.
func parseHref(href string) pageSpan {
	rest, ok := strings.CutPrefix(href, "page-")
	if !ok {
		return pageSpan{start: 1, end: 1}
	}
	parts := strings.SplitN(rest, "-", 2)
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return pageSpan{start: 1, end: 1}
	}
	end := start
	if len(parts) == 2 {
		if e, err := strconv.Atoi(parts[1]); err == nil {
			end = e
		}
	}
	return pageSpan{start: start, end: end}
}

func (s pageSpan) clamp(pageCount int) pageSpan {
	if s.start < 1 {
		s.start = 1
	}
	if s.start > pageCount {
		s.start = pageCount
	}
	if s.end < s.start {
		s.end = s.start
	}
	if s.end > pageCount {
		s.end = pageCount
	}
	return s
}

// placeholderHTML is returned when a requested range yields no text at all.
const placeholderHTML = "<p>No readable text could be extracted from this section.</p>"

// ChapterContent renders the requested page range as one paragraph per
// extracted line. Unknown or malformed tokens never fail; they clamp to a
// deterministic page range.
func (p *Parser) ChapterContent(href string) (string, error) {
	doc, err := p.document()
	if err != nil {
		return "", err
	}

	pageCount := doc.NumPages()
	if pageCount < 1 {
		return placeholderHTML, nil
	}
	span := parseHref(href).clamp(pageCount)

	var pageTexts []string
	for page := span.start; page <= span.end; page++ {
		runs, err := doc.PageText(page)
		if err != nil {
			continue
		}
		if text := joinRuns(runs); text != "" {
			pageTexts = append(pageTexts, text)
		}
	}

	if len(pageTexts) == 0 {
		return placeholderHTML, nil
	}

	var sb strings.Builder
	for _, line := range strings.Split(strings.Join(pageTexts, "\n\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(html.EscapeString(line))
		sb.WriteString("</p>\n")
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// joinRuns concatenates text runs into lines, starting a new line wherever
// a run is flagged as ending one.
func joinRuns(runs []TextRun) string {
	var lines []string
	var line strings.Builder
	for _, run := range runs {
		line.WriteString(run.Text)
		if run.EndOfLine {
			if s := strings.TrimSpace(line.String()); s != "" {
				lines = append(lines, s)
			}
			line.Reset()
		}
	}
	if s := strings.TrimSpace(line.String()); s != "" {
		lines = append(lines, s)
	}
	return strings.Join(lines, "\n")
}
