// Package markdown parses plain markdown documents, deriving chapters from
// the heading structure and rendering them to sanitized HTML.
package markdown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/telmet/parchment"
)

var _ parchment.Parser = (*Parser)(nil)

// Parser parses a markdown document held in memory. It is stateless: every
// call re-derives its view from the raw bytes.
type Parser struct {
	data []byte
}

// New returns a Parser over raw markdown bytes.
func New(data []byte) *Parser {
	return &Parser{data: data}
}

// anchorFor is the href token for the i-th heading of the document.
func anchorFor(i int) string {
	return fmt.Sprintf("#md-%d", i)
}

// anchorIndex parses an href token back to a heading index, returning -1
// for anything it does not recognize.
func anchorIndex(href string) int {
	rest, ok := strings.CutPrefix(strings.TrimPrefix(href, "#"), "md-")
	if !ok {
		return -1
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 {
		return -1
	}
	return i
}

// Parse derives metadata from front matter and the TOC from the heading
// hierarchy. Markdown has no structural failure mode, so Parse only errors
// when rendering machinery itself breaks.
func (p *Parser) Parse() (*parchment.Source, error) {
	fields, body := parseFrontMatter(p.data)
	headings := scanHeadings(strings.Split(body, "\n"))

	src := &parchment.Source{
		Metadata: buildMetadata(fields, headings),
	}

	if len(headings) == 0 {
		href := anchorFor(0)
		src.TOC = []*parchment.TOCItem{{
			ID:    "md-0",
			Title: src.Metadata.Title,
			Href:  href,
		}}
		src.Spine = []parchment.SpineItem{{ID: "md-0", Href: href}}
		return src, nil
	}

	entries := make([]parchment.TOCEntry, len(headings))
	for i, h := range headings {
		entries[i] = parchment.TOCEntry{
			Level: h.Level,
			ID:    fmt.Sprintf("md-%d", i),
			Title: h.Title,
			Href:  anchorFor(i),
		}
	}
	src.TOC = parchment.BuildTOCTree(entries)

	for i := range headings {
		src.Spine = append(src.Spine, parchment.SpineItem{
			ID:    fmt.Sprintf("md-%d", i),
			Href:  anchorFor(i),
			Order: i,
		})
	}
	return src, nil
}

func buildMetadata(fields map[string]string, headings []heading) parchment.Metadata {
	md := parchment.Metadata{
		Title:       firstField(fields, "title"),
		Author:      firstField(fields, "author", "creator"),
		Language:    firstField(fields, "language", "lang"),
		Publisher:   firstField(fields, "publisher"),
		Description: firstField(fields, "description", "summary"),
	}
	if md.Title == "" {
		for _, h := range headings {
			if h.Level == 1 {
				md.Title = h.Title
				break
			}
		}
	}
	if md.Title == "" && len(headings) > 0 {
		md.Title = headings[0].Title
	}
	if md.Title == "" {
		md.Title = parchment.DefaultTitle
	}
	return md
}

// ChapterContent renders the section starting at the heading the token
// names, up to the next heading of the same or a shallower level. Unknown
// tokens and headingless documents render the whole body.
func (p *Parser) ChapterContent(href string) (string, error) {
	_, body := parseFrontMatter(p.data)
	lines := strings.Split(body, "\n")
	headings := scanHeadings(lines)

	idx := anchorIndex(href)
	if idx < 0 || idx >= len(headings) {
		return render(body)
	}

	h := headings[idx]
	end := len(lines)
	for _, next := range headings[idx+1:] {
		if next.Level <= h.Level {
			end = next.Line
			break
		}
	}
	return render(strings.Join(lines[h.Line:end], "\n"))
}
