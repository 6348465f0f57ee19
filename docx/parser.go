package docx

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/telmet/parchment"
)

// WholeDocument is the chapter token denoting the entire converted document.
const WholeDocument = "document"

// Ensure Parser implements parchment.Parser at compile time.
var _ parchment.Parser = (*Parser)(nil)

// Parser parses word-processor documents from an in-memory byte buffer.
// Each operation re-converts the document; no cross-call state is kept.
type Parser struct {
	data []byte
}

// New returns a Parser over the raw bytes of a word-processor archive.
func New(data []byte) *Parser {
	return &Parser{data: data}
}

// heading is one scanned heading tag in the converted HTML.
type heading struct {
	Level int
	Text  string
	ID    string
	Start int // byte offset of the opening tag
}

var headingTagPattern = regexp.MustCompile(`(?is)<h([1-6])(\s[^>]*)?>(.*?)</h[1-6]\s*>`)
var innerTagPattern = regexp.MustCompile(`<[^>]+>`)

// scanHeadings finds every heading tag in document order, strips inner
// markup to plain text, and assigns each a stable ordinal id.
func scanHeadings(doc string) []heading {
	matches := headingTagPattern.FindAllStringSubmatchIndex(doc, -1)
	headings := make([]heading, 0, len(matches))
	for i, m := range matches {
		level := int(doc[m[2]] - '0')
		inner := doc[m[6]:m[7]]
		text := strings.TrimSpace(html.UnescapeString(innerTagPattern.ReplaceAllString(inner, "")))
		headings = append(headings, heading{
			Level: level,
			Text:  text,
			ID:    fmt.Sprintf("heading-%d", i),
			Start: m[0],
		})
	}
	return headings
}

// Parse converts the document and derives the TOC and spine from its
// headings. A document without headings yields a single synthetic entry
// spanning the whole content.
func (p *Parser) Parse() (*parchment.Source, error) {
	doc, err := convertToHTML(p.data)
	if err != nil {
		return nil, err
	}

	md := p.metadata()
	headings := scanHeadings(doc)

	src := &parchment.Source{Metadata: md}

	if len(headings) == 0 {
		src.TOC = []*parchment.TOCItem{{
			ID:    WholeDocument,
			Title: "Document",
			Href:  WholeDocument,
			Order: 0,
		}}
		src.Spine = []parchment.SpineItem{{ID: WholeDocument, Href: WholeDocument, Order: 0}}
		return src, nil
	}

	entries := make([]parchment.TOCEntry, 0, len(headings))
	for _, h := range headings {
		entries = append(entries, parchment.TOCEntry{
			Level: h.Level,
			ID:    h.ID,
			Title: h.Text,
			Href:  h.ID,
		})
	}
	src.TOC = parchment.BuildTOCTree(entries)
	src.Spine = buildSpine(headings)
	return src, nil
}

// buildSpine uses level-1 headings as chapter boundaries when present,
// every heading otherwise. Each spine entry's id doubles as its chapter
// token.
func buildSpine(headings []heading) []parchment.SpineItem {
	var chapters []heading
	for _, h := range headings {
		if h.Level == 1 {
			chapters = append(chapters, h)
		}
	}
	if len(chapters) == 0 {
		chapters = headings
	}

	spine := make([]parchment.SpineItem, 0, len(chapters))
	for i, h := range chapters {
		spine = append(spine, parchment.SpineItem{ID: h.ID, Href: h.ID, Order: i})
	}
	return spine
}

// ChapterContent returns the HTML for one heading token, or the whole
// converted document for the WholeDocument sentinel. Unknown tokens fall
// back to the whole document rather than erroring. All returned fragments
// have stable ids injected into their heading tags so they stay
// independently addressable.
func (p *Parser) ChapterContent(href string) (string, error) {
	doc, err := convertToHTML(p.data)
	if err != nil {
		return "", err
	}

	headings := scanHeadings(doc)
	if href == WholeDocument || len(headings) == 0 {
		return injectHeadingIDs(doc, 0), nil
	}

	idx := -1
	for i, h := range headings {
		if h.ID == href {
			idx = i
			break
		}
	}
	if idx < 0 {
		return injectHeadingIDs(doc, 0), nil
	}

	// The section runs from the requested heading until the next heading of
	// equal or shallower level.
	start := headings[idx].Start
	end := len(doc)
	for j := idx + 1; j < len(headings); j++ {
		if headings[j].Level <= headings[idx].Level {
			end = headings[j].Start
			break
		}
	}

	return injectHeadingIDs(doc[start:end], idx), nil
}

var headingOpenPattern = regexp.MustCompile(`(?i)<h([1-6])((?:\s[^>]*)?)>`)
var idAttrPattern = regexp.MustCompile(`(?i)\bid\s*=`)

// injectHeadingIDs adds an id attribute to every heading tag that lacks
// one. Ordinals continue from startOrdinal so ids in a sliced fragment
// match the ids the full-document scan assigned. Idempotent: tags that
// already carry an id are left untouched.
func injectHeadingIDs(fragment string, startOrdinal int) string {
	n := startOrdinal
	return headingOpenPattern.ReplaceAllStringFunc(fragment, func(tag string) string {
		m := headingOpenPattern.FindStringSubmatch(tag)
		id := fmt.Sprintf("heading-%d", n)
		n++
		if idAttrPattern.MatchString(m[2]) {
			return tag
		}
		return "<h" + m[1] + m[2] + ` id="` + id + `">`
	})
}
