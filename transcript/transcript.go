// Package transcript renders timed text snippets as a single-chapter
// source, one timestamped paragraph per snippet.
package transcript

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/telmet/parchment"
)

var _ parchment.Parser = (*Parser)(nil)

// Href is the whole-transcript chapter token. A transcript never splits
// into sub-chapters, so every token resolves to this one chapter.
const Href = "transcript"

// Parser renders an ordered snippet sequence with its source metadata.
type Parser struct {
	meta     parchment.Metadata
	snippets []parchment.Snippet
}

// New returns a Parser over the given metadata and snippets.
func New(meta parchment.Metadata, snippets []parchment.Snippet) *Parser {
	return &Parser{meta: meta, snippets: snippets}
}

// Parse returns a source with exactly one TOC entry and one spine entry
// covering the whole transcript.
func (p *Parser) Parse() (*parchment.Source, error) {
	md := p.meta
	if md.Title == "" {
		md.Title = "Transcript"
	}
	return &parchment.Source{
		Metadata: md,
		TOC: []*parchment.TOCItem{{
			ID:    Href,
			Title: md.Title,
			Href:  Href,
		}},
		Spine: []parchment.SpineItem{{ID: Href, Href: Href}},
	}, nil
}

// ChapterContent renders every snippet as a paragraph carrying its raw
// start offset and a human-readable timestamp. The token is ignored since
// there is only one chapter.
func (p *Parser) ChapterContent(string) (string, error) {
	var sb strings.Builder
	for i, s := range p.snippets {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, `<p data-start="%s">[%s] %s</p>`,
			formatOffset(s.Start), formatTimestamp(s.Start), html.EscapeString(s.Text))
	}
	return sb.String(), nil
}

// formatOffset preserves the raw start value without trailing zero noise.
func formatOffset(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

// formatTimestamp renders MM:SS, switching to H:MM:SS past one hour.
func formatTimestamp(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
