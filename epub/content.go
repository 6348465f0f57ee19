package epub

import (
	"bytes"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ChapterContent resolves an href token from this package's TOC or spine and
// returns the chapter's body as safe, injectable HTML. Lookup is
// fragment-insensitive. A missing chapter entry is not an error: it returns
// an empty string and lets the caller surface a not-found condition.
func (p *Parser) ChapterContent(href string) (string, error) {
	b, err := p.open()
	if err != nil {
		return "", err
	}
	return b.chapterHTML(href, p.sourceID)
}

func (b *book) chapterHTML(href, sourceID string) (string, error) {
	zipPath := resolvePath(b.baseDir, hrefWithoutFragment(href))
	data, err := readFile(b.zr, zipPath)
	if err != nil {
		return "", nil
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", nil
	}

	body := findBody(doc)
	if body == nil {
		body = doc
	}

	var sb strings.Builder
	rc := renderContext{
		chapterDir: path.Dir(zipPath),
		sourceID:   sourceID,
	}
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		renderNode(&sb, c, rc)
	}
	return sb.String(), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

type renderContext struct {
	chapterDir string
	sourceID   string
}

// voidElements never take a closing tag.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
	atom.Wbr: true,
}

// renderNode serializes one node, omitting script/style subtrees entirely,
// dropping namespace-prefixed and event-handler attributes, rewriting
// relative image sources into asset-fetch paths, and escaping all text and
// attribute values.
func renderNode(sb *strings.Builder, n *html.Node, rc renderContext) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(html.EscapeString(n.Data))
		return
	case html.ElementNode:
		// handled below
	default:
		return
	}

	if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
		return
	}

	tag := n.Data
	sb.WriteByte('<')
	sb.WriteString(tag)

	for _, attr := range n.Attr {
		key := attr.Key
		if attr.Namespace != "" || strings.Contains(key, ":") {
			continue
		}
		if strings.HasPrefix(strings.ToLower(key), "on") {
			continue
		}
		val := attr.Val
		if n.DataAtom == atom.Img && key == "src" && !isExternalRef(val) {
			val = rc.assetPath(val)
		}
		sb.WriteByte(' ')
		sb.WriteString(key)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(val))
		sb.WriteByte('"')
	}

	if voidElements[n.DataAtom] {
		sb.WriteString("/>")
		return
	}

	sb.WriteByte('>')
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderNode(sb, c, rc)
	}
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteByte('>')
}

// assetPath rewrites an in-archive image reference into a caller-addressable
// asset-fetch path encoding the resolved absolute archive path and, when
// known, the owning source's id.
func (rc renderContext) assetPath(src string) string {
	resolved := resolvePath(rc.chapterDir, src)
	if rc.sourceID != "" {
		return "/api/sources/" + rc.sourceID + "/assets/" + resolved
	}
	return "/assets/" + resolved
}

func isExternalRef(src string) bool {
	s := strings.ToLower(strings.TrimSpace(src))
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "data:") ||
		strings.HasPrefix(s, "//")
}
