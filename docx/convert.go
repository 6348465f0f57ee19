// Package docx implements the flow-document parser: an external
// document-to-HTML conversion step followed by heading-derived TOC building
// and segment-based chapter slicing.
package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"

	"github.com/telmet/parchment"
)

const documentXMLPath = "word/document.xml"

// convertToHTML converts the word-processor archive into HTML, mapping
// paragraph styles "Heading 1".."Heading 6" onto heading tags. Runs carry
// bold/italic markup; tables are flattened into one paragraph per row.
func convertToHTML(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", parchment.Errorf(parchment.EINVALID, "not a ZIP archive: %v", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == documentXMLPath {
			rc, err := f.Open()
			if err != nil {
				return "", parchment.Errorf(parchment.EINVALID, "open %s: %v", documentXMLPath, err)
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", parchment.Errorf(parchment.EINVALID, "read %s: %v", documentXMLPath, err)
			}
			break
		}
	}
	if docXML == nil {
		return "", parchment.Errorf(parchment.EINVALID, "missing %s", documentXMLPath)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(docXML); err != nil {
		return "", parchment.Errorf(parchment.EINVALID, "parse %s: %v", documentXMLPath, err)
	}

	root := doc.Root()
	if root == nil {
		return "", parchment.Errorf(parchment.EINVALID, "empty %s", documentXMLPath)
	}
	body := root.SelectElement("w:body")
	if body == nil {
		body = root
	}

	var blocks []string
	for _, el := range body.ChildElements() {
		switch el.Tag {
		case "p":
			if b := paragraphHTML(el); b != "" {
				blocks = append(blocks, b)
			}
		case "tbl":
			blocks = append(blocks, tableHTML(el)...)
		}
	}

	return strings.Join(blocks, "\n"), nil
}

var headingStylePattern = regexp.MustCompile(`(?i)^heading\s*([1-6])$`)

// headingLevel maps a paragraph style value onto a heading level 1-6, or 0
// for body text.
func headingLevel(style string) int {
	m := headingStylePattern.FindStringSubmatch(strings.TrimSpace(style))
	if m == nil {
		return 0
	}
	return int(m[1][0] - '0')
}

// paragraphHTML renders one paragraph element, honoring its heading style
// and per-run bold/italic properties. Empty paragraphs collapse to nothing.
func paragraphHTML(p *etree.Element) string {
	inner := runsHTML(p)
	if strings.TrimSpace(inner) == "" {
		return ""
	}

	style := ""
	if pPr := p.SelectElement("w:pPr"); pPr != nil {
		if pStyle := pPr.SelectElement("w:pStyle"); pStyle != nil {
			style = pStyle.SelectAttrValue("w:val", "")
		}
	}

	if level := headingLevel(style); level > 0 {
		tag := "h" + string(rune('0'+level))
		return "<" + tag + ">" + inner + "</" + tag + ">"
	}
	return "<p>" + inner + "</p>"
}

func runsHTML(p *etree.Element) string {
	var sb strings.Builder
	for _, r := range p.FindElements(".//w:r") {
		text := runText(r)
		if text == "" {
			continue
		}
		escaped := html.EscapeString(text)
		bold, italic := runFormatting(r)
		if bold {
			escaped = "<strong>" + escaped + "</strong>"
		}
		if italic {
			escaped = "<em>" + escaped + "</em>"
		}
		sb.WriteString(escaped)
	}
	return sb.String()
}

func runText(r *etree.Element) string {
	var sb strings.Builder
	for _, child := range r.ChildElements() {
		switch child.Tag {
		case "t":
			sb.WriteString(child.Text())
		case "tab":
			sb.WriteString(" ")
		case "br":
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

// runFormatting reports bold/italic run properties, treating explicit
// val="0"/"false" toggles as off.
func runFormatting(r *etree.Element) (bold, italic bool) {
	rPr := r.SelectElement("w:rPr")
	if rPr == nil {
		return false, false
	}
	return toggleOn(rPr.SelectElement("w:b")), toggleOn(rPr.SelectElement("w:i"))
}

func toggleOn(el *etree.Element) bool {
	if el == nil {
		return false
	}
	switch strings.ToLower(el.SelectAttrValue("w:val", "")) {
	case "0", "false", "none":
		return false
	}
	return true
}

// tableHTML flattens a table into one paragraph per row, cells joined by
// tab-width spaces. Layout fidelity is a non-goal; readable linear text is.
func tableHTML(tbl *etree.Element) []string {
	var rows []string
	for _, tr := range tbl.FindElements("w:tr") {
		var cells []string
		for _, tc := range tr.FindElements("w:tc") {
			var parts []string
			for _, p := range tc.FindElements(".//w:p") {
				if text := runsHTML(p); strings.TrimSpace(text) != "" {
					parts = append(parts, text)
				}
			}
			if len(parts) > 0 {
				cells = append(cells, strings.Join(parts, " "))
			}
		}
		if len(cells) > 0 {
			rows = append(rows, "<p>"+strings.Join(cells, "&#9;")+"</p>")
		}
	}
	return rows
}
