package epub

import (
	"encoding/xml"
	"regexp"
	"strings"

	"github.com/telmet/parchment"
)

// opfPackage represents the root <package> element of the package
// description file.
type opfPackage struct {
	XMLName  xml.Name    `xml:"package"`
	Version  string      `xml:"version,attr"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
}

// opfMetadata holds the Dublin-Core-style metadata elements.
type opfMetadata struct {
	Titles       []string  `xml:"http://purl.org/dc/elements/1.1/ title"`
	Creators     []string  `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Languages    []string  `xml:"http://purl.org/dc/elements/1.1/ language"`
	Publishers   []string  `xml:"http://purl.org/dc/elements/1.1/ publisher"`
	Descriptions []string  `xml:"http://purl.org/dc/elements/1.1/ description"`
	Metas        []opfMeta `xml:"meta"`
}

// opfMeta represents a <meta> element. Legacy packages carry name/content
// attribute pairs; modern ones use property with text content.
type opfMeta struct {
	Name     string `xml:"name,attr"`
	Content  string `xml:"content,attr"`
	Property string `xml:"property,attr"`
	Value    string `xml:",chardata"`
}

type opfManifest struct {
	Items []opfManifestItem `xml:"item"`
}

type opfManifestItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

type opfSpine struct {
	Toc      string            `xml:"toc,attr"`
	ItemRefs []opfSpineItemRef `xml:"itemref"`
}

type opfSpineItemRef struct {
	IDRef  string `xml:"idref,attr"`
	Linear string `xml:"linear,attr"`
}

// parseOPF parses the package description. Malformed XML is a structural
// error; the package description is the root of everything else.
func parseOPF(data []byte) (*opfPackage, error) {
	data = preprocessHTMLEntities(stripBOM(data))

	var pkg opfPackage
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return nil, parchment.Errorf(parchment.EINVALID, "parse package description: %v", err)
	}
	return &pkg, nil
}

// buildMetadata maps Dublin-Core fields onto the shared metadata record,
// defaulting the title when absent.
func buildMetadata(pkg *opfPackage) parchment.Metadata {
	md := parchment.Metadata{
		Title:       firstNonEmpty(pkg.Metadata.Titles),
		Author:      joinNonEmpty(pkg.Metadata.Creators),
		Language:    firstNonEmpty(pkg.Metadata.Languages),
		Publisher:   firstNonEmpty(pkg.Metadata.Publishers),
		Description: firstNonEmpty(pkg.Metadata.Descriptions),
	}
	if md.Title == "" {
		md.Title = parchment.DefaultTitle
	}
	return md
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func joinNonEmpty(values []string) string {
	var parts []string
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// entityNameToNumeric maps HTML entity names that commonly leak into package
// XML to numeric references encoding/xml can digest.
var entityNameToNumeric = map[string]string{
	"nbsp": "&#160;", "mdash": "&#8212;", "ndash": "&#8211;",
	"hellip": "&#8230;", "lsquo": "&#8216;", "rsquo": "&#8217;",
	"ldquo": "&#8220;", "rdquo": "&#8221;", "copy": "&#169;",
	"reg": "&#174;", "trade": "&#8482;", "bull": "&#8226;",
	"eacute": "&#233;", "egrave": "&#232;", "auml": "&#228;",
	"ouml": "&#246;", "uuml": "&#252;", "ntilde": "&#241;",
	"ccedil": "&#231;", "deg": "&#176;", "sect": "&#167;",
}

var htmlEntityPattern = regexp.MustCompile(`(?i)&([a-z]{2,8});`)

// preprocessHTMLEntities rewrites known HTML named entities to numeric
// character references. encoding/xml only understands the XML predefined
// five, yet real-world package files carry &nbsp; and friends.
func preprocessHTMLEntities(data []byte) []byte {
	return htmlEntityPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := strings.ToLower(string(match[1 : len(match)-1]))
		switch name {
		case "amp", "lt", "gt", "apos", "quot":
			return match
		}
		if repl, ok := entityNameToNumeric[name]; ok {
			return []byte(repl)
		}
		return match
	})
}
