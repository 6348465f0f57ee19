package epub

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/telmet/parchment"
)

// buildTOC applies the two-tier TOC strategy: the modern navigation document
// first, the legacy NCX navigation map if the nav yields zero items.
func (b *book) buildTOC() []*parchment.TOCItem {
	if items := b.navTOC(); len(items) > 0 {
		return items
	}
	if items := b.ncxTOC(); len(items) > 0 {
		return items
	}
	return []*parchment.TOCItem{}
}

// navTOC locates the manifest item flagged as "nav", finds its
// table-of-contents list and converts the nested list items into a TOCItem
// tree. Order values are assigned depth-first; links resolve relative to the
// nav document's own directory and are re-based onto the package directory
// so they share the runtime lookup rule with every other href.
func (b *book) navTOC() []*parchment.TOCItem {
	var navItem *manifestItem
	for _, raw := range b.opf.Manifest.Items {
		for _, prop := range strings.Fields(raw.Properties) {
			if prop == "nav" {
				mi := b.manifest[raw.ID]
				navItem = &mi
				break
			}
		}
		if navItem != nil {
			break
		}
	}
	if navItem == nil {
		return nil
	}

	navPath := resolvePath(b.baseDir, navItem.Href)
	data, err := readFile(b.zr, navPath)
	if err != nil {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	nav := doc.Find(`nav[epub\:type="toc"]`).First()
	if nav.Length() == 0 {
		nav = doc.Find("nav").First()
	}
	if nav.Length() == 0 {
		return nil
	}

	list := nav.Find("ol").First()
	if list.Length() == 0 {
		return nil
	}

	order := 0
	return b.navList(list, path.Dir(navPath), &order)
}

func (b *book) navList(list *goquery.Selection, navDir string, order *int) []*parchment.TOCItem {
	var items []*parchment.TOCItem

	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		link := li.ChildrenFiltered("a").First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			// Headingless grouping entries use a span label.
			title = strings.TrimSpace(li.ChildrenFiltered("span").First().Text())
		}

		href := ""
		if raw, ok := link.Attr("href"); ok {
			href = b.rebaseHref(navDir, raw)
		}

		nested := li.ChildrenFiltered("ol").First()
		if title == "" && href == "" && nested.Length() == 0 {
			return
		}

		item := &parchment.TOCItem{
			ID:    fmt.Sprintf("nav-%d", *order),
			Title: title,
			Href:  href,
			Order: *order,
		}
		*order++

		if nested.Length() > 0 {
			item.Children = b.navList(nested, navDir, order)
		}

		items = append(items, item)
	})

	return items
}

// rebaseHref resolves a document-relative href (keeping any fragment) into a
// package-relative token.
func (b *book) rebaseHref(fromDir, href string) string {
	filePart := hrefWithoutFragment(href)
	fragment := href[len(filePart):]
	if filePart == "" {
		return href // fragment-only link
	}
	return b.relToBase(resolvePath(fromDir, filePart)) + fragment
}

// ncxDoc models the legacy linear navigation map: a tree of nav-points each
// carrying a label and a content-source reference.
type ncxDoc struct {
	XMLName xml.Name  `xml:"ncx"`
	NavMap  ncxNavMap `xml:"navMap"`
}

type ncxNavMap struct {
	Points []ncxNavPoint `xml:"navPoint"`
}

type ncxNavPoint struct {
	Label   string        `xml:"navLabel>text"`
	Content ncxContent    `xml:"content"`
	Points  []ncxNavPoint `xml:"navPoint"`
}

type ncxContent struct {
	Src string `xml:"src,attr"`
}

func (b *book) ncxTOC() []*parchment.TOCItem {
	ncxItem := b.ncxManifestItem()
	if ncxItem == nil {
		return nil
	}

	ncxPath := resolvePath(b.baseDir, ncxItem.Href)
	data, err := readFile(b.zr, ncxPath)
	if err != nil {
		return nil
	}

	var doc ncxDoc
	if err := xml.Unmarshal(preprocessHTMLEntities(data), &doc); err != nil {
		return nil
	}

	order := 0
	return b.navPoints(doc.NavMap.Points, path.Dir(ncxPath), &order)
}

func (b *book) ncxManifestItem() *manifestItem {
	if tocID := b.opf.Spine.Toc; tocID != "" {
		if mi, ok := b.manifest[tocID]; ok {
			return &mi
		}
	}
	for _, raw := range b.opf.Manifest.Items {
		if strings.EqualFold(raw.MediaType, "application/x-dtbncx+xml") {
			mi := b.manifest[raw.ID]
			return &mi
		}
	}
	return nil
}

func (b *book) navPoints(points []ncxNavPoint, ncxDir string, order *int) []*parchment.TOCItem {
	var items []*parchment.TOCItem

	for _, pt := range points {
		item := &parchment.TOCItem{
			ID:    fmt.Sprintf("nav-%d", *order),
			Title: strings.TrimSpace(pt.Label),
			Order: *order,
		}
		if src := strings.TrimSpace(pt.Content.Src); src != "" {
			item.Href = b.rebaseHref(ncxDir, src)
		}
		*order++

		if len(pt.Points) > 0 {
			item.Children = b.navPoints(pt.Points, ncxDir, order)
		}
		items = append(items, item)
	}

	return items
}
