// Package web turns captured page HTML into Markdown plus page-level
// metadata, so a capture can be saved and re-parsed like any plain text
// document.
package web

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"

	"github.com/telmet/parchment"
)

// Result is the outcome of capturing one page.
type Result struct {
	Markdown    string `json:"markdown"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl"`
}

// nonContentSelector matches elements that never contribute readable
// content. Matching subtrees are removed wholesale before conversion.
const nonContentSelector = "script, style, noscript, template, nav, header, footer, aside, form, " +
	"button, input, select, textarea, iframe, object, embed, video, audio, canvas, svg, " +
	"[role=\"navigation\"], [aria-hidden=\"true\"]"

// Capture extracts the primary readable content of a page as Markdown,
// along with title, author, description and cover image metadata. The base
// URL, when non-empty, resolves relative links and image sources.
func Capture(rawHTML, baseURL, fallbackTitle string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, parchment.Errorf(parchment.EINVALID, "failed to parse HTML: %v", err)
	}

	res := &Result{
		Title:       pageTitle(doc, fallbackTitle),
		Author:      metaContent(doc, `meta[name="author"]`, `meta[property="article:author"]`, `meta[name="twitter:creator"]`),
		Description: metaContent(doc, `meta[property="og:description"]`, `meta[name="twitter:description"]`, `meta[name="description"]`),
		CoverURL:    metaContent(doc, `meta[property="og:image"]`, `meta[name="twitter:image"]`),
	}

	root := contentRoot(doc)
	root.Find(nonContentSelector).Remove()
	cleanImageAlts(root)
	hasHeading := root.Find("h1, h2, h3, h4, h5, h6").Length() > 0

	html, err := goquery.OuterHtml(root)
	if err != nil {
		return nil, parchment.Errorf(parchment.EINTERNAL, "failed to serialize content root: %v", err)
	}

	md, err := convertToMarkdown(html, baseURL)
	if err != nil {
		return nil, err
	}

	if !hasHeading {
		title := res.Title
		if title == "" {
			title = parchment.DefaultTitle
		}
		md = "# " + title + "\n\n" + md
	}
	res.Markdown = strings.TrimSpace(md) + "\n"
	return res, nil
}

// contentRoot picks the candidate subtree with the most normalized visible
// text among article and main elements, falling back to body and finally
// the document itself.
func contentRoot(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	bestLen := -1
	doc.Find("article, main").Each(func(_ int, sel *goquery.Selection) {
		if n := len(normalizeText(sel.Text())); n > bestLen {
			best = sel
			bestLen = n
		}
	})
	if best != nil {
		return best
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var altCleaner = strings.NewReplacer("[", "", "]", "")

// cleanImageAlts strips bracket characters from alt text so alt content
// cannot break the Markdown image syntax it ends up inside.
func cleanImageAlts(root *goquery.Selection) {
	root.Find("img").Each(func(_ int, sel *goquery.Selection) {
		if alt, ok := sel.Attr("alt"); ok {
			sel.SetAttr("alt", altCleaner.Replace(alt))
		}
	})
}

func convertToMarkdown(html, baseURL string) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	var opts []converter.ConvertOptionFunc
	if baseURL != "" {
		opts = append(opts, converter.WithDomain(baseURL))
	}
	md, err := conv.ConvertString(html, opts...)
	if err != nil {
		return "", parchment.Errorf(parchment.EINTERNAL, "markdown conversion failed: %v", err)
	}
	return md, nil
}

func pageTitle(doc *goquery.Document, fallback string) string {
	if t := metaContent(doc, `meta[property="og:title"]`, `meta[name="twitter:title"]`); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return fallback
}

// metaContent returns the first non-empty content attribute among the given
// meta selectors, in preference order.
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if v, ok := doc.Find(selector).First().Attr("content"); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}
