package epub

import (
	"path"
	"slices"
	"strings"
)

// cover resolves and loads the cover image. Three strategies are tried in
// order; first match wins. Absence is never an error; both return values
// are zero when no cover can be resolved.
func (b *book) cover() ([]byte, string) {
	href := b.coverHref()
	if href == "" {
		return nil, ""
	}

	data, err := readFile(b.zr, resolvePath(b.baseDir, href))
	if err != nil {
		return nil, ""
	}
	return data, coverMIME(href)
}

func (b *book) coverHref() string {
	// Strategy 1: explicit <meta name="cover" content="ID"/> pointing at a
	// manifest id.
	for _, m := range b.opf.Metadata.Metas {
		if strings.EqualFold(m.Name, "cover") && m.Content != "" {
			if mi, ok := b.manifest[m.Content]; ok && mi.Href != "" {
				return mi.Href
			}
		}
	}

	// Strategy 2: manifest item whose properties include the cover marker.
	for _, it := range b.opf.Manifest.Items {
		if slices.Contains(strings.Fields(it.Properties), "cover-image") {
			return it.Href
		}
	}

	// Strategy 3: manifest item whose id mentions "cover" and whose media
	// type is an image type.
	for _, it := range b.opf.Manifest.Items {
		if strings.Contains(strings.ToLower(it.ID), "cover") &&
			strings.HasPrefix(strings.ToLower(it.MediaType), "image/") {
			return it.Href
		}
	}

	return ""
}

// coverMIME guesses the MIME type from the file extension, defaulting to
// JPEG.
func coverMIME(href string) string {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(hrefWithoutFragment(href)), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
