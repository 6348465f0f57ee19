// Package epub implements the archive-packaged book parser: a ZIP container
// with an XML package description, a navigation document (or legacy NCX), a
// declared reading order, and per-chapter XHTML content files.
package epub

import (
	"archive/zip"
	"bytes"
	"path"
	"strings"

	"github.com/telmet/parchment"
)

// Ensure Parser implements parchment.Parser at compile time.
var _ parchment.Parser = (*Parser)(nil)

// Parser parses EPUB-style packaged books from an in-memory byte buffer.
// A Parser holds no cross-call mutable state; every operation re-opens the
// archive, so distinct logical requests may share one Parser freely.
type Parser struct {
	data     []byte
	sourceID string
}

// Option configures a Parser.
type Option func(*Parser)

// WithSourceID sets the owning source's id, which is encoded into rewritten
// asset-fetch paths so a serving layer can route image requests back to the
// right archive.
func WithSourceID(id string) Option {
	return func(p *Parser) { p.sourceID = id }
}

// New returns a Parser over the raw bytes of a ZIP-structured package.
// Structural problems surface from Parse or ChapterContent, not here.
func New(data []byte, opts ...Option) *Parser {
	p := &Parser{data: data}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// book is the opened view of one archive: ZIP reader, parsed package
// description, and the base directory all relative references resolve
// against. It lives for the duration of a single operation.
type book struct {
	zr       *zip.Reader
	opf      *opfPackage
	opfPath  string
	baseDir  string
	manifest map[string]manifestItem
}

// manifestItem is the processed form of one declared package item.
type manifestItem struct {
	ID         string
	Href       string
	MediaType  string
	Properties string
}

func (p *Parser) open() (*book, error) {
	zr, err := zip.NewReader(bytes.NewReader(p.data), int64(len(p.data)))
	if err != nil {
		return nil, parchment.Errorf(parchment.EINVALID, "not a ZIP archive: %v", err)
	}

	opfPath, err := rootfilePath(zr)
	if err != nil {
		return nil, err
	}

	opfData, err := readFile(zr, opfPath)
	if err != nil {
		return nil, parchment.Errorf(parchment.EINVALID, "package file %q missing from archive", opfPath)
	}

	opf, err := parseOPF(opfData)
	if err != nil {
		return nil, err
	}

	baseDir := path.Dir(opfPath)
	if baseDir == "." {
		baseDir = ""
	}

	manifest := make(map[string]manifestItem, len(opf.Manifest.Items))
	for _, it := range opf.Manifest.Items {
		manifest[it.ID] = manifestItem{
			ID:         it.ID,
			Href:       it.Href,
			MediaType:  it.MediaType,
			Properties: it.Properties,
		}
	}

	return &book{
		zr:       zr,
		opf:      opf,
		opfPath:  opfPath,
		baseDir:  baseDir,
		manifest: manifest,
	}, nil
}

// Parse extracts metadata, the TOC tree, the spine and the cover image.
// Only structural errors (missing container descriptor, missing or invalid
// package file) abort; everything else degrades to defaults.
func (p *Parser) Parse() (*parchment.Source, error) {
	b, err := p.open()
	if err != nil {
		return nil, err
	}

	src := &parchment.Source{
		Metadata: buildMetadata(b.opf),
		TOC:      b.buildTOC(),
		Spine:    b.buildSpine(),
	}
	src.Cover, src.CoverMIME = b.cover()
	return src, nil
}

// buildSpine converts the package's declared reading-order item references
// into spine items, resolving each through the manifest map. Itemrefs that
// do not resolve are skipped, keeping order values contiguous.
func (b *book) buildSpine() []parchment.SpineItem {
	items := make([]parchment.SpineItem, 0, len(b.opf.Spine.ItemRefs))
	for _, ref := range b.opf.Spine.ItemRefs {
		mi, ok := b.manifest[ref.IDRef]
		if !ok || mi.Href == "" {
			continue
		}
		items = append(items, parchment.SpineItem{
			ID:    ref.IDRef,
			Href:  mi.Href,
			Order: len(items),
		})
	}
	return items
}

// relToBase converts a ZIP-internal path into a package-relative href so TOC
// and spine tokens share one resolution rule in ChapterContent. Paths
// outside the package directory get explicit parent segments so the same
// rule still resolves them back to their archive location.
func (b *book) relToBase(zipPath string) string {
	if b.baseDir == "" {
		return zipPath
	}
	if rel := strings.TrimPrefix(zipPath, b.baseDir+"/"); rel != zipPath {
		return rel
	}
	climb := strings.Count(b.baseDir, "/") + 1
	return strings.Repeat("../", climb) + zipPath
}
