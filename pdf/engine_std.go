package pdf

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpulib "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/telmet/parchment"
)

// configureEngine disables the shared engine's per-user configuration
// directory lookup so parsing works in read-only environments.
func configureEngine() {
	api.DisableConfigDir()
}

// stdEngine is the production Engine: text and document info come from the
// low-level reader, bookmark resolution (including named destinations) from
// the pdfcpu toolkit.
type stdEngine struct{}

// NewEngine returns the default PDF engine, performing the one-time global
// setup if it has not happened yet.
func NewEngine() Engine {
	Setup()
	return stdEngine{}
}

func (stdEngine) Open(data []byte) (Document, error) {
	r, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, parchment.Errorf(parchment.EINVALID, "open PDF: %v", err)
	}
	return &stdDocument{r: r, data: data}, nil
}

type stdDocument struct {
	r    *pdflib.Reader
	data []byte
}

func (d *stdDocument) NumPages() int {
	return d.r.NumPage()
}

// Info reads document-info title/author, falling back to the embedded XMP
// descriptive fields. The low-level reader panics on malformed values, so
// everything is wrapped in a recover and degraded to empty fields.
func (d *stdDocument) Info() (info DocInfo, err error) {
	defer func() {
		if recover() != nil {
			info = DocInfo{}
		}
	}()

	dict := d.r.Trailer().Key("Info")
	info.Title = stringValue(dict.Key("Title"))
	info.Author = stringValue(dict.Key("Author"))

	if info.Title == "" || info.Author == "" {
		xmpTitle, xmpAuthor := d.xmpFields()
		if info.Title == "" {
			info.Title = xmpTitle
		}
		if info.Author == "" {
			info.Author = xmpAuthor
		}
	}
	return info, nil
}

func stringValue(v pdflib.Value) string {
	if v.Kind() != pdflib.String {
		return ""
	}
	return strings.TrimSpace(v.Text())
}

var (
	xmpTitlePattern  = regexp.MustCompile(`(?s)<dc:title>.*?<rdf:li[^>]*>(.*?)</rdf:li>`)
	xmpCreatorPattern = regexp.MustCompile(`(?s)<dc:creator>.*?<rdf:li[^>]*>(.*?)</rdf:li>`)
)

// xmpFields scans the document metadata stream for descriptive title and
// creator fields. Best-effort only.
func (d *stdDocument) xmpFields() (title, author string) {
	meta := d.r.Trailer().Key("Root").Key("Metadata")
	if meta.Kind() != pdflib.Stream {
		return "", ""
	}
	raw, err := io.ReadAll(meta.Reader())
	if err != nil {
		return "", ""
	}
	if m := xmpTitlePattern.FindSubmatch(raw); m != nil {
		title = strings.TrimSpace(string(m[1]))
	}
	if m := xmpCreatorPattern.FindSubmatch(raw); m != nil {
		author = strings.TrimSpace(string(m[1]))
	}
	return title, author
}

// Outline extracts the embedded bookmark tree and flattens it depth-first.
// pdfcpu resolves both inline page references and named destinations to
// page numbers; bookmarks it cannot resolve never reach the result.
func (d *stdDocument) Outline() ([]OutlineEntry, error) {
	bms, err := api.Bookmarks(bytes.NewReader(d.data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}

	var entries []OutlineEntry
	flattenBookmarks(bms, &entries)
	return entries, nil
}

func flattenBookmarks(bms []pdfcpulib.Bookmark, out *[]OutlineEntry) {
	for _, bm := range bms {
		if bm.PageFrom > 0 {
			*out = append(*out, OutlineEntry{
				Title: strings.TrimSpace(bm.Title),
				Page:  bm.PageFrom,
			})
		}
		flattenBookmarks(bm.Kids, out)
	}
}

// PageText extracts the page's text runs in reading order, one run per text
// item, marking the final run of every visual row as ending a line.
func (d *stdDocument) PageText(page int) (runs []TextRun, err error) {
	defer func() {
		if recover() != nil {
			runs = nil
		}
	}()

	p := d.r.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}

	rows, err := p.GetTextByRow()
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		for i, text := range row.Content {
			runs = append(runs, TextRun{
				Text:      text.S,
				EndOfLine: i == len(row.Content)-1,
			})
		}
	}
	return runs, nil
}
