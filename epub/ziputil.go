package epub

import (
	"archive/zip"
	"bytes"
	"io"
	"net/url"
	"path"
	"strings"
)

// findFile locates a ZIP entry by path, case-insensitively. Real archives
// disagree about case more often than they should.
func findFile(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	lower := strings.ToLower(name)
	for _, f := range zr.File {
		if strings.ToLower(f.Name) == lower {
			return f
		}
	}
	return nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// readFile reads a ZIP entry by path with the BOM stripped. Returns an error
// if the entry does not exist.
func readFile(zr *zip.Reader, name string) ([]byte, error) {
	f := findFile(zr, name)
	if f == nil {
		return nil, errNotInArchive
	}
	data, err := readZipEntry(f)
	if err != nil {
		return nil, err
	}
	return stripBOM(data), nil
}

type archiveError string

func (e archiveError) Error() string { return string(e) }

const errNotInArchive = archiveError("epub: file not found in archive")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// resolvePath resolves a possibly URL-escaped relative href against a base
// directory inside the archive and normalizes the result to a clean,
// forward-slash ZIP path.
func resolvePath(baseDir, href string) string {
	if unescaped, err := url.PathUnescape(href); err == nil {
		href = unescaped
	}
	joined := path.Clean(path.Join(baseDir, href))
	return strings.TrimPrefix(joined, "/")
}

// hrefWithoutFragment strips the #fragment suffix, if any. Chapter lookup is
// fragment-insensitive.
func hrefWithoutFragment(href string) string {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		return href[:i]
	}
	return href
}
