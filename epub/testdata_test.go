package epub_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

// buildArchive creates an in-memory ZIP archive from a path → content map.
func buildArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for name, content := range files {
		fw, err := zw.Create(name)
		if err != nil {
			t.Fatalf("buildArchive: create %s: %v", name, err)
		}
		if _, err := io.WriteString(fw, content); err != nil {
			t.Fatalf("buildArchive: write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("buildArchive: close writer: %v", err)
	}
	return buf.Bytes()
}

const containerXML = `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

const navOPF = `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="uid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Sample Book</dc:title>
    <dc:creator>Jane Writer</dc:creator>
    <dc:language>en</dc:language>
    <dc:publisher>Test House</dc:publisher>
    <dc:description>A small fixture.</dc:description>
  </metadata>
  <manifest>
    <item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>
    <item id="ch1" href="chapter1.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch2" href="chapter2.xhtml" media-type="application/xhtml+xml"/>
    <item id="cover-img" href="images/cover.jpg" media-type="image/jpeg"/>
  </manifest>
  <spine>
    <itemref idref="ch1"/>
    <itemref idref="ch2"/>
  </spine>
</package>`

const navDoc = `<?xml version="1.0"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<body>
<nav epub:type="toc">
  <ol>
    <li><a href="chapter1.xhtml">Chapter One</a>
      <ol>
        <li><a href="chapter1.xhtml#section2">Section Two</a></li>
      </ol>
    </li>
    <li><a href="chapter2.xhtml">Chapter Two</a></li>
  </ol>
</nav>
</body>
</html>`

const chapter1 = `<?xml version="1.0"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>Chapter One</title><style>p { color: red; }</style></head>
<body>
<h1>Chapter One</h1>
<p id="section2">Hello &amp; welcome.</p>
<img src="images/fig1.png" alt="figure"/>
<script>alert("nope")</script>
</body>
</html>`

const chapter2 = `<html><body><p>Second chapter.</p></body></html>`

// sampleBook returns a complete EPUB3-style fixture with a nav document.
func sampleBook(t *testing.T) []byte {
	t.Helper()
	return buildArchive(t, map[string]string{
		"mimetype":               "application/epub+zip",
		"META-INF/container.xml": containerXML,
		"OEBPS/content.opf":      navOPF,
		"OEBPS/nav.xhtml":        navDoc,
		"OEBPS/chapter1.xhtml":   chapter1,
		"OEBPS/chapter2.xhtml":   chapter2,
		"OEBPS/images/cover.jpg": "jpegbytes",
		"OEBPS/images/fig1.png":  "pngbytes",
	})
}
