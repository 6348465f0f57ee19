package epub

import (
	"archive/zip"
	"encoding/xml"
	"strings"

	"github.com/telmet/parchment"
)

// containerPath is the well-known location of the container descriptor.
const containerPath = "META-INF/container.xml"

// containerXML models the container descriptor used to locate the package
// description file.
type containerXML struct {
	XMLName   xml.Name   `xml:"container"`
	RootFiles []rootFile `xml:"rootfiles>rootfile"`
}

type rootFile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// rootfilePath locates and parses the container descriptor and returns the
// package description file path. A missing or unreadable descriptor is a
// structural error.
func rootfilePath(zr *zip.Reader) (string, error) {
	f := findFile(zr, containerPath)
	if f == nil {
		return "", parchment.Errorf(parchment.EINVALID, "missing container descriptor %s", containerPath)
	}

	data, err := readZipEntry(f)
	if err != nil {
		return "", parchment.Errorf(parchment.EINVALID, "read container descriptor: %v", err)
	}

	var c containerXML
	if err := xml.Unmarshal(stripBOM(data), &c); err != nil {
		return "", parchment.Errorf(parchment.EINVALID, "parse container descriptor: %v", err)
	}

	// Prefer the rootfile declaring the package media type; otherwise take
	// the first non-empty full-path.
	var fallback string
	for _, rf := range c.RootFiles {
		fullPath := strings.TrimSpace(rf.FullPath)
		if fullPath == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(rf.MediaType), "application/oebps-package+xml") {
			return fullPath, nil
		}
		if fallback == "" {
			fallback = fullPath
		}
	}

	if fallback == "" {
		return "", parchment.Errorf(parchment.EINVALID, "container descriptor has no rootfile reference")
	}
	return fallback, nil
}
