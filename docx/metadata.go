package docx

import (
	"archive/zip"
	"bytes"
	"io"

	"github.com/beevik/etree"

	"github.com/telmet/parchment"
)

const corePropsPath = "docProps/core.xml"

// metadata reads the document's core properties. Every failure degrades to
// a defaulted record; metadata extraction never aborts a parse.
func (p *Parser) metadata() parchment.Metadata {
	md := parchment.Metadata{Title: parchment.DefaultTitle}

	zr, err := zip.NewReader(bytes.NewReader(p.data), int64(len(p.data)))
	if err != nil {
		return md
	}

	var propsXML []byte
	for _, f := range zr.File {
		if f.Name == corePropsPath {
			rc, err := f.Open()
			if err != nil {
				return md
			}
			propsXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return md
			}
			break
		}
	}
	if propsXML == nil {
		return md
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(propsXML); err != nil {
		return md
	}
	root := doc.Root()
	if root == nil {
		return md
	}

	if el := root.SelectElement("dc:title"); el != nil && el.Text() != "" {
		md.Title = el.Text()
	}
	if el := root.SelectElement("dc:creator"); el != nil {
		md.Author = el.Text()
	}
	if el := root.SelectElement("dc:language"); el != nil {
		md.Language = el.Text()
	}
	if el := root.SelectElement("dc:description"); el != nil {
		md.Description = el.Text()
	}
	return md
}
