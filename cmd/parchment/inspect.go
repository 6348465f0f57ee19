package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/telmet/parchment"
)

// inspection is the result of parsing one document.
type inspection struct {
	Path        string
	SourceID    string
	Fingerprint string
	Format      parchment.Format
	Source      *parchment.Source
	Err         error
}

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	results := make([]inspection, len(c.Paths))

	g, _ := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)
	for i, path := range c.Paths {
		g.Go(func() error {
			results[i] = inspect(path, deps)
			return nil
		})
	}
	_ = g.Wait()

	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.Path, parchment.ErrorMessage(r.Err))
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s\n", r.Path)
		fmt.Fprintf(deps.Stdout, "  id:          %s\n", r.SourceID)
		fmt.Fprintf(deps.Stdout, "  fingerprint: %s\n", r.Fingerprint)
		fmt.Fprintf(deps.Stdout, "  format:      %s\n", r.Format)
		fmt.Fprintf(deps.Stdout, "  title:       %s\n", r.Source.Metadata.Title)
		if r.Source.Metadata.Author != "" {
			fmt.Fprintf(deps.Stdout, "  author:      %s\n", r.Source.Metadata.Author)
		}
		fmt.Fprintf(deps.Stdout, "  toc:         %d entries\n", parchment.CountTOC(r.Source.TOC))
		fmt.Fprintf(deps.Stdout, "  spine:       %d entries\n", len(r.Source.Spine))
		if len(r.Source.Cover) > 0 {
			fmt.Fprintf(deps.Stdout, "  cover:       %s, %d bytes\n", r.Source.CoverMIME, len(r.Source.Cover))
		}
	}
	return firstErr
}

func inspect(path string, deps *Dependencies) inspection {
	r := inspection{Path: path, SourceID: uuid.NewString()}

	data, err := os.ReadFile(path)
	if err != nil {
		r.Err = err
		return r
	}
	r.Fingerprint = parchment.Fingerprint(data)

	p, format, err := newParser(path, data, deps.Logger)
	if err != nil {
		r.Err = err
		return r
	}
	r.Format = format

	r.Source, r.Err = p.Parse()
	return r
}
