package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/telmet/parchment"
)

// Run executes the toc command.
func (c *TocCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}

	p, _, err := newParser(c.Path, data, deps.Logger)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", parchment.ErrorMessage(err))
		return err
	}

	src, err := p.Parse()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", parchment.ErrorMessage(err))
		return err
	}

	if len(src.TOC) == 0 {
		fmt.Fprintln(deps.Stdout, "No table of contents.")
		return nil
	}

	printTree(deps, src.TOC, 0)
	return nil
}

func printTree(deps *Dependencies, items []*parchment.TOCItem, depth int) {
	for _, item := range items {
		fmt.Fprintf(deps.Stdout, "%s%s  (%s)\n", strings.Repeat("  ", depth), item.Title, item.Href)
		printTree(deps, item.Children, depth+1)
	}
}
