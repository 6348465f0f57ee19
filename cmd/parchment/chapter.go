package main

import (
	"fmt"
	"os"

	"github.com/telmet/parchment"
)

// Run executes the chapter command.
func (c *ChapterCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}

	p, _, err := newParser(c.Path, data, deps.Logger)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", parchment.ErrorMessage(err))
		return err
	}

	content, err := p.ChapterContent(c.Href)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", parchment.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, content)
	return nil
}
