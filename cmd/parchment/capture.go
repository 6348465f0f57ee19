package main

import (
	"fmt"
	"os"

	"github.com/telmet/parchment"
	"github.com/telmet/parchment/web"
)

// Run executes the capture command.
func (c *CaptureCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}

	res, err := web.Capture(string(data), c.URL, c.Title)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", parchment.ErrorMessage(err))
		return err
	}

	deps.Logger.Info("capture",
		"path", c.Path,
		"title", res.Title,
		"bytes", len(res.Markdown),
	)

	fmt.Fprint(deps.Stdout, res.Markdown)
	return nil
}
