package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/telmet/parchment"
)

// Run executes the cover command.
func (c *CoverCmd) Run(deps *Dependencies) error {
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

	if len(src.Cover) == 0 {
		fmt.Fprintf(deps.Stderr, "error: %s has no cover image\n", c.Path)
		return parchment.Errorf(parchment.ENOTFOUND, "no cover image in %q", c.Path)
	}

	out := c.Out
	if out == "" {
		out = filepath.Join(filepath.Dir(c.Path), "cover"+coverExt(src.CoverMIME))
	}
	if err := os.WriteFile(out, src.Cover, 0644); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "wrote %s (%s, %d bytes)\n", out, src.CoverMIME, len(src.Cover))
	return nil
}

func coverExt(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/svg+xml":
		return ".svg"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
