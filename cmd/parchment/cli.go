package main

import (
	"context"
	"io"
	"log/slog"
)

// Dependencies holds shared services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Inspect InspectCmd `cmd:"" help:"Parse documents and print a summary"`
	Toc     TocCmd     `cmd:"" help:"Print a document's table of contents"`
	Chapter ChapterCmd `cmd:"" help:"Print one chapter as HTML"`
	Cover   CoverCmd   `cmd:"" help:"Extract a document's cover image"`
	Capture CaptureCmd `cmd:"" help:"Convert captured page HTML to Markdown"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	Paths       []string `arg:"" help:"Document files to inspect"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent parse limit"`
}

// TocCmd is the "toc" subcommand.
type TocCmd struct {
	Path string `arg:"" help:"Document file"`
}

// ChapterCmd is the "chapter" subcommand.
type ChapterCmd struct {
	Path string `arg:"" help:"Document file"`
	Href string `arg:"" help:"Chapter token from the TOC or spine"`
}

// CoverCmd is the "cover" subcommand.
type CoverCmd struct {
	Path string `arg:"" help:"Document file"`
	Out  string `short:"o" help:"Output file (defaults to cover.<ext> next to the document)"`
}

// CaptureCmd is the "capture" subcommand.
type CaptureCmd struct {
	Path  string `arg:"" help:"HTML file to convert"`
	URL   string `short:"u" help:"Base URL for resolving relative links"`
	Title string `short:"t" help:"Fallback title when the page declares none"`
}
