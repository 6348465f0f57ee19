package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/telmet/parchment"
	"github.com/telmet/parchment/docx"
	"github.com/telmet/parchment/epub"
	"github.com/telmet/parchment/markdown"
	"github.com/telmet/parchment/pdf"
	parchslog "github.com/telmet/parchment/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("parchment"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'parchment --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	pdf.Setup()

	return kongCtx.Run(deps)
}

// newParser selects a parser by file extension.
func newParser(path string, data []byte, logger *slog.Logger) (parchment.Parser, parchment.Format, error) {
	format := parchment.DetectFormat(path)

	var p parchment.Parser
	switch format {
	case parchment.FormatEPUB:
		p = epub.New(data)
	case parchment.FormatDOCX:
		p = docx.New(data)
	case parchment.FormatPDF:
		p = pdf.New(data)
	case parchment.FormatMarkdown:
		p = markdown.New(data)
	default:
		return nil, format, parchment.Errorf(parchment.EINVALID, "unsupported document type: %s", path)
	}

	return parchslog.NewLoggingParser(p, format, logger), format, nil
}
