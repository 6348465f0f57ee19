// Package slog provides logging decorators for parsers.
package slog

import (
	"log/slog"
	"time"

	"github.com/telmet/parchment"
)

// Ensure LoggingParser implements parchment.Parser.
var _ parchment.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with structured logging of parse outcomes
// and chapter lookups.
type LoggingParser struct {
	next   parchment.Parser
	format parchment.Format
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next parchment.Parser, format parchment.Format, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, format: format, logger: logger}
}

// Parse delegates to the wrapped parser and logs the outcome.
func (p *LoggingParser) Parse() (*parchment.Source, error) {
	begin := time.Now()
	src, err := p.next.Parse()
	if err != nil {
		p.logger.Error("parse",
			"format", string(p.format),
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	p.logger.Info("parse",
		"format", string(p.format),
		"duration", time.Since(begin),
		"title", src.Metadata.Title,
		"toc", parchment.CountTOC(src.TOC),
		"spine", len(src.Spine),
	)
	return src, nil
}

// ChapterContent delegates to the wrapped parser and logs the lookup.
func (p *LoggingParser) ChapterContent(href string) (string, error) {
	begin := time.Now()
	content, err := p.next.ChapterContent(href)
	if err != nil {
		p.logger.Error("chapter",
			"format", string(p.format),
			"href", href,
			"duration", time.Since(begin),
			"err", err,
		)
		return "", err
	}
	p.logger.Debug("chapter",
		"format", string(p.format),
		"href", href,
		"duration", time.Since(begin),
		"bytes", len(content),
	)
	return content, nil
}
