// Package mock provides mock implementations for testing.
package mock

import (
	"github.com/telmet/parchment"
)

var _ parchment.Parser = (*Parser)(nil)

// Parser is a mock implementation of parchment.Parser.
type Parser struct {
	ParseFn          func() (*parchment.Source, error)
	ChapterContentFn func(href string) (string, error)
}

func (p *Parser) Parse() (*parchment.Source, error) {
	return p.ParseFn()
}

func (p *Parser) ChapterContent(href string) (string, error) {
	return p.ChapterContentFn(href)
}
