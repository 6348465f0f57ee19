package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telmet/parchment"
	"github.com/telmet/parchment/mock"
	parchslog "github.com/telmet/parchment/slog"
)

func TestLoggingParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("logs counts and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Parser{
			ParseFn: func() (*parchment.Source, error) {
				return &parchment.Source{
					Metadata: parchment.Metadata{Title: "Book"},
					TOC:      []*parchment.TOCItem{{ID: "a", Title: "A", Href: "a.html"}},
					Spine:    []parchment.SpineItem{{ID: "a", Href: "a.html"}},
				}, nil
			},
		}

		p := parchslog.NewLoggingParser(inner, parchment.FormatEPUB, logger)
		src, err := p.Parse()

		require.NoError(t, err)
		assert.Equal(t, "Book", src.Metadata.Title)
		output := buf.String()
		assert.Contains(t, output, "parse")
		assert.Contains(t, output, "format="+string(parchment.FormatEPUB))
		assert.Contains(t, output, "toc=1")
		assert.Contains(t, output, "spine=1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Parser{
			ParseFn: func() (*parchment.Source, error) {
				return nil, parchment.Errorf(parchment.EINVALID, "bad container")
			},
		}

		p := parchslog.NewLoggingParser(inner, parchment.FormatEPUB, logger)
		_, err := p.Parse()

		require.Error(t, err)
		assert.Contains(t, buf.String(), "bad container")
	})
}

func TestLoggingParser_ChapterContent(t *testing.T) {
	t.Parallel()

	t.Run("delegates and returns content", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Parser{
			ChapterContentFn: func(href string) (string, error) {
				assert.Equal(t, "ch1.html", href)
				return "<p>hi</p>", nil
			},
		}

		p := parchslog.NewLoggingParser(inner, parchment.FormatEPUB, logger)
		content, err := p.ChapterContent("ch1.html")

		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", content)
	})
}
