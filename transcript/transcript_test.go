package transcript_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telmet/parchment"
	"github.com/telmet/parchment/transcript"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("SingleChapter", func(t *testing.T) {
		t.Parallel()
		p := transcript.New(parchment.Metadata{Title: "Interview"}, nil)
		src, err := p.Parse()
		require.NoError(t, err)
		require.Len(t, src.TOC, 1)
		require.Len(t, src.Spine, 1)
		assert.Equal(t, "Interview", src.TOC[0].Title)
		assert.Equal(t, transcript.Href, src.Spine[0].Href)
		assert.NoError(t, src.Validate())
	})

	t.Run("DefaultTitle", func(t *testing.T) {
		t.Parallel()
		src, err := transcript.New(parchment.Metadata{}, nil).Parse()
		require.NoError(t, err)
		assert.Equal(t, "Transcript", src.Metadata.Title)
		assert.Equal(t, "Transcript", src.TOC[0].Title)
	})
}

func TestChapterContent(t *testing.T) {
	t.Parallel()

	t.Run("TimestampsAndOffsets", func(t *testing.T) {
		t.Parallel()
		p := transcript.New(parchment.Metadata{}, []parchment.Snippet{
			{Text: "hello", Start: 0, Duration: 2},
			{Text: "ninety seconds in", Start: 90.5, Duration: 3},
			{Text: "past the hour", Start: 3725, Duration: 4},
		})
		got, err := p.ChapterContent(transcript.Href)
		require.NoError(t, err)
		assert.Contains(t, got, `<p data-start="0">[00:00] hello</p>`)
		assert.Contains(t, got, `<p data-start="90.5">[01:30] ninety seconds in</p>`)
		assert.Contains(t, got, `<p data-start="3725">[1:02:05] past the hour</p>`)
	})

	t.Run("TextEscaped", func(t *testing.T) {
		t.Parallel()
		p := transcript.New(parchment.Metadata{}, []parchment.Snippet{
			{Text: "<b>bold</b> & co", Start: 1},
		})
		got, err := p.ChapterContent("anything")
		require.NoError(t, err)
		assert.Contains(t, got, "&lt;b&gt;bold&lt;/b&gt; &amp; co")
		assert.NotContains(t, got, "<b>")
	})

	t.Run("EmptyTranscript", func(t *testing.T) {
		t.Parallel()
		got, err := transcript.New(parchment.Metadata{}, nil).ChapterContent(transcript.Href)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
