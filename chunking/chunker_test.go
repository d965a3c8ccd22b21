package chunking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	assert.Equal(t, DefaultChunkSize, c.ChunkSize())
	assert.Equal(t, DefaultChunkOverlap, c.ChunkOverlap())
}

func TestNewRejectsBadParameters(t *testing.T) {
	_, err := New(WithChunkSize(0))
	assert.Error(t, err)

	_, err = New(WithChunkOverlap(-1))
	assert.Error(t, err)

	_, err = New(WithChunkSize(100), WithChunkOverlap(100))
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hello world", Normalize("  hello \n\n world \t", false))
	assert.Equal(t, "Hello World", Normalize("Hello   World", false))
	assert.Equal(t, "hello world", Normalize("Hello   World", true))
	assert.Equal(t, "", Normalize(" \n \t ", false))
}

func TestChunkEmptyTranscript(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	chunks, err := c.Chunk("")
	require.NoError(t, err)
	assert.Empty(t, chunks)

	chunks, err = c.Chunk("   \n\n\t  ")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunkShortTranscript(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	chunks, err := c.Chunk("A quick note about tomorrow's meeting.")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "A quick note about tomorrow's meeting.", chunks[0])
}

func TestChunkPreservesCaseByDefault(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	chunks, err := c.Chunk("Meeting with NASA about Artemis.")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Meeting with NASA about Artemis.", chunks[0])

	folded, err := New(WithCaseFolding(true))
	require.NoError(t, err)
	chunks, err = folded.Chunk("Meeting with NASA about Artemis.")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "meeting with nasa about artemis.", chunks[0])
}

func TestChunkLongTranscriptSplits(t *testing.T) {
	c, err := New(WithChunkSize(100), WithChunkOverlap(10))
	require.NoError(t, err)

	// About 450 tokens worth of text against a 100-token chunk size.
	sentence := "The quarterly review covered revenue, churn, and the hiring plan for the platform team. "
	transcript := strings.Repeat(sentence, 20)

	chunks, err := c.Chunk(transcript)
	require.NoError(t, err)
	assert.Greater(t, len(chunks), 1)

	for _, chunk := range chunks {
		assert.NotEmpty(t, chunk)
		// Character budget is tokens * 4.
		assert.LessOrEqual(t, len(chunk), c.ChunkSize()*TokenCharRatio)
	}
}

func TestChunkDefaultsOnLongTranscript(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	// 9000 characters against the default 2000-token (8000-char) chunk size
	// with 200-token overlap splits into two chunks.
	sentence := "The team walked through the incident timeline and noted every follow-up action. "
	transcript := strings.Repeat(sentence, 113)
	require.Greater(t, len(transcript), 9000)

	chunks, err := c.Chunk(transcript)
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
}

func TestChunkDeterministic(t *testing.T) {
	c, err := New(WithChunkSize(50), WithChunkOverlap(5))
	require.NoError(t, err)

	transcript := strings.Repeat("Ideas for the launch. Follow up with design. ", 30)

	first, err := c.Chunk(transcript)
	require.NoError(t, err)
	second, err := c.Chunk(transcript)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestChunkCoversTranscript(t *testing.T) {
	c, err := New(WithChunkSize(50), WithChunkOverlap(5))
	require.NoError(t, err)

	transcript := strings.Repeat("Remember to send the contract to the vendor on Friday. ", 25)
	normalized := Normalize(transcript, false)

	chunks, err := c.Chunk(transcript)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	// Every chunk is a contiguous piece of the normalized transcript.
	for _, chunk := range chunks {
		require.True(t, strings.Contains(normalized, chunk),
			"chunk not found in transcript: %q", chunk)
	}

	// The tail of the transcript is covered by the final chunk.
	final := chunks[len(chunks)-1]
	assert.True(t, strings.HasSuffix(normalized, final))
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
}
