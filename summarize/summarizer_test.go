package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/voicenote/ai"
	"github.com/poiesic/voicenote/ai/mock"
	"github.com/poiesic/voicenote/core"
)

func makeChunks(t *testing.T, texts ...string) []*core.Chunk {
	t.Helper()
	recordingID := core.NewID()
	transcriptionID := core.NewID()

	chunks := make([]*core.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = core.NewChunk(recordingID, transcriptionID, i+1, len(texts), text, time.Now().UTC())
	}
	return chunks
}

func TestNewSummarizerRequiresChatModel(t *testing.T) {
	_, err := NewSummarizer(nil)
	assert.ErrorIs(t, err, ErrChatModelRequired)
}

func TestSummarizeChunksOrderAndCount(t *testing.T) {
	chat := mock.NewMockChatModel()
	chat.CompleteFunc = func(ctx context.Context, req ai.CompletionRequest) (string, error) {
		// Identify the chunk from the prompt header so ordering is checkable.
		for _, line := range strings.Split(req.Prompt, "\n") {
			if strings.HasPrefix(line, "ChunkID: ") {
				return "summary for " + strings.TrimPrefix(line, "ChunkID: "), nil
			}
		}
		return "summary", nil
	}

	s, err := NewSummarizer(chat, WithPoolSize(4))
	require.NoError(t, err)
	defer s.Release()

	chunks := makeChunks(t, "first part", "second part", "third part")
	results := s.SummarizeChunks(context.Background(), chunks)

	require.Len(t, results, len(chunks))
	for i, result := range results {
		require.NotNil(t, result)
		assert.Equal(t, chunks[i].ID, result.ChunkID)
		assert.Equal(t, i+1, result.Position)
		assert.False(t, result.Failed)
		assert.Equal(t, "summary for "+string(chunks[i].ID), result.Text)
	}
	assert.Equal(t, 3, chat.CallCount())
}

func TestSummarizeChunksIsolatesFailures(t *testing.T) {
	chat := mock.NewMockChatModel()
	chat.CompleteFunc = func(ctx context.Context, req ai.CompletionRequest) (string, error) {
		if strings.Contains(req.Prompt, "chunk 2 of 3") {
			return "", errors.New("model unavailable")
		}
		return "a fine summary", nil
	}

	s, err := NewSummarizer(chat)
	require.NoError(t, err)
	defer s.Release()

	chunks := makeChunks(t, "alpha", "bravo", "charlie")
	results := s.SummarizeChunks(context.Background(), chunks)

	require.Len(t, results, 3)
	assert.False(t, results[0].Failed)
	assert.False(t, results[2].Failed)

	failed := results[1]
	assert.True(t, failed.Failed)
	assert.Equal(t, "model unavailable", failed.FailureReason)
	assert.Equal(t, fmt.Sprintf("Error summarizing %s: model unavailable", core.ChunkKey(2)), failed.Text)
}

func TestSummarizeChunksEmptyResponseBecomesFailure(t *testing.T) {
	chat := mock.NewMockChatModel()
	chat.CompleteFunc = func(ctx context.Context, req ai.CompletionRequest) (string, error) {
		return "   ", nil
	}

	s, err := NewSummarizer(chat)
	require.NoError(t, err)
	defer s.Release()

	results := s.SummarizeChunks(context.Background(), makeChunks(t, "only chunk"))
	require.Len(t, results, 1)
	assert.True(t, results[0].Failed)
}

func TestSummarizeChunksUsesChunkTemperature(t *testing.T) {
	chat := mock.NewMockChatModel()

	s, err := NewSummarizer(chat)
	require.NoError(t, err)
	defer s.Release()

	s.SummarizeChunks(context.Background(), makeChunks(t, "a chunk"))

	requests := chat.Requests()
	require.Len(t, requests, 1)
	assert.InDelta(t, chunkTemperature, requests[0].Temperature, 0.001)
	assert.False(t, requests[0].JSONMode)
	assert.Equal(t, systemPrompt, requests[0].System)
}

func TestStripChunkEcho(t *testing.T) {
	assert.Equal(t, "The summary.", stripChunkEcho("ChunkID: abc123\nThe summary."))
	assert.Equal(t, "The summary.", stripChunkEcho("The summary."))
	assert.Equal(t, "", stripChunkEcho("ChunkID: abc123"))
	assert.Equal(t, "", stripChunkEcho("   "))
}
