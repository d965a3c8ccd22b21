package summarize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/voicenote/ai"
	"github.com/poiesic/voicenote/ai/mock"
	"github.com/poiesic/voicenote/core"
)

func summariesForTest() []*core.ChunkSummary {
	return []*core.ChunkSummary{
		{ChunkID: "c1", Position: 1, Text: "Discussed the launch date."},
		{ChunkID: "c2", Position: 2, Text: "Agreed on the budget."},
	}
}

func TestNewConsolidatorRequiresChatModel(t *testing.T) {
	_, err := NewConsolidator(nil)
	assert.ErrorIs(t, err, ErrChatModelRequired)
}

func TestConsolidateParsesJSONResponse(t *testing.T) {
	chat := mock.NewMockChatModel()
	chat.CompleteFunc = func(ctx context.Context, req ai.CompletionRequest) (string, error) {
		return `{"executiveSummary": "Launch planned.", "keyPoints": "- date\n- budget", "detailedSummary": "The launch and budget were settled."}`, nil
	}

	c, err := NewConsolidator(chat)
	require.NoError(t, err)

	result := c.Consolidate(context.Background(), summariesForTest())
	assert.Equal(t, "Launch planned.", result.ExecutiveSummary)
	assert.Equal(t, "- date\n- budget", result.KeyPoints)
	assert.Equal(t, "The launch and budget were settled.", result.DetailedSummary)
}

func TestConsolidateRequestsJSONMode(t *testing.T) {
	chat := mock.NewMockChatModel()
	chat.CompleteFunc = func(ctx context.Context, req ai.CompletionRequest) (string, error) {
		return `{"executiveSummary": "x", "keyPoints": "y", "detailedSummary": "z"}`, nil
	}

	c, err := NewConsolidator(chat)
	require.NoError(t, err)
	c.Consolidate(context.Background(), summariesForTest())

	requests := chat.Requests()
	require.Len(t, requests, 1)
	assert.True(t, requests[0].JSONMode)
	assert.InDelta(t, consolidationTemperature, requests[0].Temperature, 0.001)
	assert.Contains(t, requests[0].Prompt, "chunk_1")
	assert.Contains(t, requests[0].Prompt, "chunk_2")
	assert.Contains(t, requests[0].Prompt, "Discussed the launch date.")
}

func TestConsolidateToleratesFencedResponse(t *testing.T) {
	chat := mock.NewMockChatModel()
	chat.CompleteFunc = func(ctx context.Context, req ai.CompletionRequest) (string, error) {
		return "```json\n{\"executiveSummary\": \"Overview.\", \"keyPoints\": [\"one\", \"two\"], \"detailedSummary\": \"Details.\"}\n```", nil
	}

	c, err := NewConsolidator(chat)
	require.NoError(t, err)

	result := c.Consolidate(context.Background(), summariesForTest())
	assert.Equal(t, "Overview.", result.ExecutiveSummary)
	assert.Equal(t, "- one\n- two", result.KeyPoints)
	assert.Equal(t, "Details.", result.DetailedSummary)
}

func TestConsolidateFallsBackOnUnparseableResponse(t *testing.T) {
	chat := mock.NewMockChatModel()
	chat.CompleteFunc = func(ctx context.Context, req ai.CompletionRequest) (string, error) {
		return "Here is the combined summary in plain prose.", nil
	}

	c, err := NewConsolidator(chat)
	require.NoError(t, err)

	result := c.Consolidate(context.Background(), summariesForTest())
	assert.Equal(t, "Here is the combined summary in plain prose.", result.ExecutiveSummary)
	assert.Equal(t, "- Here is the combined summary in plain prose.", result.KeyPoints)
	assert.Equal(t, "Here is the combined summary in plain prose.", result.DetailedSummary)
}

func TestConsolidateDegradesOnCallFailure(t *testing.T) {
	chat := mock.NewMockChatModel()
	chat.CompleteFunc = func(ctx context.Context, req ai.CompletionRequest) (string, error) {
		return "", errors.New("connection refused")
	}

	c, err := NewConsolidator(chat)
	require.NoError(t, err)

	result := c.Consolidate(context.Background(), summariesForTest())
	assert.Contains(t, result.ExecutiveSummary, "connection refused")
	assert.Equal(t, result.ExecutiveSummary, result.KeyPoints)
	assert.Equal(t, result.ExecutiveSummary, result.DetailedSummary)
}

func TestParseConsolidated(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"plain object", `{"executiveSummary": "a", "keyPoints": "b", "detailedSummary": "c"}`, true},
		{"fenced object", "```json\n{\"executiveSummary\": \"a\", \"keyPoints\": \"b\", \"detailedSummary\": \"c\"}\n```", true},
		{"array key points", `{"executiveSummary": "a", "keyPoints": ["x"], "detailedSummary": "c"}`, true},
		{"unquoted key", `{executiveSummary": "a", "keyPoints": "b", "detailedSummary": "c"}`, true},
		{"empty", "", false},
		{"prose", "not json at all", false},
		{"empty object", "{}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := parseConsolidated(tt.raw)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestFallbackConsolidatedEmptyInput(t *testing.T) {
	result := fallbackConsolidated("")
	assert.NotEmpty(t, result.ExecutiveSummary)
	assert.NotEmpty(t, result.KeyPoints)
	assert.NotEmpty(t, result.DetailedSummary)
}

func TestFallbackConsolidatedTruncatesExecutive(t *testing.T) {
	long := ""
	for len(long) < 1000 {
		long += "All work and no play makes the summary long. "
	}

	result := fallbackConsolidated(long)
	assert.LessOrEqual(t, len(result.ExecutiveSummary), 300)
	assert.Equal(t, result.DetailedSummary, stripFences(long))
}
