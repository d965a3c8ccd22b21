package voicenote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/voicenote/ai"
	"github.com/poiesic/voicenote/ai/mock"
	"github.com/poiesic/voicenote/core"
	"github.com/poiesic/voicenote/storage"
)

func newTestService(t *testing.T) (*Service, *mock.MockProvider) {
	t.Helper()

	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockChatModel().CompleteFunc = func(ctx context.Context, req ai.CompletionRequest) (string, error) {
		if req.JSONMode {
			return `{"executiveSummary": "Overview.", "keyPoints": "- point", "detailedSummary": "Details."}`, nil
		}
		return "A chunk summary.", nil
	}

	svc, err := NewService("", WithInMemory(true), WithProvider(provider))
	require.NoError(t, err)
	t.Cleanup(func() {
		svc.Close()
	})
	return svc, provider
}

func TestNewServiceOnDisk(t *testing.T) {
	svc, err := NewService(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.NoError(t, svc.Close())
}

func TestAddRecordingStoresAudio(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	recording, err := svc.AddRecording(ctx, core.NewID(), []byte("fake audio bytes"), "note.m4a")
	require.NoError(t, err)
	assert.Equal(t, core.StatusRecorded, recording.Status)
	assert.NotEmpty(t, recording.AudioPath)

	got, err := svc.Recording(ctx, recording.ID)
	require.NoError(t, err)
	assert.Equal(t, recording.AudioPath, got.AudioPath)
}

func TestTranscribeRecording(t *testing.T) {
	svc, provider := newTestService(t)
	ctx := context.Background()

	provider.GetMockTranscriber().TranscribeFunc = func(ctx context.Context, audio []byte, filename string) (string, error) {
		assert.Equal(t, "note.m4a", filename)
		return "This is what was said.", nil
	}

	recording, err := svc.AddRecording(ctx, core.NewID(), []byte("fake audio"), "note.m4a")
	require.NoError(t, err)

	transcription, err := svc.Transcribe(ctx, recording.ID)
	require.NoError(t, err)
	assert.Equal(t, recording.ID, transcription.RecordingID)

	text, err := svc.Transcript(ctx, recording.ID)
	require.NoError(t, err)
	assert.Equal(t, "This is what was said.", text)

	got, err := svc.Recording(ctx, recording.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusTranscribed, got.Status)
}

func TestTranscribeWithoutAudio(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	recording := &core.Recording{ID: core.NewID(), UserID: core.NewID(), Status: core.StatusRecorded}
	require.NoError(t, svc.stores.Recordings.AddRecording(ctx, recording))

	_, err := svc.Transcribe(ctx, recording.ID)
	assert.ErrorIs(t, err, ErrNoAudio)
}

func TestTranscriptFlowEndToEnd(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	recording, err := svc.AddRecording(ctx, core.NewID(), []byte("audio"), "note.wav")
	require.NoError(t, err)

	_, err = svc.AddTranscript(ctx, recording.ID,
		"We reviewed the roadmap and agreed to ship the beta in March.")
	require.NoError(t, err)

	result := svc.Process(ctx, recording.ID)
	require.Equal(t, core.PipelineSuccess, result.Status)
	require.NotNil(t, result.UnifiedSummary)

	summary, err := svc.UnifiedSummary(ctx, recording.ID)
	require.NoError(t, err)
	assert.Equal(t, result.SummaryID, summary.SummaryID)

	got, err := svc.Recording(ctx, recording.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusSummarized, got.Status)
}

func TestUnifiedSummaryBeforeProcessing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UnifiedSummary(context.Background(), core.NewID())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
