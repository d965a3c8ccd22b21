package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/voicenote/core"
	"github.com/poiesic/voicenote/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingStore_AddGet(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	recording := &core.Recording{
		ID:        "rec-1",
		UserID:    "user-1",
		Status:    core.StatusRecorded,
		AudioPath: "Recordings/rec-1/audio.webm",
	}
	require.NoError(t, stores.Recordings.AddRecording(ctx, recording))
	assert.False(t, recording.CreatedAt.IsZero())

	got, err := stores.Recordings.GetRecording(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, core.StatusRecorded, got.Status)
	assert.Equal(t, core.ID("user-1"), got.UserID)
}

func TestRecordingStore_AddDuplicate(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	recording := &core.Recording{ID: "rec-1", UserID: "user-1", Status: core.StatusRecorded}
	require.NoError(t, stores.Recordings.AddRecording(ctx, recording))

	err := stores.Recordings.AddRecording(ctx, recording)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestRecordingStore_SetStatus(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	recording := &core.Recording{ID: "rec-1", UserID: "user-1", Status: core.StatusRecorded}
	require.NoError(t, stores.Recordings.AddRecording(ctx, recording))

	require.NoError(t, stores.Recordings.SetRecordingStatus(ctx, "rec-1", core.StatusError, "transcription failed"))

	got, err := stores.Recordings.GetRecording(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, core.StatusError, got.Status)
	assert.Equal(t, "transcription failed", got.StatusMessage)

	// Unknown status values are rejected.
	err = stores.Recordings.SetRecordingStatus(ctx, "rec-1", "archived", "")
	assert.ErrorIs(t, err, core.ErrInvalidStatus)
}

func TestRecordingStore_GetMissing(t *testing.T) {
	stores := newTestStores(t)

	_, err := stores.Recordings.GetRecording(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTranscriptionStore_CurrentPicksMostRecent(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	older := &core.Transcription{
		ID: "trn-1", RecordingID: "rec-1", UserID: "user-1",
		TextPath: "Transcriptions/rec-1/trn-1.txt", CreatedAt: base,
	}
	newer := &core.Transcription{
		ID: "trn-2", RecordingID: "rec-1", UserID: "user-1",
		TextPath: "Transcriptions/rec-1/trn-2.txt", CreatedAt: base.Add(time.Hour),
	}
	other := &core.Transcription{
		ID: "trn-3", RecordingID: "rec-2", UserID: "user-1",
		TextPath: "Transcriptions/rec-2/trn-3.txt", CreatedAt: base.Add(2 * time.Hour),
	}
	require.NoError(t, stores.Transcriptions.AddTranscription(ctx, older))
	require.NoError(t, stores.Transcriptions.AddTranscription(ctx, newer))
	require.NoError(t, stores.Transcriptions.AddTranscription(ctx, other))

	current, err := stores.Transcriptions.CurrentTranscription(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, core.ID("trn-2"), current.ID)
}

func TestTranscriptionStore_CurrentMissing(t *testing.T) {
	stores := newTestStores(t)

	_, err := stores.Transcriptions.CurrentTranscription(context.Background(), "rec-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestChunkRowStore_InsertDuplicate(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	row := &core.ChunkRow{
		ChunkID:     "chunk-1",
		ChunkPath:   "Chunks/rec-1/trn-1/chunk-1.json",
		RecordingID: "rec-1",
		UserID:      "user-1",
	}
	require.NoError(t, stores.ChunkRows.InsertChunkRow(ctx, row))

	err := stores.ChunkRows.InsertChunkRow(ctx, row)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// Exactly one row survives.
	rows, err := stores.ChunkRows.ChunkRowsByRecording(ctx, "rec-1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestChunkRowStore_ByRecording(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	for _, id := range []core.ID{"c1", "c2"} {
		require.NoError(t, stores.ChunkRows.InsertChunkRow(ctx, &core.ChunkRow{
			ChunkID: id, RecordingID: "rec-1", UserID: "user-1",
			ChunkPath: "Chunks/rec-1/trn-1/" + string(id) + ".json",
		}))
	}
	require.NoError(t, stores.ChunkRows.InsertChunkRow(ctx, &core.ChunkRow{
		ChunkID: "c3", RecordingID: "rec-2", UserID: "user-1",
		ChunkPath: "Chunks/rec-2/trn-1/c3.json",
	}))

	rows, err := stores.ChunkRows.ChunkRowsByRecording(ctx, "rec-1")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, core.ID("rec-1"), row.RecordingID)
	}
}

func TestSummaryRowStore_UpsertReplacesPerRecording(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	first := &core.SummaryRow{
		SummaryID: "sum-1", RecordingID: "rec-1",
		SummaryPath: "Summaries/sum-1.json",
	}
	require.NoError(t, stores.SummaryRows.UpsertSummaryRow(ctx, first))

	// A later pipeline run points the recording at a new summary artifact.
	second := &core.SummaryRow{
		SummaryID: "sum-2", RecordingID: "rec-1",
		SummaryPath: "Summaries/sum-2.json",
	}
	require.NoError(t, stores.SummaryRows.UpsertSummaryRow(ctx, second))

	got, err := stores.SummaryRows.SummaryRowByRecording(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, core.ID("sum-2"), got.SummaryID)

	// Re-upserting the identical row is a no-op, not an error.
	require.NoError(t, stores.SummaryRows.UpsertSummaryRow(ctx, second))
}

func TestSummaryRowStore_Missing(t *testing.T) {
	stores := newTestStores(t)

	_, err := stores.SummaryRows.SummaryRowByRecording(context.Background(), "rec-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
