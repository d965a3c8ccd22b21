package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRecordingStatus(t *testing.T) {
	for _, status := range []RecordingStatus{
		StatusRecorded, StatusProcessing, StatusTranscribed, StatusSummarized, StatusError,
	} {
		assert.NoError(t, ValidateRecordingStatus(status))
	}

	err := ValidateRecordingStatus("finished")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestValidateChunk(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		chunk   *Chunk
		wantErr error
	}{
		{
			name:  "valid chunk",
			chunk: NewChunk("rec-1", "trn-1", 1, 2, "hello", now),
		},
		{
			name:    "nil chunk",
			chunk:   nil,
			wantErr: ErrInvalidChunk,
		},
		{
			name: "empty text",
			chunk: &Chunk{
				ID: "c1", RecordingID: "rec-1", TranscriptionID: "trn-1",
				Position: 1, TotalChunks: 1,
			},
			wantErr: ErrEmptyText,
		},
		{
			name: "missing identifiers",
			chunk: &Chunk{
				Text: "hello", Position: 1, TotalChunks: 1,
			},
			wantErr: ErrEmptyID,
		},
		{
			name: "position zero",
			chunk: &Chunk{
				ID: "c1", RecordingID: "rec-1", TranscriptionID: "trn-1",
				Text: "hello", Position: 0, TotalChunks: 1,
			},
			wantErr: ErrInvalidPosition,
		},
		{
			name: "position beyond total",
			chunk: &Chunk{
				ID: "c1", RecordingID: "rec-1", TranscriptionID: "trn-1",
				Text: "hello", Position: 3, TotalChunks: 2,
			},
			wantErr: ErrInvalidPosition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunk(tt.chunk)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateUnifiedSummary(t *testing.T) {
	valid := NewUnifiedSummary("rec-1", chunkSummariesForTest(3, 3), ConsolidatedSummary{}, time.Now().UTC())
	assert.NoError(t, ValidateUnifiedSummary(valid))

	t.Run("count mismatch", func(t *testing.T) {
		broken := *valid
		broken.FailedSummaries++
		err := ValidateUnifiedSummary(&broken)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSummaryCountMismatch)
	})

	t.Run("numbering gap", func(t *testing.T) {
		broken := *valid
		broken.ChunkSummaries = map[string]ChunkSummaryEntry{
			ChunkKey(1): valid.ChunkSummaries[ChunkKey(1)],
			ChunkKey(2): valid.ChunkSummaries[ChunkKey(2)],
			ChunkKey(4): valid.ChunkSummaries[ChunkKey(3)],
		}
		err := ValidateUnifiedSummary(&broken)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSummaryNumberingGap)
	})

	t.Run("missing identifiers", func(t *testing.T) {
		broken := *valid
		broken.SummaryID = ""
		err := ValidateUnifiedSummary(&broken)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyID)
	})
}
