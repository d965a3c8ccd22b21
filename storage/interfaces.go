package storage

import (
	"context"

	"github.com/poiesic/voicenote/core"
)

// BlobStore provides path-addressable blob storage.
// Implementations must be thread-safe and support concurrent access.
type BlobStore interface {
	// Put writes a blob at the given path.
	// Returns ErrAlreadyExists if a blob is already stored at that path;
	// the existing blob is left untouched.
	Put(ctx context.Context, path string, data []byte, contentType string) error

	// Update writes a blob at the given path, replacing any existing blob.
	Update(ctx context.Context, path string, data []byte, contentType string) error

	// Get retrieves the blob stored at the given path.
	// Returns ErrNotFound if no blob exists at that path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Close closes the blob store and releases resources.
	Close() error
}

// RecordingStore provides operations for recording rows.
type RecordingStore interface {
	// AddRecording inserts a recording row.
	// Returns ErrDuplicateKey if a row with the same ID already exists.
	AddRecording(ctx context.Context, recording *core.Recording) error

	// GetRecording retrieves a recording by ID.
	// Returns ErrNotFound if the recording doesn't exist.
	GetRecording(ctx context.Context, id core.ID) (*core.Recording, error)

	// SetRecordingStatus updates the lifecycle status of a recording and its
	// UpdatedAt timestamp. The message is stored alongside error statuses and
	// cleared otherwise.
	SetRecordingStatus(ctx context.Context, id core.ID, status core.RecordingStatus, message string) error

	// Close closes the store and releases resources.
	Close() error
}

// TranscriptionStore provides operations for transcription rows.
// Historical transcriptions are never deleted; the pipeline consumes only the
// most recent one per recording.
type TranscriptionStore interface {
	// AddTranscription inserts a transcription row.
	AddTranscription(ctx context.Context, transcription *core.Transcription) error

	// CurrentTranscription retrieves the most recent transcription for a
	// recording, by creation time.
	// Returns ErrNotFound if the recording has no transcription.
	CurrentTranscription(ctx context.Context, recordingID core.ID) (*core.Transcription, error)

	// Close closes the store and releases resources.
	Close() error
}

// ChunkRowStore provides operations for chunk metadata rows, keyed by chunk ID.
type ChunkRowStore interface {
	// InsertChunkRow inserts a chunk metadata row.
	// Returns ErrDuplicateKey if a row for the same chunk ID already exists.
	InsertChunkRow(ctx context.Context, row *core.ChunkRow) error

	// GetChunkRow retrieves a chunk metadata row by chunk ID.
	// Returns ErrNotFound if the row doesn't exist.
	GetChunkRow(ctx context.Context, chunkID core.ID) (*core.ChunkRow, error)

	// ChunkRowsByRecording retrieves all chunk rows for a recording.
	ChunkRowsByRecording(ctx context.Context, recordingID core.ID) ([]*core.ChunkRow, error)

	// Close closes the store and releases resources.
	Close() error
}

// SummaryRowStore provides operations for unified-summary metadata rows,
// upserted per recording.
type SummaryRowStore interface {
	// UpsertSummaryRow inserts or replaces the summary row for the row's
	// recording. Writing a row identical to the stored one is a no-op, not an
	// error.
	UpsertSummaryRow(ctx context.Context, row *core.SummaryRow) error

	// SummaryRowByRecording retrieves the current summary row for a recording.
	// Returns ErrNotFound if no summary has been persisted yet.
	SummaryRowByRecording(ctx context.Context, recordingID core.ID) (*core.SummaryRow, error)

	// Close closes the store and releases resources.
	Close() error
}
