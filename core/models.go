package core

import (
	"time"
)

// RecordingStatus tracks where a recording is in its lifecycle.
// The pipeline advances the status at each stage boundary.
type RecordingStatus string

const (
	StatusRecorded    RecordingStatus = "recorded"
	StatusProcessing  RecordingStatus = "processing"
	StatusTranscribed RecordingStatus = "transcribed"
	StatusSummarized  RecordingStatus = "summarized"
	StatusError       RecordingStatus = "error"
)

// Recording represents one captured audio recording owned by a user.
// AudioPath references the uploaded audio object in the blob store and may be
// empty for recordings created directly from a transcript.
type Recording struct {
	ID            ID
	UserID        ID
	Status        RecordingStatus
	AudioPath     string
	StatusMessage string // last error message, set when Status is StatusError
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Transcription references the full transcript text of a recording in the
// blob store. A recording may accumulate historical transcriptions; the
// pipeline always works with the most recent one.
type Transcription struct {
	ID          ID
	RecordingID ID
	UserID      ID
	TextPath    string
	CreatedAt   time.Time
}

// Chunk is a bounded, overlap-preserving slice of a transcript.
// Position is 1-based; positions are contiguous 1..TotalChunks.
//
// The JSON tags define the chunk document persisted in the blob store.
type Chunk struct {
	ID              ID        `json:"chunkId"`
	RecordingID     ID        `json:"recordingId"`
	TranscriptionID ID        `json:"transcriptionId"`
	Position        int       `json:"chunkNumber"`
	TotalChunks     int       `json:"totalChunks"`
	Text            string    `json:"chunkData"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewChunk creates a chunk with a content-derived identifier.
func NewChunk(recordingID, transcriptionID ID, position, totalChunks int, text string, createdAt time.Time) *Chunk {
	return &Chunk{
		ID:              ChunkIDFor(recordingID, transcriptionID, position, text),
		RecordingID:     recordingID,
		TranscriptionID: transcriptionID,
		Position:        position,
		TotalChunks:     totalChunks,
		Text:            text,
		CreatedAt:       createdAt,
	}
}

// ChunkRow is the metadata row persisted for each chunk, keyed by ChunkID.
type ChunkRow struct {
	ChunkID     ID        `json:"chunkId"`
	ChunkPath   string    `json:"chunkPath"`
	RecordingID ID        `json:"recordingId"`
	UserID      ID        `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SummaryRow is the metadata row pointing at the current unified summary of a
// recording. It is upserted per recording: a new pipeline run replaces the
// pointer, while historical summary blobs remain in the blob store.
type SummaryRow struct {
	SummaryID   ID        `json:"summaryId"`
	RecordingID ID        `json:"recordingId"`
	SummaryPath string    `json:"summaryPath"`
	CreatedAt   time.Time `json:"createdAt"`
}
