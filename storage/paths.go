package storage

import (
	"fmt"

	"github.com/poiesic/voicenote/core"
)

// Bucket labels for the logical blob-store layout. Case-sensitive.
const (
	ChunksBucket         = "Chunks"
	SummariesBucket      = "Summaries"
	TranscriptionsBucket = "Transcriptions"
	RecordingsBucket     = "Recordings"
)

// ChunkPath returns the blob path for one chunk document:
// Chunks/{recordingId}/{transcriptionId}/{chunkId}.json
func ChunkPath(recordingID, transcriptionID, chunkID core.ID) string {
	return fmt.Sprintf("%s/%s/%s/%s.json", ChunksBucket, recordingID, transcriptionID, chunkID)
}

// SummaryPath returns the blob path for a unified summary document:
// Summaries/{summaryId}.json
func SummaryPath(summaryID core.ID) string {
	return fmt.Sprintf("%s/%s.json", SummariesBucket, summaryID)
}

// TranscriptionPath returns the blob path for a transcript text:
// Transcriptions/{recordingId}/{transcriptionId}.txt
func TranscriptionPath(recordingID, transcriptionID core.ID) string {
	return fmt.Sprintf("%s/%s/%s.txt", TranscriptionsBucket, recordingID, transcriptionID)
}

// AudioPath returns the blob path for an uploaded audio object:
// Recordings/{recordingId}/{filename}
func AudioPath(recordingID core.ID, filename string) string {
	return fmt.Sprintf("%s/%s/%s", RecordingsBucket, recordingID, filename)
}
