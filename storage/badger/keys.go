package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/voicenote/core"
)

// Key prefixes for different data types
const (
	recordingPrefix        = "vnrec"
	transcriptionPrefix    = "vntrn"
	transcriptionRecPrefix = "vntrnr"
	chunkRowPrefix         = "vnchk"
	chunkRowRecPrefix      = "vnchkr"
	summaryRowPrefix       = "vnsum"
	blobPrefix             = "vnblob"
)

// makeRecordingKey generates a key for a recording row by ID.
func makeRecordingKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s", recordingPrefix, id))
}

// makeTranscriptionKey generates a key for a transcription row by ID.
func makeTranscriptionKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s", transcriptionPrefix, id))
}

// makeTranscriptionRecKey generates a composite key for the per-recording
// transcription index.
// Format: prefix:recordingID:createdAt:id
// CreatedAt is written BigEndian so lexicographic iteration walks
// transcriptions in creation order; the most recent one is found by iterating
// the recording's range in reverse.
func makeTranscriptionRecKey(recordingID core.ID, createdAt time.Time, id core.ID) []byte {
	prefix := []byte(fmt.Sprintf("%s:%s:", transcriptionRecPrefix, recordingID))
	buf := make([]byte, len(prefix)+8+len(id))
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	copy(buf[offset:], []byte(id))
	return buf
}

// makeTranscriptionRecScanPrefix generates the iteration prefix covering all
// transcriptions of one recording.
func makeTranscriptionRecScanPrefix(recordingID core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:", transcriptionRecPrefix, recordingID))
}

// makeChunkRowKey generates a key for a chunk metadata row by chunk ID.
func makeChunkRowKey(chunkID core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s", chunkRowPrefix, chunkID))
}

// makeChunkRowRecKey generates a composite key for the per-recording chunk
// index.
// Format: prefix:recordingID:chunkID
func makeChunkRowRecKey(recordingID, chunkID core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", chunkRowRecPrefix, recordingID, chunkID))
}

// makeChunkRowRecScanPrefix generates the iteration prefix covering all chunk
// rows of one recording.
func makeChunkRowRecScanPrefix(recordingID core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:", chunkRowRecPrefix, recordingID))
}

// makeSummaryRowKey generates a key for the summary row of a recording.
// Summary rows are keyed by recording, which is what gives UpsertSummaryRow
// its replace-per-recording semantics.
func makeSummaryRowKey(recordingID core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s", summaryRowPrefix, recordingID))
}

// makeBlobKey generates a key for a blob by its logical path.
func makeBlobKey(path string) []byte {
	return []byte(fmt.Sprintf("%s:%s", blobPrefix, path))
}
