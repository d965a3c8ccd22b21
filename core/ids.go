package core

import (
	"encoding/hex"
	"fmt"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// ID is a unique identifier for domain entities, rendered as an opaque string
// so it can be embedded directly in blob-store paths.
type ID string

// NewID generates a fresh random identifier. Used for run-scoped artifacts
// such as recordings, transcriptions and unified summaries, where each run
// must produce a new identity.
func NewID() ID {
	return ID(uuid.NewString())
}

// IDFromContent generates a deterministic ID from text content using BLAKE2b
// hashing. Identical content always produces an identical ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write([]byte(text))
	return ID(hex.EncodeToString(h.Sum(nil)))
}

// ChunkIDFor derives the identifier for a chunk from its owning recording,
// transcription, sequence position and text. Because the ID is content-based,
// re-running the pipeline over the same transcription regenerates the same
// chunk IDs, which is what makes re-uploads idempotent.
func ChunkIDFor(recordingID, transcriptionID ID, position int, text string) ID {
	return IDFromContent(fmt.Sprintf("%s|%s|%d|%s", recordingID, transcriptionID, position, text))
}
