// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/poiesic/voicenote/core"
	"github.com/poiesic/voicenote/storage"
)

const (
	jsonContentType = "application/json"
	textContentType = "text/plain"
)

// Store persists pipeline artifacts: chunk documents, transcript texts, and
// unified summaries, each as a blob plus a metadata row. Writes are
// idempotent: re-persisting an artifact that is already durable is absorbed,
// never an error.
type Store struct {
	blobs       storage.BlobStore
	chunkRows   storage.ChunkRowStore
	summaryRows storage.SummaryRowStore
	logger      *slog.Logger
}

// NewStore creates an artifact store over the given blob and row stores.
func NewStore(blobs storage.BlobStore, chunkRows storage.ChunkRowStore, summaryRows storage.SummaryRowStore) (*Store, error) {
	if blobs == nil {
		return nil, ErrBlobStoreRequired
	}
	if chunkRows == nil {
		return nil, ErrChunkRowStoreRequired
	}
	if summaryRows == nil {
		return nil, ErrSummaryRowStoreRequired
	}

	return &Store{
		blobs:       blobs,
		chunkRows:   chunkRows,
		summaryRows: summaryRows,
		logger:      slog.Default().With("component", "artifact-store"),
	}, nil
}

// PutChunk persists one chunk as a JSON blob plus a metadata row.
// Chunk IDs are content-derived, so a re-run over the same transcription
// regenerates identical chunks; the resulting duplicate blob and duplicate
// row are both absorbed. Returns the blob path.
func (s *Store) PutChunk(ctx context.Context, chunk *core.Chunk, userID core.ID) (string, error) {
	if err := core.ValidateChunk(chunk); err != nil {
		return "", err
	}

	path := storage.ChunkPath(chunk.RecordingID, chunk.TranscriptionID, chunk.ID)

	data, err := json.Marshal(chunk)
	if err != nil {
		return "", err
	}

	err = s.blobs.Put(ctx, path, data, jsonContentType)
	if errors.Is(err, storage.ErrAlreadyExists) {
		s.logger.Debug("chunk blob already stored", "chunkId", chunk.ID, "path", path)
		err = nil
	}
	if err != nil {
		return "", err
	}

	row := &core.ChunkRow{
		ChunkID:     chunk.ID,
		ChunkPath:   path,
		RecordingID: chunk.RecordingID,
		UserID:      userID,
		CreatedAt:   chunk.CreatedAt,
	}
	err = s.chunkRows.InsertChunkRow(ctx, row)
	if errors.Is(err, storage.ErrDuplicateKey) {
		s.logger.Debug("chunk row already stored", "chunkId", chunk.ID)
		err = nil
	}
	if err != nil {
		return "", err
	}

	return path, nil
}

// PutTranscription persists a transcript text blob at the transcription's
// path. A duplicate write of the same transcription is absorbed. Returns the
// blob path.
func (s *Store) PutTranscription(ctx context.Context, recordingID, transcriptionID core.ID, text string) (string, error) {
	path := storage.TranscriptionPath(recordingID, transcriptionID)

	err := s.blobs.Put(ctx, path, []byte(text), textContentType)
	if errors.Is(err, storage.ErrAlreadyExists) {
		s.logger.Debug("transcript blob already stored",
			"transcriptionId", transcriptionID,
			"path", path)
		err = nil
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// PutUnifiedSummary persists a unified summary as a JSON blob and upserts the
// recording's summary row to point at it. Summary IDs are run-scoped, so a
// path collision means the same document is being re-persisted; the write
// falls back to an update. Returns the blob path.
func (s *Store) PutUnifiedSummary(ctx context.Context, summary *core.UnifiedSummary) (string, error) {
	if err := core.ValidateUnifiedSummary(summary); err != nil {
		return "", err
	}

	path := storage.SummaryPath(summary.SummaryID)

	data, err := json.Marshal(summary)
	if err != nil {
		return "", err
	}

	err = s.blobs.Put(ctx, path, data, jsonContentType)
	if errors.Is(err, storage.ErrAlreadyExists) {
		err = s.blobs.Update(ctx, path, data, jsonContentType)
	}
	if err != nil {
		return "", err
	}

	row := &core.SummaryRow{
		SummaryID:   summary.SummaryID,
		RecordingID: summary.RecordingID,
		SummaryPath: path,
		CreatedAt:   summary.CreatedAt,
	}
	if err := s.summaryRows.UpsertSummaryRow(ctx, row); err != nil {
		return "", err
	}

	s.logger.Info("unified summary persisted",
		"recordingId", summary.RecordingID,
		"summaryId", summary.SummaryID,
		"path", path)
	return path, nil
}

// GetUnifiedSummary loads a unified summary document by its blob path.
func (s *Store) GetUnifiedSummary(ctx context.Context, path string) (*core.UnifiedSummary, error) {
	data, err := s.blobs.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	var summary core.UnifiedSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, storage.ErrSerializationFailed
	}
	return &summary, nil
}

// UnifiedSummaryByRecording loads the current unified summary of a recording
// via its summary row. Returns storage.ErrNotFound if the recording has no
// persisted summary.
func (s *Store) UnifiedSummaryByRecording(ctx context.Context, recordingID core.ID) (*core.UnifiedSummary, error) {
	row, err := s.summaryRows.SummaryRowByRecording(ctx, recordingID)
	if err != nil {
		return nil, err
	}
	return s.GetUnifiedSummary(ctx, row.SummaryPath)
}

// GetAudio loads a stored audio blob by its path.
func (s *Store) GetAudio(ctx context.Context, path string) ([]byte, error) {
	return s.blobs.Get(ctx, path)
}

// GetTranscript loads a transcript text blob by its path.
func (s *Store) GetTranscript(ctx context.Context, path string) (string, error) {
	data, err := s.blobs.Get(ctx, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
